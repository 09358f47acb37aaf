package services_test

import (
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"

	"emporium/internal/apperr"
	"emporium/internal/repos"
	"emporium/internal/services"
)

func newCheckoutService(db *sqlx.DB) *services.CheckoutService {
	return services.NewCheckoutService(db,
		repos.NewCartRepo(db),
		repos.NewProductRepo(db),
		repos.NewAddressRepo(db),
		repos.NewOrderRepo(db),
	)
}

func stockOf(t *testing.T, db *sqlx.DB, productID int64) int {
	t.Helper()
	var n int
	if err := db.Get(&n, `SELECT stock_count FROM products WHERE id = ?`, productID); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestCheckout_Succeeds(t *testing.T) {
	db := memdb(t)
	carts := newCartService(db)
	checkout := newCheckoutService(db)

	// product 1 has stock 23, product 2 has stock 12; address 1 belongs to
	// account 1
	cart, err := carts.Create(1, "My Cart", []services.ItemInput{
		{ProductID: 1, Count: 1},
		{ProductID: 2, Count: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	orderID, err := checkout.Checkout(1, cart.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if orderID == 0 {
		t.Fatal("no order id returned")
	}

	if got := stockOf(t, db, 1); got != 22 {
		t.Fatalf("product 1 stock: want 22, got %d", got)
	}
	if got := stockOf(t, db, 2); got != 11 {
		t.Fatalf("product 2 stock: want 11, got %d", got)
	}

	after, err := carts.Get(1, cart.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !after.Ordered {
		t.Fatal("cart not marked ordered after checkout")
	}

	order, err := services.NewOrderService(repos.NewOrderRepo(db)).Get(1, orderID)
	if err != nil {
		t.Fatal(err)
	}
	if order.Address.ID != 1 {
		t.Fatalf("order address: want 1, got %+v", order.Address)
	}
	if len(order.Items) != 2 || order.Items[0].Count != 1 || order.Items[1].Count != 1 {
		t.Fatalf("order items not frozen from cart: %+v", order.Items)
	}
}

func TestCheckout_InsufficientStockNamesProduct(t *testing.T) {
	db := memdb(t)
	carts := newCartService(db)
	checkout := newCheckoutService(db)

	// stock for product 1 is 23
	cart, err := carts.Create(1, "My Cart", []services.ItemInput{{ProductID: 1, Count: 24}})
	if err != nil {
		t.Fatal(err)
	}

	_, err = checkout.Checkout(1, cart.ID, 1)
	if !apperr.IsInvalidOperation(err) {
		t.Fatalf("want invalid operation, got %v", err)
	}
	if !strings.Contains(err.Error(), `"Toothbrush"`) {
		t.Fatalf("error does not name the offending product: %v", err)
	}

	// no partial writes
	if got := stockOf(t, db, 1); got != 23 {
		t.Fatalf("stock changed on failed checkout: %d", got)
	}
	var orders int
	if err := db.Get(&orders, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if orders != 0 {
		t.Fatal("order created despite failed checkout")
	}
}

func TestCheckout_RejectsSecondAttempt(t *testing.T) {
	db := memdb(t)
	carts := newCartService(db)
	checkout := newCheckoutService(db)

	cart, err := carts.Create(1, "My Cart", []services.ItemInput{{ProductID: 1, Count: 2}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := checkout.Checkout(1, cart.ID, 1); err != nil {
		t.Fatal(err)
	}
	if got := stockOf(t, db, 1); got != 21 {
		t.Fatalf("stock after first checkout: want 21, got %d", got)
	}

	_, err = checkout.Checkout(1, cart.ID, 1)
	if !apperr.IsInvalidOperation(err) {
		t.Fatalf("want invalid operation on ordered cart, got %v", err)
	}

	// rejection must not re-apply the decrement
	if got := stockOf(t, db, 1); got != 21 {
		t.Fatalf("stock changed by rejected checkout: %d", got)
	}
}

func TestCheckout_AddressChecks(t *testing.T) {
	db := memdb(t)
	carts := newCartService(db)
	checkout := newCheckoutService(db)

	cart, err := carts.Create(1, "My Cart", []services.ItemInput{{ProductID: 1, Count: 1}})
	if err != nil {
		t.Fatal(err)
	}

	// address 2 exists but belongs to account 2; address 999 does not exist.
	// Both must fail identically.
	for _, addressID := range []int64{2, 999} {
		_, err := checkout.Checkout(1, cart.ID, addressID)
		if !apperr.IsInvalidOperation(err) {
			t.Fatalf("address %d: want invalid operation, got %v", addressID, err)
		}
	}
	if got := stockOf(t, db, 1); got != 23 {
		t.Fatalf("stock changed on failed checkout: %d", got)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	db := memdb(t)
	carts := newCartService(db)
	checkout := newCheckoutService(db)

	cart, err := carts.Create(1, "Empty", []services.ItemInput{})
	if err != nil {
		t.Fatal(err)
	}

	_, err = checkout.Checkout(1, cart.ID, 1)
	if !apperr.IsInvalidOperation(err) {
		t.Fatalf("want invalid operation for empty cart, got %v", err)
	}
}

func TestCheckout_ForeignCartIsNotFound(t *testing.T) {
	db := memdb(t)
	carts := newCartService(db)
	checkout := newCheckoutService(db)

	cart, err := carts.Create(2, "Ada's Cart", []services.ItemInput{{ProductID: 1, Count: 1}})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := checkout.Checkout(1, cart.ID, 1); !apperr.IsNotFound(err) {
		t.Fatalf("foreign cart: want not found, got %v", err)
	}
	if _, err := checkout.Checkout(1, 9999, 1); !apperr.IsNotFound(err) {
		t.Fatalf("missing cart: want not found, got %v", err)
	}
}

func TestCheckout_DecrementIsExact(t *testing.T) {
	db := memdb(t)
	carts := newCartService(db)
	checkout := newCheckoutService(db)

	before1, before4 := stockOf(t, db, 1), stockOf(t, db, 4)

	cart, err := carts.Create(1, "Bulk", []services.ItemInput{
		{ProductID: 1, Count: 3},
		{ProductID: 4, Count: 7},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := checkout.Checkout(1, cart.ID, 1); err != nil {
		t.Fatal(err)
	}

	if got := stockOf(t, db, 1); got != before1-3 {
		t.Fatalf("product 1: want %d, got %d", before1-3, got)
	}
	if got := stockOf(t, db, 4); got != before4-7 {
		t.Fatalf("product 4: want %d, got %d", before4-7, got)
	}
}
