package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"emporium/internal/apperr"
	"emporium/internal/repos"
	"emporium/internal/services"
)

// memdb opens a seeded in-memory store. Seeded fixtures: accounts 1 (David),
// 2 (Ada), 3 (admin); products 1 Toothbrush (stock 23), 2 Hairbrush (stock
// 12), 3 Kettle (stock 8), 4 Mug (stock 40); address 1 owned by account 1,
// address 2 owned by account 2.
func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// keep every query on the same in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newCartService(db *sqlx.DB) *services.CartService {
	return services.NewCartService(db, repos.NewCartRepo(db))
}

func TestCreateCart_ConsolidatesDuplicates(t *testing.T) {
	svc := newCartService(memdb(t))

	cart, err := svc.Create(1, "My Cart", []services.ItemInput{
		{ProductID: 1, Count: 1},
		{ProductID: 2, Count: 1},
		{ProductID: 2, Count: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	if cart.ID == 0 || cart.CreatedAt == "" {
		t.Fatalf("cart missing server-assigned fields: %+v", cart)
	}
	if cart.Ordered {
		t.Fatalf("new cart must not be ordered: %+v", cart)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("want 2 consolidated items, got %+v", cart.Items)
	}
	if cart.Items[0].Product.ID != 1 || cart.Items[0].Count != 1 {
		t.Fatalf("bad first item: %+v", cart.Items[0])
	}
	if cart.Items[1].Product.ID != 2 || cart.Items[1].Count != 2 {
		t.Fatalf("duplicate product not consolidated: %+v", cart.Items[1])
	}
	if cart.Items[0].Product.Name != "Toothbrush" || cart.Items[0].Product.StockCount != 23 {
		t.Fatalf("item not resolved against live product: %+v", cart.Items[0].Product)
	}
}

func TestCreateCart_RejectsInvalidInput(t *testing.T) {
	svc := newCartService(memdb(t))

	cases := []struct {
		name     string
		cartName string
		items    []services.ItemInput
	}{
		{"empty name", "", []services.ItemInput{{ProductID: 1, Count: 1}}},
		{"missing items", "My Cart", nil},
		{"item without product", "My Cart", []services.ItemInput{{Count: 1}}},
		{"item without count", "My Cart", []services.ItemInput{{ProductID: 1}}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(1, tc.cartName, tc.items); !apperr.IsInvalidInput(err) {
			t.Fatalf("%s: want invalid input, got %v", tc.name, err)
		}
	}
}

func TestCreateCart_AllowsEmptyItemList(t *testing.T) {
	svc := newCartService(memdb(t))

	cart, err := svc.Create(1, "Empty", []services.ItemInput{})
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("want no items, got %+v", cart.Items)
	}
}

func TestGetCart_ForeignCartIsNotFound(t *testing.T) {
	svc := newCartService(memdb(t))

	cart, err := svc.Create(2, "Ada's Cart", []services.ItemInput{{ProductID: 1, Count: 1}})
	if err != nil {
		t.Fatal(err)
	}

	// Account 1 must see the same answer for Ada's cart and for a cart that
	// does not exist at all.
	if _, err := svc.Get(1, cart.ID); !apperr.IsNotFound(err) {
		t.Fatalf("foreign cart: want not found, got %v", err)
	}
	if _, err := svc.Get(1, 9999); !apperr.IsNotFound(err) {
		t.Fatalf("missing cart: want not found, got %v", err)
	}
}

func TestListCarts(t *testing.T) {
	svc := newCartService(memdb(t))

	if _, err := svc.Create(1, "First", []services.ItemInput{{ProductID: 1, Count: 1}}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(1, "Second", []services.ItemInput{}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(2, "Ada's", []services.ItemInput{{ProductID: 2, Count: 1}}); err != nil {
		t.Fatal(err)
	}

	carts, err := svc.List(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(carts) != 2 {
		t.Fatalf("want 2 carts for account 1, got %+v", carts)
	}
	if carts[0].Name != "First" || carts[1].Name != "Second" {
		t.Fatalf("bad cart order: %+v", carts)
	}
	if carts[1].Items == nil || len(carts[1].Items) != 0 {
		t.Fatalf("empty cart must carry an empty item list, got %+v", carts[1].Items)
	}
}

func TestReplaceCart_NilItemsLeavesItemsUntouched(t *testing.T) {
	svc := newCartService(memdb(t))

	cart, err := svc.Create(1, "My Cart", []services.ItemInput{{ProductID: 1, Count: 1}})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Replace(1, cart.ID, "New Name", nil)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "New Name" {
		t.Fatalf("name not updated: %+v", updated)
	}
	if len(updated.Items) != 1 || updated.Items[0].Product.ID != 1 || updated.Items[0].Count != 1 {
		t.Fatalf("items changed on name-only update: %+v", updated.Items)
	}
}

func TestReplaceCart_EmptyItemsDeletesAll(t *testing.T) {
	svc := newCartService(memdb(t))

	cart, err := svc.Create(1, "My Cart", []services.ItemInput{
		{ProductID: 1, Count: 1},
		{ProductID: 2, Count: 2},
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Replace(1, cart.ID, "My Cart", []services.ItemInput{})
	if err != nil {
		t.Fatal(err)
	}
	if len(updated.Items) != 0 {
		t.Fatalf("want all items removed, got %+v", updated.Items)
	}
}

func TestReplaceCart_DiffsItemSet(t *testing.T) {
	db := memdb(t)
	svc := newCartService(db)

	cart, err := svc.Create(1, "My Cart", []services.ItemInput{
		{ProductID: 1, Count: 1},
		{ProductID: 2, Count: 2},
	})
	if err != nil {
		t.Fatal(err)
	}

	// product 1 removed, product 2 count changed, product 3 added
	updated, err := svc.Replace(1, cart.ID, "My Cart", []services.ItemInput{
		{ProductID: 2, Count: 5},
		{ProductID: 3, Count: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(updated.Items) != 2 {
		t.Fatalf("want 2 items, got %+v", updated.Items)
	}
	if updated.Items[0].Product.ID != 2 || updated.Items[0].Count != 5 {
		t.Fatalf("count not updated in place: %+v", updated.Items[0])
	}
	if updated.Items[1].Product.ID != 3 || updated.Items[1].Count != 1 {
		t.Fatalf("new item not inserted: %+v", updated.Items[1])
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM cart_items WHERE cart_id = ? AND product_id = 1`, cart.ID); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatal("absent product not deleted from cart")
	}
}

func TestReplaceCart_Validation(t *testing.T) {
	svc := newCartService(memdb(t))

	cart, err := svc.Create(1, "My Cart", []services.ItemInput{{ProductID: 1, Count: 1}})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Replace(1, cart.ID, "", nil); !apperr.IsInvalidInput(err) {
		t.Fatalf("empty name: want invalid input, got %v", err)
	}
	if _, err := svc.Replace(1, cart.ID, "My Cart", []services.ItemInput{{ProductID: 1}}); !apperr.IsInvalidInput(err) {
		t.Fatalf("bad item: want invalid input, got %v", err)
	}
	if _, err := svc.Replace(1, 9999, "My Cart", nil); !apperr.IsNotFound(err) {
		t.Fatalf("missing cart: want not found, got %v", err)
	}
}

func TestDeleteCart(t *testing.T) {
	svc := newCartService(memdb(t))

	cart, err := svc.Create(1, "Doomed", []services.ItemInput{{ProductID: 1, Count: 1}})
	if err != nil {
		t.Fatal(err)
	}

	deleted, err := svc.Delete(1, cart.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !deleted {
		t.Fatal("want deleted=true for existing cart")
	}

	deleted, err = svc.Delete(1, cart.ID)
	if err != nil {
		t.Fatal(err)
	}
	if deleted {
		t.Fatal("want deleted=false for already-deleted cart")
	}
}
