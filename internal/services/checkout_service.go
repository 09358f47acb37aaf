package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"emporium/internal/apperr"
	"emporium/internal/repos"
)

// CheckoutService converts an open cart into an order: one transaction
// covering validation, order creation, stock decrement and the cart's
// transition to its terminal ordered state.
type CheckoutService struct {
	DB     *sqlx.DB
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Addrs  *repos.AddressRepo
	Orders *repos.OrderRepo
}

func NewCheckoutService(db *sqlx.DB, carts *repos.CartRepo, prods *repos.ProductRepo,
	addrs *repos.AddressRepo, orders *repos.OrderRepo) *CheckoutService {
	return &CheckoutService{DB: db, Carts: carts, Prods: prods, Addrs: addrs, Orders: orders}
}

// Checkout orders the cart's items for delivery to the given address and
// returns the new order id. All validation failures leave the store
// untouched; any write failure rolls the whole transaction back.
func (s *CheckoutService) Checkout(accountID, cartID, addressID int64) (int64, error) {
	tx, err := s.DB.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	cart, err := s.Carts.Row(tx, accountID, cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperr.NotFound("cart not found")
	}
	if err != nil {
		return 0, err
	}
	if cart.Ordered {
		return 0, apperr.InvalidOperation("Cart has already been ordered")
	}

	items, err := s.Carts.ResolvedItems(tx, cartID)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, apperr.InvalidOperation("Cart is empty")
	}

	// Live stock check so the friendly error names the offending product.
	for _, it := range items {
		if it.Count > it.Product.StockCount {
			return 0, apperr.InvalidOperation(
				fmt.Sprintf("Cart item %q does not have enough stock left", it.Product.Name))
		}
	}

	// A foreign address is reported identically to a missing one.
	ok, err := s.Addrs.Exists(tx, accountID, addressID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, apperr.InvalidOperation("Given address ID not found")
	}

	orderID, err := s.Orders.Create(tx, accountID, addressID)
	if err != nil {
		return 0, err
	}
	for _, it := range items {
		if err := s.Orders.InsertItem(tx, orderID, it.Product.ID, it.Count); err != nil {
			return 0, err
		}
		// Conditional decrement backstops the pre-check under concurrency.
		if err := s.Prods.DecrementStock(tx, it.Product.ID, it.Count); err != nil {
			if errors.Is(err, repos.ErrInsufficientStock) {
				return 0, apperr.InvalidOperation(
					fmt.Sprintf("Cart item %q does not have enough stock left", it.Product.Name))
			}
			return 0, err
		}
	}

	if err := s.Carts.MarkOrdered(tx, cartID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return orderID, nil
}
