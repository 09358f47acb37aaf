package services

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"emporium/internal/apperr"
	"emporium/internal/domain"
	"emporium/internal/repos"
)

type CartService struct {
	DB    *sqlx.DB
	Carts *repos.CartRepo
}

func NewCartService(db *sqlx.DB, carts *repos.CartRepo) *CartService {
	return &CartService{DB: db, Carts: carts}
}

// List returns every cart owned by the account with resolved items. An empty
// cart carries an empty item list, never null.
func (s *CartService) List(accountID int64) ([]domain.Cart, error) {
	rows, err := s.Carts.ListRows(accountID)
	if err != nil {
		return nil, err
	}

	carts := make([]domain.Cart, 0, len(rows))
	for _, row := range rows {
		items, err := s.Carts.ResolvedItems(s.DB, row.ID)
		if err != nil {
			return nil, err
		}
		carts = append(carts, cartFromRow(row, items))
	}
	return carts, nil
}

// Get returns one cart scoped to its owner. A cart owned by someone else is
// reported as not found, identical to a missing one.
func (s *CartService) Get(accountID, cartID int64) (domain.Cart, error) {
	row, err := s.Carts.Row(s.DB, accountID, cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, apperr.NotFound("cart not found")
	}
	if err != nil {
		return domain.Cart{}, err
	}
	items, err := s.Carts.ResolvedItems(s.DB, row.ID)
	if err != nil {
		return domain.Cart{}, err
	}
	return cartFromRow(row, items), nil
}

// Create consolidates the submitted items and persists a new cart. The item
// list is required; a nil list is invalid input, an empty one is a valid
// empty cart.
func (s *CartService) Create(accountID int64, name string, items []ItemInput) (domain.Cart, error) {
	if name == "" {
		return domain.Cart{}, apperr.InvalidInput("cart name is required")
	}
	if items == nil {
		return domain.Cart{}, apperr.InvalidInput("items list is required")
	}
	if err := validateItems(items); err != nil {
		return domain.Cart{}, err
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return domain.Cart{}, err
	}
	defer func() { _ = tx.Rollback() }()

	cartID, err := s.Carts.Create(tx, accountID, name)
	if err != nil {
		return domain.Cart{}, err
	}
	for _, it := range ConsolidateItems(items) {
		if err := s.Carts.InsertItem(tx, cartID, it.ProductID, it.Count); err != nil {
			return domain.Cart{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Cart{}, err
	}
	return s.Get(accountID, cartID)
}

// Replace updates a cart's name and, when an item list is supplied, fully
// replaces its item set by diffing against the stored rows: counts are
// updated in place, absent products deleted, new products inserted. A nil
// item list leaves the stored items untouched.
func (s *CartService) Replace(accountID, cartID int64, name string, items []ItemInput) (domain.Cart, error) {
	if name == "" {
		return domain.Cart{}, apperr.InvalidInput("cart name is required")
	}
	if items != nil {
		if err := validateItems(items); err != nil {
			return domain.Cart{}, err
		}
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return domain.Cart{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := s.Carts.Row(tx, accountID, cartID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Cart{}, apperr.NotFound("cart not found")
		}
		return domain.Cart{}, err
	}

	if err := s.Carts.Rename(tx, cartID, name); err != nil {
		return domain.Cart{}, err
	}

	if items != nil {
		if err := s.reconcileItems(tx, cartID, ConsolidateItems(items)); err != nil {
			return domain.Cart{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Cart{}, err
	}
	return s.Get(accountID, cartID)
}

// Delete reports whether a cart row was removed; a miss is not an error.
func (s *CartService) Delete(accountID, cartID int64) (bool, error) {
	return s.Carts.Delete(accountID, cartID)
}

// reconcileItems applies the consolidated item set as an upsert/diff rather
// than delete-then-insert, so unchanged rows see no churn.
func (s *CartService) reconcileItems(tx *sqlx.Tx, cartID int64, consolidated []ItemInput) error {
	existing, err := s.Carts.ItemCounts(tx, cartID)
	if err != nil {
		return err
	}

	wanted := make(map[int64]int, len(consolidated))
	for _, it := range consolidated {
		wanted[it.ProductID] = it.Count
	}

	have := make(map[int64]bool, len(existing))
	for _, row := range existing {
		have[row.ProductID] = true
		count, keep := wanted[row.ProductID]
		switch {
		case !keep:
			err = s.Carts.DeleteItem(tx, cartID, row.ProductID)
		case count != row.Count:
			err = s.Carts.UpdateItemCount(tx, cartID, row.ProductID, count)
		}
		if err != nil {
			return err
		}
	}

	for _, it := range consolidated {
		if have[it.ProductID] {
			continue
		}
		if err := s.Carts.InsertItem(tx, cartID, it.ProductID, it.Count); err != nil {
			return err
		}
	}
	return nil
}

func validateItems(items []ItemInput) error {
	for _, it := range items {
		if it.ProductID < 1 || it.Count < 1 {
			return apperr.InvalidInput("each item needs a positive productId and count")
		}
	}
	return nil
}

func cartFromRow(row repos.CartRow, items []domain.CartItem) domain.Cart {
	if items == nil {
		items = []domain.CartItem{}
	}
	return domain.Cart{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		Ordered:   row.Ordered,
		Items:     items,
	}
}
