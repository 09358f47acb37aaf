package repos

import (
	"github.com/jmoiron/sqlx"

	"emporium/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartRow is the cart header without resolved items.
type CartRow struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
	Ordered   bool   `db:"ordered"`
}

// ItemCount is a bare cart-item row, used by the replace-cart reconciliation.
type ItemCount struct {
	ProductID int64 `db:"product_id"`
	Count     int   `db:"count"`
}

// Tx-shared methods take a sqlx.Ext so the same query runs against the pool
// or inside a transaction.

// Row resolves the cart header for (accountID, cartID). A cart owned by a
// different account scans identically to a missing one: sql.ErrNoRows.
func (r *CartRepo) Row(q sqlx.Ext, accountID, cartID int64) (CartRow, error) {
	var c CartRow
	err := sqlx.Get(q, &c, `
	  SELECT id, name, created_at, ordered
	  FROM carts
	  WHERE account_id = ? AND id = ?
	`, accountID, cartID)
	return c, err
}

func (r *CartRepo) ListRows(accountID int64) ([]CartRow, error) {
	rows := []CartRow{}
	err := r.db.Select(&rows, `
	  SELECT id, name, created_at, ordered
	  FROM carts
	  WHERE account_id = ?
	  ORDER BY id
	`, accountID)
	return rows, err
}

func (r *CartRepo) Create(q sqlx.Ext, accountID int64, name string) (int64, error) {
	res, err := q.Exec(`INSERT INTO carts(account_id, name) VALUES(?, ?)`, accountID, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *CartRepo) Rename(q sqlx.Ext, cartID int64, name string) error {
	_, err := q.Exec(`UPDATE carts SET name = ? WHERE id = ?`, name, cartID)
	return err
}

func (r *CartRepo) MarkOrdered(q sqlx.Ext, cartID int64) error {
	_, err := q.Exec(`UPDATE carts SET ordered = 1 WHERE id = ?`, cartID)
	return err
}

// Delete removes the cart scoped to its owner; cart_items cascade.
// Returns false when no row matched, which the caller maps to not-found.
func (r *CartRepo) Delete(accountID, cartID int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM carts WHERE account_id = ? AND id = ?`, accountID, cartID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *CartRepo) ItemCounts(q sqlx.Ext, cartID int64) ([]ItemCount, error) {
	rows := []ItemCount{}
	err := sqlx.Select(q, &rows, `
	  SELECT product_id, count
	  FROM cart_items
	  WHERE cart_id = ?
	  ORDER BY rowid
	`, cartID)
	return rows, err
}

func (r *CartRepo) InsertItem(q sqlx.Ext, cartID, productID int64, count int) error {
	_, err := q.Exec(`INSERT INTO cart_items(cart_id, product_id, count) VALUES(?, ?, ?)`,
		cartID, productID, count)
	return err
}

func (r *CartRepo) UpdateItemCount(q sqlx.Ext, cartID, productID int64, count int) error {
	_, err := q.Exec(`UPDATE cart_items SET count = ? WHERE cart_id = ? AND product_id = ?`,
		count, cartID, productID)
	return err
}

func (r *CartRepo) DeleteItem(q sqlx.Ext, cartID, productID int64) error {
	_, err := q.Exec(`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`,
		cartID, productID)
	return err
}

type resolvedItemRow struct {
	ItemCount int `db:"item_count"`
	domain.Product
}

// ResolvedItems joins each cart-item row with the live product record, in
// insertion order. Run inside the checkout transaction this is the live
// stock read; outside it, the cart view.
func (r *CartRepo) ResolvedItems(q sqlx.Ext, cartID int64) ([]domain.CartItem, error) {
	var rows []resolvedItemRow
	err := sqlx.Select(q, &rows, `
	  SELECT ci.count AS item_count,
	         p.id, p.name, p.description, p.category, p.price_pennies, p.stock_count
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY ci.rowid
	`, cartID)
	if err != nil {
		return nil, err
	}
	items := make([]domain.CartItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.CartItem{Count: row.ItemCount, Product: row.Product})
	}
	return items, nil
}
