package repos

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"emporium/internal/domain"
)

// ErrInsufficientStock is returned when a conditional stock decrement finds
// fewer units than requested.
var ErrInsufficientStock = errors.New("insufficient stock")

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productColumns = `id, name, description, category, price_pennies, stock_count`

func (r *ProductRepo) ByID(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	return p, err
}

// ByIDs returns the products matching ids; unmatched ids are silently
// omitted.
func (r *ProductRepo) ByIDs(ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	query, args, err := sqlx.In(`SELECT `+productColumns+` FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	out := []domain.Product{}
	err = r.db.Select(&out, query, args...)
	return out, err
}

func (r *ProductRepo) All() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `SELECT `+productColumns+` FROM products ORDER BY id`)
	return out, err
}

// Search filters by case-insensitive substring on whichever of category and
// name is non-empty.
func (r *ProductRepo) Search(category, name string) ([]domain.Product, error) {
	where := `1 = 1`
	args := []any{}
	if category != "" {
		where += ` AND LOWER(category) LIKE '%' || LOWER(?) || '%'`
		args = append(args, category)
	}
	if name != "" {
		where += ` AND LOWER(name) LIKE '%' || LOWER(?) || '%'`
		args = append(args, name)
	}

	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT `+productColumns+`
	  FROM products
	  WHERE `+where+`
	  ORDER BY id
	`, args...)
	return out, err
}

func (r *ProductRepo) Create(p domain.Product) (domain.Product, error) {
	res, err := r.db.Exec(`
	  INSERT INTO products(name, description, category, price_pennies, stock_count)
	  VALUES(?, ?, ?, ?, ?)
	`, p.Name, p.Description, p.Category, p.PricePennies, p.StockCount)
	if err != nil {
		return domain.Product{}, err
	}
	p.ID, err = res.LastInsertId()
	return p, err
}

// DecrementStock subtracts "by" units only if enough stock exists, so the
// stock_count >= 0 invariant holds even when two checkouts race past the
// pre-check. The losing transaction gets ErrInsufficientStock.
func (r *ProductRepo) DecrementStock(q sqlx.Ext, productID int64, by int) error {
	res, err := q.Exec(`
	  UPDATE products
	  SET stock_count = stock_count - ?
	  WHERE id = ? AND stock_count >= ?
	`, by, productID, by)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("product %d: %w", productID, ErrInsufficientStock)
	}
	return nil
}
