package repos

import (
	"github.com/jmoiron/sqlx"

	"emporium/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type orderRow struct {
	ID        int64  `db:"id"`
	AddressID int64  `db:"address_id"`
	CreatedAt string `db:"created_at"`
}

// Create inserts the order header. Runs inside the checkout transaction.
func (r *OrderRepo) Create(q sqlx.Ext, accountID, addressID int64) (int64, error) {
	res, err := q.Exec(`INSERT INTO orders(account_id, address_id) VALUES(?, ?)`,
		accountID, addressID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertItem freezes one cart line onto the order.
func (r *OrderRepo) InsertItem(q sqlx.Ext, orderID, productID int64, count int) error {
	_, err := q.Exec(`INSERT INTO order_items(order_id, product_id, count) VALUES(?, ?, ?)`,
		orderID, productID, count)
	return err
}

func (r *OrderRepo) AllForAccount(accountID int64) ([]domain.Order, error) {
	var rows []orderRow
	if err := r.db.Select(&rows, `
	  SELECT id, address_id, created_at
	  FROM orders
	  WHERE account_id = ?
	  ORDER BY id
	`, accountID); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		o, err := r.resolve(row)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// ByID resolves one order scoped to its owner; sql.ErrNoRows when the pair
// does not match.
func (r *OrderRepo) ByID(accountID, orderID int64) (domain.Order, error) {
	var row orderRow
	if err := r.db.Get(&row, `
	  SELECT id, address_id, created_at
	  FROM orders
	  WHERE account_id = ? AND id = ?
	`, accountID, orderID); err != nil {
		return domain.Order{}, err
	}
	return r.resolve(row)
}

func (r *OrderRepo) resolve(row orderRow) (domain.Order, error) {
	o := domain.Order{ID: row.ID, CreatedAt: row.CreatedAt}

	if err := r.db.Get(&o.Address, `
	  SELECT id, house_name_number, street_name, town_city_name, post_code
	  FROM addresses
	  WHERE id = ?
	`, row.AddressID); err != nil {
		return domain.Order{}, err
	}

	var items []resolvedItemRow
	if err := r.db.Select(&items, `
	  SELECT oi.count AS item_count,
	         p.id, p.name, p.description, p.category, p.price_pennies, p.stock_count
	  FROM order_items oi JOIN products p ON p.id = oi.product_id
	  WHERE oi.order_id = ?
	  ORDER BY oi.rowid
	`, row.ID); err != nil {
		return domain.Order{}, err
	}

	o.Items = make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		o.Items = append(o.Items, domain.OrderItem{Count: it.ItemCount, Product: it.Product})
	}
	return o, nil
}
