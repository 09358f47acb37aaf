package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// OpenDB opens the sqlite store, applies the schema and seeds demo data.
// The returned handle is injected into every repo; there is no package-level
// pool.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if the DB is empty (idempotent; safe on every start)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Accounts
CREATE TABLE IF NOT EXISTS accounts(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  is_admin INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_email_nocase ON accounts(LOWER(email));

-- Sessions
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  account_id INTEGER NULL REFERENCES accounts(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_account ON sessions(account_id);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  category TEXT NOT NULL,
  price_pennies INTEGER NOT NULL CHECK (price_pennies >= 0),
  stock_count INTEGER NOT NULL CHECK (stock_count >= 0)
);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_category ON products(LOWER(category));

-- Addresses
CREATE TABLE IF NOT EXISTS addresses(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  account_id INTEGER NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
  house_name_number TEXT NOT NULL,
  street_name TEXT NOT NULL,
  town_city_name TEXT NOT NULL,
  post_code TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_addresses_account ON addresses(account_id);

-- Carts
CREATE TABLE IF NOT EXISTS carts(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  account_id INTEGER NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  ordered INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_carts_account ON carts(account_id);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    INTEGER NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  count INTEGER NOT NULL CHECK (count >= 1),
  PRIMARY KEY (cart_id, product_id)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  account_id INTEGER NOT NULL REFERENCES accounts(id),
  address_id INTEGER NOT NULL REFERENCES addresses(id),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_account ON orders(account_id);

CREATE TABLE IF NOT EXISTS order_items(
  order_id   INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL REFERENCES products(id),
  count INTEGER NOT NULL CHECK (count >= 1),
  PRIMARY KEY (order_id, product_id)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo accounts/products/addresses")

	hash := func(raw string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return string(h)
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO accounts(first_name,last_name,email,password_hash,is_admin) VALUES
	  ('David','Morgan','david.morgan@emporium.test',?,0),
	  ('Ada','Okafor','ada.okafor@emporium.test',?,0),
	  ('Site','Admin','admin@emporium.test',?,1)`,
		hash("Password01"), hash("Password01"), hash("Password01"))

	tx.MustExec(`INSERT INTO products(name,description,category,price_pennies,stock_count) VALUES
	  ('Toothbrush','Bristly','Health & Beauty',123,23),
	  ('Hairbrush','Bristly','Health & Beauty',234,12),
	  ('Kettle','Rapid boil','Kitchen',2999,8),
	  ('Mug','Stoneware, 350ml','Kitchen',499,40)`)

	tx.MustExec(`INSERT INTO addresses(account_id,house_name_number,street_name,town_city_name,post_code) VALUES
	  (1,'Pendennis','Tredegar Road','Ebbw Vale','NP23 6LP'),
	  (2,'14','Harbour Lane','Porthcawl','CF36 3AF')`)

	return tx.Commit()
}
