package repos

import (
	"github.com/jmoiron/sqlx"

	"emporium/internal/domain"
)

type AccountRepo struct{ db *sqlx.DB }

func NewAccountRepo(db *sqlx.DB) *AccountRepo { return &AccountRepo{db: db} }

const accountColumns = `id, first_name, last_name, email, password_hash, is_admin`

func (r *AccountRepo) ByEmail(email string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.Get(&a, `SELECT `+accountColumns+` FROM accounts WHERE LOWER(email) = LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) ByID(id int64) (*domain.Account, error) {
	var a domain.Account
	err := r.db.Get(&a, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) Create(firstName, lastName, email, hash string) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO accounts(first_name, last_name, email, password_hash)
	  VALUES(?, ?, ?, ?)
	`, firstName, lastName, email, hash)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *AccountRepo) UpdateName(id int64, firstName, lastName string) error {
	_, err := r.db.Exec(`UPDATE accounts SET first_name = ?, last_name = ? WHERE id = ?`,
		firstName, lastName, id)
	return err
}

func (r *AccountRepo) BindSession(sid string, accountID int64) error {
	_, err := r.db.Exec(`
	  INSERT INTO sessions(id, account_id, last_seen)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET account_id = excluded.account_id, last_seen = CURRENT_TIMESTAMP
	`, sid, accountID)
	return err
}

func (r *AccountRepo) SessionAccount(sid string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.Get(&a, `
	  SELECT a.id, a.first_name, a.last_name, a.email, a.password_hash, a.is_admin
	  FROM sessions s
	  JOIN accounts a ON a.id = s.account_id
	  WHERE s.id = ?
	`, sid)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) UnbindSession(sid string) error {
	_, err := r.db.Exec(`UPDATE sessions SET account_id = NULL, last_seen = CURRENT_TIMESTAMP WHERE id = ?`, sid)
	return err
}
