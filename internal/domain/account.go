package domain

type Account struct {
	ID        int64  `db:"id" json:"-"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
	Email     string `db:"email" json:"email"`
	Hash      string `db:"password_hash" json:"-"`
	Admin     bool   `db:"is_admin" json:"-"`
}
