package repos

import (
	"github.com/jmoiron/sqlx"

	"emporium/internal/domain"
)

// AddressRepo owns account-scoped address rows. Every read and write is
// keyed on (account_id, id), so a foreign address behaves exactly like a
// missing one.
type AddressRepo struct{ db *sqlx.DB }

func NewAddressRepo(db *sqlx.DB) *AddressRepo { return &AddressRepo{db: db} }

const addressColumns = `id, house_name_number, street_name, town_city_name, post_code`

func (r *AddressRepo) AllForAccount(accountID int64) ([]domain.Address, error) {
	out := []domain.Address{}
	err := r.db.Select(&out, `
	  SELECT `+addressColumns+`
	  FROM addresses
	  WHERE account_id = ?
	  ORDER BY id
	`, accountID)
	return out, err
}

func (r *AddressRepo) ByID(accountID, id int64) (domain.Address, error) {
	var a domain.Address
	err := r.db.Get(&a, `
	  SELECT `+addressColumns+`
	  FROM addresses
	  WHERE account_id = ? AND id = ?
	`, accountID, id)
	return a, err
}

// Exists is the checkout engine's ownership check, run inside its
// transaction.
func (r *AddressRepo) Exists(q sqlx.Ext, accountID, id int64) (bool, error) {
	var n int
	if err := sqlx.Get(q, &n, `
	  SELECT COUNT(*) FROM addresses WHERE account_id = ? AND id = ?
	`, accountID, id); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *AddressRepo) Create(accountID int64, a domain.Address) (domain.Address, error) {
	res, err := r.db.Exec(`
	  INSERT INTO addresses(account_id, house_name_number, street_name, town_city_name, post_code)
	  VALUES(?, ?, ?, ?, ?)
	`, accountID, a.HouseNameNumber, a.StreetName, a.TownCityName, a.PostCode)
	if err != nil {
		return domain.Address{}, err
	}
	a.ID, err = res.LastInsertId()
	return a, err
}

func (r *AddressRepo) Update(accountID int64, a domain.Address) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE addresses
	  SET house_name_number = ?, street_name = ?, town_city_name = ?, post_code = ?
	  WHERE account_id = ? AND id = ?
	`, a.HouseNameNumber, a.StreetName, a.TownCityName, a.PostCode, accountID, a.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *AddressRepo) Delete(accountID, id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM addresses WHERE account_id = ? AND id = ?`, accountID, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
