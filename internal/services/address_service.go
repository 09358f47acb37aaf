package services

import (
	"database/sql"
	"errors"

	"emporium/internal/apperr"
	"emporium/internal/domain"
	"emporium/internal/repos"
)

type AddressService struct {
	Addrs *repos.AddressRepo
}

func NewAddressService(addrs *repos.AddressRepo) *AddressService {
	return &AddressService{Addrs: addrs}
}

func (s *AddressService) List(accountID int64) ([]domain.Address, error) {
	return s.Addrs.AllForAccount(accountID)
}

func (s *AddressService) Get(accountID, id int64) (domain.Address, error) {
	a, err := s.Addrs.ByID(accountID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Address{}, apperr.NotFound("address not found")
	}
	return a, err
}

func (s *AddressService) Create(accountID int64, a domain.Address) (domain.Address, error) {
	if err := validateAddress(a); err != nil {
		return domain.Address{}, err
	}
	return s.Addrs.Create(accountID, a)
}

func (s *AddressService) Update(accountID int64, a domain.Address) (domain.Address, error) {
	if err := validateAddress(a); err != nil {
		return domain.Address{}, err
	}
	ok, err := s.Addrs.Update(accountID, a)
	if err != nil {
		return domain.Address{}, err
	}
	if !ok {
		return domain.Address{}, apperr.NotFound("address not found")
	}
	return s.Get(accountID, a.ID)
}

func (s *AddressService) Delete(accountID, id int64) (bool, error) {
	return s.Addrs.Delete(accountID, id)
}

func validateAddress(a domain.Address) error {
	if a.HouseNameNumber == "" || a.StreetName == "" || a.TownCityName == "" || a.PostCode == "" {
		return apperr.InvalidInput("all address fields are required")
	}
	return nil
}
