package services

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"emporium/internal/apperr"
	"emporium/internal/domain"
	"emporium/internal/repos"
	"emporium/internal/validate"
)

type AccountService struct {
	Accounts *repos.AccountRepo
}

func NewAccountService(accounts *repos.AccountRepo) *AccountService {
	return &AccountService{Accounts: accounts}
}

// Register creates an account with a bcrypt credential. The email must be
// well-formed and unused.
func (s *AccountService) Register(firstName, lastName, email, password string) (*domain.Account, error) {
	firstName, okFirst := validate.Name(firstName)
	lastName, okLast := validate.Name(lastName)
	email, okEmail := validate.Email(email)
	if !okFirst || !okLast || !okEmail || password == "" {
		return nil, apperr.InvalidInput("first name, last name, a valid email and a password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}

	id, err := s.Accounts.Create(firstName, lastName, email, string(hash))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, apperr.InvalidInput("email is already registered")
		}
		return nil, err
	}
	return s.Accounts.ByID(id)
}

func (s *AccountService) Get(id int64) (*domain.Account, error) {
	return s.Accounts.ByID(id)
}

func (s *AccountService) UpdateName(id int64, firstName, lastName string) (*domain.Account, error) {
	firstName, okFirst := validate.Name(firstName)
	lastName, okLast := validate.Name(lastName)
	if !okFirst || !okLast {
		return nil, apperr.InvalidInput("first name and last name are required")
	}
	if err := s.Accounts.UpdateName(id, firstName, lastName); err != nil {
		return nil, err
	}
	return s.Accounts.ByID(id)
}
