package services

import (
	"database/sql"
	"errors"

	"emporium/internal/apperr"
	"emporium/internal/domain"
	"emporium/internal/repos"
)

type OrderService struct {
	Orders *repos.OrderRepo
}

func NewOrderService(orders *repos.OrderRepo) *OrderService {
	return &OrderService{Orders: orders}
}

func (s *OrderService) List(accountID int64) ([]domain.Order, error) {
	return s.Orders.AllForAccount(accountID)
}

func (s *OrderService) Get(accountID, orderID int64) (domain.Order, error) {
	o, err := s.Orders.ByID(accountID, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, apperr.NotFound("order not found")
	}
	return o, err
}
