package services

import (
	"database/sql"
	"errors"

	"emporium/internal/apperr"
	"emporium/internal/domain"
	"emporium/internal/repos"
)

type ProductService struct {
	Prods *repos.ProductRepo
}

func NewProductService(prods *repos.ProductRepo) *ProductService {
	return &ProductService{Prods: prods}
}

func (s *ProductService) Get(id int64) (domain.Product, error) {
	p, err := s.Prods.ByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperr.NotFound("product not found")
	}
	return p, err
}

func (s *ProductService) GetMultiple(ids []int64) ([]domain.Product, error) {
	return s.Prods.ByIDs(ids)
}

// Search lists products filtered by case-insensitive category and/or name
// substrings; with neither supplied it lists everything.
func (s *ProductService) Search(category, name string) ([]domain.Product, error) {
	if category == "" && name == "" {
		return s.Prods.All()
	}
	return s.Prods.Search(category, name)
}

func (s *ProductService) Create(name, description, category string, pricePennies int64, stockCount int) (domain.Product, error) {
	if name == "" || description == "" || category == "" {
		return domain.Product{}, apperr.InvalidInput("name, description and category are required")
	}
	if pricePennies < 0 {
		return domain.Product{}, apperr.InvalidInput("price must be a non-negative integer")
	}
	if stockCount < 0 {
		return domain.Product{}, apperr.InvalidInput("stock must be a non-negative integer")
	}

	return s.Prods.Create(domain.Product{
		Name:         name,
		Description:  description,
		Category:     category,
		PricePennies: pricePennies,
		StockCount:   stockCount,
	})
}
