package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crediflow/cartera-service/internal/models"
)

// CreateProduct creates a financeable product
func (s *Service) CreateProduct(name string, value decimal.Decimal, category, description string) (*models.Product, error) {
	if !value.IsPositive() {
		return nil, fmt.Errorf("product value %s must be positive", value)
	}

	product := &models.Product{
		ID:          uuid.New(),
		Name:        name,
		Value:       value,
		Category:    category,
		Description: description,
	}
	if err := s.repo.CreateProduct(product); err != nil {
		return nil, err
	}

	s.log.Infof("Product created: %s (%s)", product.Name, product.Value)
	return product, nil
}

// UpdateProduct updates a product. Value changes never re-derive the
// principal of credits already issued against the product.
func (s *Service) UpdateProduct(id uuid.UUID, name string, value decimal.Decimal, category, description string) (*models.Product, error) {
	if !value.IsPositive() {
		return nil, fmt.Errorf("product value %s must be positive", value)
	}

	product, err := s.repo.FindProductByID(id)
	if err != nil {
		return nil, err
	}

	product.Name = name
	product.Value = value
	product.Category = category
	product.Description = description
	if err := s.repo.UpdateProduct(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product unless credits reference it
func (s *Service) DeleteProduct(id uuid.UUID) error {
	n, err := s.repo.CountCreditsByProduct(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("product %s financed %d credits: %w", id, n, ErrInUse)
	}
	if err := s.repo.DeleteProduct(id); err != nil {
		return err
	}
	s.log.Infof("Product deleted: %s", id)
	return nil
}

// GetProduct retrieves a product by id
func (s *Service) GetProduct(id uuid.UUID) (*models.Product, error) {
	return s.repo.FindProductByID(id)
}

// ListProducts returns all products
func (s *Service) ListProducts() ([]*models.Product, error) {
	return s.repo.ListProducts()
}
