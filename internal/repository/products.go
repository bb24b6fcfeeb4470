package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/crediflow/cartera-service/internal/models"
)

// CreateProduct creates a new product in the database
func (r *Repository) CreateProduct(product *models.Product) error {
	query := `
		INSERT INTO cartera.products (id, name, value, category, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	err := r.db.QueryRow(query, product.ID, product.Name, product.Value, product.Category, product.Description).
		Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct updates an existing product
func (r *Repository) UpdateProduct(product *models.Product) error {
	query := `
		UPDATE cartera.products
		SET name = $2, value = $3, category = $4, description = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRow(query, product.ID, product.Name, product.Value, product.Category, product.Description).
		Scan(&product.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("product %s: %w", product.ID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// DeleteProduct removes a product
func (r *Repository) DeleteProduct(id uuid.UUID) error {
	res, err := r.db.Exec(`DELETE FROM cartera.products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return nil
}

// FindProductByID retrieves a product by id
func (r *Repository) FindProductByID(id uuid.UUID) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT id, name, value, category, description, created_at, updated_at
		FROM cartera.products
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&product.ID, &product.Name, &product.Value, &product.Category, &product.Description, &product.CreatedAt, &product.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return product, nil
}

// ListProducts returns all products ordered by name
func (r *Repository) ListProducts() ([]*models.Product, error) {
	query := `
		SELECT id, name, value, category, description, created_at, updated_at
		FROM cartera.products
		ORDER BY name`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.Name, &product.Value, &product.Category, &product.Description, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
