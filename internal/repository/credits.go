package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/crediflow/cartera-service/internal/models"
)

// The payment plan travels with its credit as a JSONB column; installments
// are never addressed as rows of their own.

// CreateCredit creates a credit together with its payment plan
func (r *Repository) CreateCredit(credit *models.Credit) error {
	planJSON, err := json.Marshal(credit.PaymentPlan)
	if err != nil {
		return fmt.Errorf("failed to encode payment plan: %w", err)
	}
	query := `
		INSERT INTO cartera.credits (id, client_id, product_id, amount, payment_plan, status, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING created_date`
	err = r.db.QueryRow(query, credit.ID, credit.ClientID, credit.ProductID, credit.Amount, planJSON, credit.Status).
		Scan(&credit.CreatedDate)
	if err != nil {
		return fmt.Errorf("failed to create credit: %w", err)
	}
	return nil
}

// FindCreditByID retrieves a credit by id
func (r *Repository) FindCreditByID(id uuid.UUID) (*models.Credit, error) {
	query := `
		SELECT id, client_id, product_id, amount, payment_plan, status, created_date
		FROM cartera.credits
		WHERE id = $1`
	credit, err := scanCredit(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("credit %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find credit: %w", err)
	}
	return credit, nil
}

// ListCredits returns all credits, newest first
func (r *Repository) ListCredits() ([]*models.Credit, error) {
	return r.listCredits(`
		SELECT id, client_id, product_id, amount, payment_plan, status, created_date
		FROM cartera.credits
		ORDER BY created_date DESC`)
}

// ListCreditsByClient returns the credits of one client, newest first
func (r *Repository) ListCreditsByClient(clientID uuid.UUID) ([]*models.Credit, error) {
	return r.listCredits(`
		SELECT id, client_id, product_id, amount, payment_plan, status, created_date
		FROM cartera.credits
		WHERE client_id = $1
		ORDER BY created_date DESC`, clientID)
}

// UpdateCreditPlan persists a functionally-updated payment plan
func (r *Repository) UpdateCreditPlan(id uuid.UUID, installments []models.Installment) error {
	planJSON, err := json.Marshal(installments)
	if err != nil {
		return fmt.Errorf("failed to encode payment plan: %w", err)
	}
	res, err := r.db.Exec(`UPDATE cartera.credits SET payment_plan = $2 WHERE id = $1`, id, planJSON)
	if err != nil {
		return fmt.Errorf("failed to update payment plan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("credit %s: %w", id, ErrNotFound)
	}
	return nil
}

// CountCreditsByProduct counts credits referencing a product
func (r *Repository) CountCreditsByProduct(productID uuid.UUID) (int, error) {
	return r.countCredits(`SELECT COUNT(*) FROM cartera.credits WHERE product_id = $1`, productID)
}

// CountCreditsByClient counts credits held by a client
func (r *Repository) CountCreditsByClient(clientID uuid.UUID) (int, error) {
	return r.countCredits(`SELECT COUNT(*) FROM cartera.credits WHERE client_id = $1`, clientID)
}

func (r *Repository) countCredits(query string, arg interface{}) (int, error) {
	var n int
	if err := r.db.QueryRow(query, arg).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count credits: %w", err)
	}
	return n, nil
}

func (r *Repository) listCredits(query string, args ...interface{}) ([]*models.Credit, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list credits: %w", err)
	}
	defer rows.Close()

	var credits []*models.Credit
	for rows.Next() {
		credit, err := scanCredit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit: %w", err)
		}
		credits = append(credits, credit)
	}
	return credits, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCredit(row rowScanner) (*models.Credit, error) {
	credit := &models.Credit{}
	var planJSON []byte
	err := row.Scan(&credit.ID, &credit.ClientID, &credit.ProductID, &credit.Amount, &planJSON, &credit.Status, &credit.CreatedDate)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(planJSON, &credit.PaymentPlan); err != nil {
		return nil, fmt.Errorf("failed to decode payment plan: %w", err)
	}
	return credit, nil
}
