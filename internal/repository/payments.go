package repository

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/crediflow/cartera-service/internal/models"
)

// CreatePayment records a collected payment. Payments are append-only.
func (r *Repository) CreatePayment(payment *models.Payment) error {
	query := `
		INSERT INTO cartera.payments (id, credit_id, installment_number, amount, payment_type, date, receipt_number, signature)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(query, payment.ID, payment.CreditID, payment.InstallmentNumber,
		payment.Amount, payment.PaymentType, payment.Date, payment.ReceiptNumber, payment.Signature)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// ListPayments returns all payments, newest first
func (r *Repository) ListPayments() ([]*models.Payment, error) {
	return r.listPayments(`
		SELECT id, credit_id, installment_number, amount, payment_type, date, receipt_number, signature
		FROM cartera.payments
		ORDER BY date DESC`)
}

// ListPaymentsByCredit returns the payments posted against one credit
func (r *Repository) ListPaymentsByCredit(creditID uuid.UUID) ([]*models.Payment, error) {
	return r.listPayments(`
		SELECT id, credit_id, installment_number, amount, payment_type, date, receipt_number, signature
		FROM cartera.payments
		WHERE credit_id = $1
		ORDER BY date DESC`, creditID)
}

func (r *Repository) listPayments(query string, args ...interface{}) ([]*models.Payment, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		if err := rows.Scan(&payment.ID, &payment.CreditID, &payment.InstallmentNumber,
			&payment.Amount, &payment.PaymentType, &payment.Date, &payment.ReceiptNumber, &payment.Signature); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}
