package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Persisted installment statuses. Distinct from the display status computed
// by the plan package, which additionally considers lateness.
const (
	InstallmentPending = "pending"
	InstallmentPartial = "partial"
	InstallmentPaid    = "paid"
)

// CreditActive is the lifecycle status assigned at creation. The display
// status (active/overdue/completed) is always derived, never persisted.
const CreditActive = "active"

// Installment is one scheduled repayment unit of a credit's payment plan.
type Installment struct {
	InstallmentNumber int             `json:"installment_number"`
	Amount            decimal.Decimal `json:"amount"`
	DueDate           time.Time       `json:"due_date"`
	Status            string          `json:"status"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	PaidDate          *time.Time      `json:"paid_date"`
}

// Remaining returns the unpaid balance of the installment. Overpaid
// installments report zero, not a negative balance.
func (i Installment) Remaining() decimal.Decimal {
	r := i.Amount.Sub(i.PaidAmount)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// Credit represents a credit in the system. The payment plan is created
// atomically with the credit and never resized; only paid_amount, status and
// paid_date of its installments change afterwards.
type Credit struct {
	ID          uuid.UUID       `json:"id"`
	ClientID    uuid.UUID       `json:"client_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentPlan []Installment   `json:"payment_plan"`
	Status      string          `json:"status"`
	CreatedDate time.Time       `json:"created_date"`
}
