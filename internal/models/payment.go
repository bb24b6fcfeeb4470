package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment types as recorded from the collection form.
const (
	PaymentFull    = "full"
	PaymentPartial = "partial"
)

// Payment represents a collected payment applied to one installment.
// Immutable once created; applied exactly once to its target installment.
type Payment struct {
	ID                uuid.UUID       `json:"id"`
	CreditID          uuid.UUID       `json:"credit_id"`
	InstallmentNumber int             `json:"installment_number"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentType       string          `json:"payment_type"`
	Date              time.Time       `json:"date"`
	ReceiptNumber     string          `json:"receipt_number"`
	Signature         string          `json:"signature"`
}
