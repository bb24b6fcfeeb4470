package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type paymentRequest struct {
	CreditID          uuid.UUID       `json:"credit_id"`
	InstallmentNumber int             `json:"installment_number"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentType       string          `json:"payment_type"`
}

// ListPayments returns all recorded payments
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.ListPayments()
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, payments)
}

// RecordPayment applies a collected payment to an installment
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !h.decode(w, r, &req) {
		return
	}

	payment, installment, err := h.svc.RecordPayment(req.CreditID, req.InstallmentNumber, req.Amount, req.PaymentType, time.Now())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"payment":     payment,
		"installment": installment,
	})
}
