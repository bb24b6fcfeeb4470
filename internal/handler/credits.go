package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

type creditRequest struct {
	ClientID     uuid.UUID `json:"client_id"`
	ProductID    uuid.UUID `json:"product_id"`
	Installments int       `json:"installments"`
	StartDate    time.Time `json:"start_date"`
}

// ListCredits returns all credits with derived display statuses
func (h *Handler) ListCredits(w http.ResponseWriter, r *http.Request) {
	credits, err := h.svc.ListCredits(time.Now())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, credits)
}

// CreateCredit issues a credit with a generated payment plan
func (h *Handler) CreateCredit(w http.ResponseWriter, r *http.Request) {
	var req creditRequest
	if !h.decode(w, r, &req) {
		return
	}

	credit, err := h.svc.CreateCredit(req.ClientID, req.ProductID, req.Installments, req.StartDate)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, credit)
}

// GetCredit returns one credit with its derived display status
func (h *Handler) GetCredit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid credit id"})
		return
	}
	credit, err := h.svc.GetCredit(id, time.Now())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, credit)
}

// GetCreditPlan returns the payment plan with per-installment display statuses
func (h *Handler) GetCreditPlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid credit id"})
		return
	}
	installments, err := h.svc.CreditPlan(id, time.Now())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, installments)
}

// ListCreditPayments returns the payments posted against one credit
func (h *Handler) ListCreditPayments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid credit id"})
		return
	}
	payments, err := h.svc.ListCreditPayments(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, payments)
}
