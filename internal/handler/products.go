package handler

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type productRequest struct {
	Name        string          `json:"name"`
	Value       decimal.Decimal `json:"value"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// ListProducts returns all products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts()
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, products)
}

// CreateProduct creates a product
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !h.decode(w, r, &req) {
		return
	}

	product, err := h.svc.CreateProduct(req.Name, req.Value, req.Category, req.Description)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, product)
}

// UpdateProduct updates a product
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	var req productRequest
	if !h.decode(w, r, &req) {
		return
	}

	product, err := h.svc.UpdateProduct(id, req.Name, req.Value, req.Category, req.Description)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a product
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	if err := h.svc.DeleteProduct(id); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}
