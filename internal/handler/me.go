package handler

import (
	"net/http"
	"time"
)

// GetAccountSummary returns the authenticated client's read-only account view
func (h *Handler) GetAccountSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextUserID(r)
	if !ok {
		h.respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing user identity"})
		return
	}
	summary, err := h.svc.AccountSummary(userID, time.Now())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, summary)
}
