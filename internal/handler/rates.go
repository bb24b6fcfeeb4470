package handler

import "net/http"

// PolicyRateClient fetches the current central-bank policy rate.
type PolicyRateClient interface {
	GetPolicyRate() (float64, error)
}

// ReferenceRate serves the policy rate for display alongside the portfolio
func (h *Handler) ReferenceRate(client PolicyRateClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rate, err := client.GetPolicyRate()
		if err != nil {
			h.respondError(w, err)
			return
		}
		h.respondJSON(w, http.StatusOK, map[string]float64{"policy_rate": rate})
	}
}
