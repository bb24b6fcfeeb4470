package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crediflow/cartera-service/internal/models"
	"github.com/crediflow/cartera-service/internal/plan"
)

// AccountSummary is the read-only view a client sees of their own account.
type AccountSummary struct {
	Client         *models.User    `json:"client"`
	Credits        []CreditSummary `json:"credits"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
}

// CreditSummary is one credit within an account summary.
type CreditSummary struct {
	Credit        *models.Credit    `json:"credit"`
	DisplayStatus plan.Status       `json:"display_status"`
	Installments  []InstallmentView `json:"installments"`
	Remaining     decimal.Decimal   `json:"remaining"`
}

// AccountSummary builds the client-facing account view as of today
func (s *Service) AccountSummary(clientID uuid.UUID, today time.Time) (*AccountSummary, error) {
	client, err := s.repo.FindUserByID(clientID)
	if err != nil {
		return nil, err
	}

	credits, err := s.repo.ListCreditsByClient(clientID)
	if err != nil {
		return nil, err
	}

	summary := &AccountSummary{
		Client:         client,
		Credits:        make([]CreditSummary, 0, len(credits)),
		TotalRemaining: decimal.Zero,
		TotalPaid:      decimal.Zero,
	}
	for _, credit := range credits {
		cs := CreditSummary{
			Credit:        credit,
			DisplayStatus: plan.CreditStatus(*credit, today),
			Installments:  make([]InstallmentView, 0, len(credit.PaymentPlan)),
			Remaining:     decimal.Zero,
		}
		for _, inst := range credit.PaymentPlan {
			cs.Installments = append(cs.Installments, InstallmentView{
				Installment:   inst,
				DisplayStatus: plan.InstallmentStatus(inst, today),
			})
			cs.Remaining = cs.Remaining.Add(inst.Remaining())
			summary.TotalPaid = summary.TotalPaid.Add(inst.PaidAmount)
		}
		summary.TotalRemaining = summary.TotalRemaining.Add(cs.Remaining)
		summary.Credits = append(summary.Credits, cs)
	}
	return summary, nil
}
