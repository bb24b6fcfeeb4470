package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crediflow/cartera-service/internal/models"
	"github.com/crediflow/cartera-service/internal/plan"
)

// CreditView pairs a credit with its derived display status.
type CreditView struct {
	*models.Credit
	DisplayStatus plan.Status     `json:"display_status"`
	Remaining     decimal.Decimal `json:"remaining"`
}

// InstallmentView pairs an installment with its derived display status.
type InstallmentView struct {
	models.Installment
	DisplayStatus plan.Status `json:"display_status"`
}

// CreateCredit issues a credit to a client. The principal is copied from the
// product's current value and the payment plan is generated and persisted
// atomically with the credit.
func (s *Service) CreateCredit(clientID, productID uuid.UUID, installmentCount int, startDate time.Time) (*models.Credit, error) {
	client, err := s.repo.FindUserByID(clientID)
	if err != nil {
		return nil, fmt.Errorf("client %s: %w", clientID, err)
	}
	if client.Role != models.RoleClient {
		return nil, fmt.Errorf("user %s: %w", clientID, ErrNotClient)
	}

	product, err := s.repo.FindProductByID(productID)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", productID, err)
	}

	schedule, err := plan.Generate(product.Value, installmentCount, startDate)
	if err != nil {
		return nil, err
	}

	credit := &models.Credit{
		ID:          uuid.New(),
		ClientID:    clientID,
		ProductID:   productID,
		Amount:      product.Value,
		PaymentPlan: schedule,
		Status:      models.CreditActive,
	}
	if err := s.repo.CreateCredit(credit); err != nil {
		return nil, err
	}

	s.log.Infof("Credit created: %s for client %s, %s over %d installments",
		credit.ID, client.Email, credit.Amount, installmentCount)
	return credit, nil
}

// GetCredit retrieves a credit with its display status as of today
func (s *Service) GetCredit(id uuid.UUID, today time.Time) (*CreditView, error) {
	credit, err := s.repo.FindCreditByID(id)
	if err != nil {
		return nil, err
	}
	view := creditView(credit, today)
	return &view, nil
}

// ListCredits returns all credits with display statuses as of today
func (s *Service) ListCredits(today time.Time) ([]CreditView, error) {
	credits, err := s.repo.ListCredits()
	if err != nil {
		return nil, err
	}
	views := make([]CreditView, 0, len(credits))
	for _, credit := range credits {
		views = append(views, creditView(credit, today))
	}
	return views, nil
}

// CreditPlan returns the payment plan of a credit with per-installment
// display statuses as of today
func (s *Service) CreditPlan(id uuid.UUID, today time.Time) ([]InstallmentView, error) {
	credit, err := s.repo.FindCreditByID(id)
	if err != nil {
		return nil, err
	}
	views := make([]InstallmentView, 0, len(credit.PaymentPlan))
	for _, inst := range credit.PaymentPlan {
		views = append(views, InstallmentView{
			Installment:   inst,
			DisplayStatus: plan.InstallmentStatus(inst, today),
		})
	}
	return views, nil
}

func creditView(credit *models.Credit, today time.Time) CreditView {
	remaining := decimal.Zero
	for _, inst := range credit.PaymentPlan {
		remaining = remaining.Add(inst.Remaining())
	}
	return CreditView{
		Credit:        credit,
		DisplayStatus: plan.CreditStatus(*credit, today),
		Remaining:     remaining,
	}
}
