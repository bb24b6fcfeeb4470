package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/crediflow/cartera-service/internal/models"
	"github.com/crediflow/cartera-service/internal/plan"
)

// Stats computes the admin dashboard aggregates as of today
func (s *Service) Stats(today time.Time) (*models.PortfolioStats, error) {
	users, err := s.repo.ListUsers()
	if err != nil {
		return nil, err
	}
	credits, err := s.repo.ListCredits()
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.ListPayments()
	if err != nil {
		return nil, err
	}

	stats := &models.PortfolioStats{
		TotalPayments:    len(payments),
		TotalIncome:      decimal.Zero,
		TotalOutstanding: decimal.Zero,
	}

	for _, user := range users {
		if user.Role == models.RoleClient {
			stats.TotalClients++
		}
	}

	for _, credit := range credits {
		switch plan.CreditStatus(*credit, today).Kind {
		case plan.KindOverdue:
			stats.OverdueCredits++
		case plan.KindCompleted:
			stats.CompletedCredits++
		default:
			stats.ActiveCredits++
		}
		for _, inst := range credit.PaymentPlan {
			stats.TotalOutstanding = stats.TotalOutstanding.Add(inst.Remaining())
		}
	}

	for _, payment := range payments {
		stats.TotalIncome = stats.TotalIncome.Add(payment.Amount)
	}

	return stats, nil
}
