package models

import "github.com/shopspring/decimal"

// PortfolioStats represents aggregate portfolio figures for the admin dashboard
type PortfolioStats struct {
	TotalClients     int             `json:"total_clients"`
	ActiveCredits    int             `json:"active_credits"`
	OverdueCredits   int             `json:"overdue_credits"`
	CompletedCredits int             `json:"completed_credits"`
	TotalPayments    int             `json:"total_payments"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}
