package plan

import (
	"time"

	"github.com/crediflow/cartera-service/internal/models"
)

// GraceDays is the window after a due date before an unpaid installment
// counts as overdue, at both installment and credit level.
const GraceDays = 3

// Display status kinds.
const (
	KindPaid      = "paid"
	KindOverdue   = "overdue"
	KindLate      = "late"
	KindPending   = "pending"
	KindActive    = "active"
	KindCompleted = "completed"
)

// Severity levels attached to installment display statuses.
const (
	SeverityOK       = "ok"
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Status is a derived, presentation-facing classification. It is never
// persisted; callers recompute it on every render from (today, data).
type Status struct {
	Kind     string `json:"kind"`
	Label    string `json:"label"`
	Severity string `json:"severity,omitempty"`
}

// InstallmentStatus classifies one installment for display. Paid wins
// outright; otherwise lateness relative to today decides, regardless of any
// partial payment on the installment.
func InstallmentStatus(inst models.Installment, today time.Time) Status {
	if inst.Status == models.InstallmentPaid {
		return Status{Kind: KindPaid, Label: "Pagado", Severity: SeverityOK}
	}
	daysLate := daysBetween(inst.DueDate, today)
	switch {
	case daysLate > GraceDays:
		return Status{Kind: KindOverdue, Label: "Moroso", Severity: SeverityCritical}
	case daysLate > 0:
		return Status{Kind: KindLate, Label: "Vencido", Severity: SeverityWarning}
	default:
		return Status{Kind: KindPending, Label: "Pendiente", Severity: SeverityInfo}
	}
}

// CreditStatus classifies a whole credit for display. A credit is overdue
// when any installment still in pending status is past the grace window.
// Installments in partial status do not trigger credit-level overdue even
// when past the window; see DESIGN.md for why this asymmetry is kept.
func CreditStatus(credit models.Credit, today time.Time) Status {
	for _, inst := range credit.PaymentPlan {
		if inst.Status == models.InstallmentPending && daysBetween(inst.DueDate, today) > GraceDays {
			return Status{Kind: KindOverdue, Label: "Moroso"}
		}
	}
	for _, inst := range credit.PaymentPlan {
		if inst.Status != models.InstallmentPaid {
			return Status{Kind: KindActive, Label: "Activo"}
		}
	}
	return Status{Kind: KindCompleted, Label: "Completado"}
}

// daysBetween counts whole calendar days from a to b, negative when b is
// before a. Clock time within the day is ignored.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
