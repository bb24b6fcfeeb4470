package plan

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crediflow/cartera-service/internal/models"
)

// PaymentInput is the slice of a payment record the applicator needs.
type PaymentInput struct {
	InstallmentNumber int
	Amount            decimal.Decimal
}

// Applied is the outcome of applying a payment: the full updated plan plus a
// copy of the installment the payment landed on.
type Applied struct {
	Plan        []models.Installment
	Installment models.Installment
}

// Apply posts a payment against one installment of the plan and returns the
// updated plan. The input plan is never mutated; callers can diff old and new
// state for persistence.
//
// An installment becomes paid once its cumulative paid amount reaches its
// amount, and paid_date records the moment that first happened; later
// payments never move it. Overpayment is allowed (the display layer clamps
// the remaining balance at zero); use ApplyStrict to reject it instead.
//
// Each payment record must be applied at most once; nothing here deduplicates
// replays.
func Apply(installments []models.Installment, payment PaymentInput, now time.Time) (Applied, error) {
	return apply(installments, payment, now, false)
}

// ApplyStrict behaves like Apply but fails with ErrOverpayment when the
// payment would push paid_amount past the installment amount.
func ApplyStrict(installments []models.Installment, payment PaymentInput, now time.Time) (Applied, error) {
	return apply(installments, payment, now, true)
}

func apply(installments []models.Installment, payment PaymentInput, now time.Time, strict bool) (Applied, error) {
	if !payment.Amount.IsPositive() {
		return Applied{}, fmt.Errorf("%w: payment amount %s must be positive", ErrInvalidArgument, payment.Amount)
	}

	target := -1
	for i, inst := range installments {
		if inst.InstallmentNumber != payment.InstallmentNumber {
			continue
		}
		if target >= 0 {
			return Applied{}, fmt.Errorf("%w: installment number %d appears more than once", ErrCorruptPlan, payment.InstallmentNumber)
		}
		target = i
	}
	if target < 0 {
		return Applied{}, fmt.Errorf("%w: number %d", ErrInstallmentNotFound, payment.InstallmentNumber)
	}

	inst := installments[target]
	newPaid := inst.PaidAmount.Add(payment.Amount)
	if strict && newPaid.GreaterThan(inst.Amount) {
		return Applied{}, fmt.Errorf("%w: %s paid against %s owed on installment %d",
			ErrOverpayment, newPaid, inst.Amount, inst.InstallmentNumber)
	}

	inst.PaidAmount = newPaid
	if newPaid.GreaterThanOrEqual(inst.Amount) {
		inst.Status = models.InstallmentPaid
		if inst.PaidDate == nil {
			paidAt := now
			inst.PaidDate = &paidAt
		}
	} else {
		inst.Status = models.InstallmentPartial
	}

	updated := make([]models.Installment, len(installments))
	copy(updated, installments)
	updated[target] = inst
	return Applied{Plan: updated, Installment: inst}, nil
}
