package plan

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crediflow/cartera-service/internal/models"
)

// MaxInstallments bounds the number of installments a plan may have.
const MaxInstallments = 60

// installmentCadence is the fixed spacing between due dates. Plans are not
// calendar-month aware: installment i falls due i*30 days after the start.
const installmentCadence = 30

// Generate builds the installment schedule for a new credit. Installment
// amounts are rounded to two decimals and the rounding residue is carried by
// the final installment, so the schedule always sums to exactly the
// principal. The first installment falls due 30 days after startDate.
//
// Generate has no side effects; persisting the plan is the caller's
// responsibility.
func Generate(principal decimal.Decimal, installmentCount int, startDate time.Time) ([]models.Installment, error) {
	if installmentCount < 1 || installmentCount > MaxInstallments {
		return nil, fmt.Errorf("%w: installment count %d outside [1, %d]", ErrInvalidArgument, installmentCount, MaxInstallments)
	}
	if !principal.IsPositive() {
		return nil, fmt.Errorf("%w: principal %s must be positive", ErrInvalidArgument, principal)
	}

	// Rounding down keeps the residue non-negative, so the last installment
	// can never come out below the others.
	monthly := principal.Div(decimal.NewFromInt(int64(installmentCount))).RoundDown(2)
	if monthly.IsZero() {
		return nil, fmt.Errorf("%w: principal %s too small to split into %d installments", ErrInvalidArgument, principal, installmentCount)
	}
	// Whatever rounding leaves over lands on the last installment.
	last := principal.Sub(monthly.Mul(decimal.NewFromInt(int64(installmentCount - 1))))

	schedule := make([]models.Installment, 0, installmentCount)
	for i := 1; i <= installmentCount; i++ {
		amount := monthly
		if i == installmentCount {
			amount = last
		}
		schedule = append(schedule, models.Installment{
			InstallmentNumber: i,
			Amount:            amount,
			DueDate:           startDate.AddDate(0, 0, i*installmentCadence),
			Status:            models.InstallmentPending,
			PaidAmount:        decimal.Zero,
			PaidDate:          nil,
		})
	}
	return schedule, nil
}
