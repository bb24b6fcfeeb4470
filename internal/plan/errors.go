package plan

import "errors"

// Typed failures returned by the plan engine. Callers match with errors.Is.
var (
	// ErrInvalidArgument covers non-positive principal or payment amounts and
	// installment counts outside [1, MaxInstallments].
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInstallmentNotFound is returned when a payment targets an
	// installment number absent from the plan.
	ErrInstallmentNotFound = errors.New("installment not found")

	// ErrCorruptPlan is returned when a plan contains duplicate installment
	// numbers. Applying a payment against such a plan fails closed instead of
	// picking one match.
	ErrCorruptPlan = errors.New("corrupt payment plan")

	// ErrOverpayment is returned by ApplyStrict when a payment would push
	// paid_amount past the installment amount.
	ErrOverpayment = errors.New("payment exceeds installment amount")
)
