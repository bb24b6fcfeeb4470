package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crediflow/cartera-service/internal/models"
	"github.com/crediflow/cartera-service/internal/plan"
	"github.com/crediflow/cartera-service/internal/utils"
)

const receiptPrefix = "RC"

// RecordPayment applies a collected payment to one installment of a credit.
// The payment record and the updated plan are persisted; the caller is
// responsible for not submitting the same payment twice. Two concurrent
// payments against the same credit are a read-modify-write race this method
// does not arbitrate.
func (s *Service) RecordPayment(creditID uuid.UUID, installmentNumber int, amount decimal.Decimal, paymentType string, now time.Time) (*models.Payment, *models.Installment, error) {
	if paymentType != models.PaymentFull && paymentType != models.PaymentPartial {
		return nil, nil, fmt.Errorf("%q: %w", paymentType, ErrInvalidPaymentType)
	}

	credit, err := s.repo.FindCreditByID(creditID)
	if err != nil {
		return nil, nil, err
	}

	applied, err := plan.Apply(credit.PaymentPlan, plan.PaymentInput{
		InstallmentNumber: installmentNumber,
		Amount:            amount,
	}, now)
	if err != nil {
		return nil, nil, err
	}

	receiptNumber, err := utils.GenerateReceiptNumber(receiptPrefix, 12)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate receipt number: %w", err)
	}

	payment := &models.Payment{
		ID:                uuid.New(),
		CreditID:          creditID,
		InstallmentNumber: installmentNumber,
		Amount:            amount,
		PaymentType:       paymentType,
		Date:              now,
		ReceiptNumber:     receiptNumber,
	}
	payment.Signature = utils.SignPayment(creditID.String(), installmentNumber, amount.StringFixed(2), receiptNumber, s.config.HMACSecret)

	if err := s.repo.CreatePayment(payment); err != nil {
		return nil, nil, err
	}
	if err := s.repo.UpdateCreditPlan(creditID, applied.Plan); err != nil {
		return nil, nil, fmt.Errorf("payment %s recorded but plan update failed: %w", payment.ID, err)
	}

	s.log.Infof("Payment recorded: %s of %s against credit %s installment %d (%s)",
		payment.ID, amount, creditID, installmentNumber, applied.Installment.Status)

	// Receipt email is best effort; the payment stands either way.
	if client, err := s.repo.FindUserByID(credit.ClientID); err == nil {
		if err := s.mailer.SendPaymentReceipt(client.Email, client.Name, installmentNumber,
			amount, applied.Installment.Remaining(), receiptNumber); err != nil {
			s.log.Warnf("Failed to send receipt for payment %s: %v", payment.ID, err)
		}
	}

	inst := applied.Installment
	return payment, &inst, nil
}

// ListPayments returns all recorded payments
func (s *Service) ListPayments() ([]*models.Payment, error) {
	return s.repo.ListPayments()
}

// ListCreditPayments returns the payments posted against one credit
func (s *Service) ListCreditPayments(creditID uuid.UUID) ([]*models.Payment, error) {
	return s.repo.ListPaymentsByCredit(creditID)
}
