package service

import (
	"time"

	"github.com/crediflow/cartera-service/internal/models"
	"github.com/crediflow/cartera-service/internal/plan"
)

// upcomingWindowDays is how far ahead of a due date reminder emails go out.
const upcomingWindowDays = 3

// SendPaymentReminders emails clients about installments that are overdue or
// coming due within the next few days. Run daily from the scheduler.
func (s *Service) SendPaymentReminders(now time.Time) {
	credits, err := s.repo.ListCredits()
	if err != nil {
		s.log.Errorf("Reminder run failed to list credits: %v", err)
		return
	}

	sent := 0
	for _, credit := range credits {
		var client *models.User
		for _, inst := range credit.PaymentPlan {
			if inst.Status == models.InstallmentPaid {
				continue
			}

			status := plan.InstallmentStatus(inst, now)
			overdue := status.Kind == plan.KindOverdue || status.Kind == plan.KindLate
			daysUntilDue := int(inst.DueDate.Sub(now).Hours() / 24)
			upcoming := !overdue && daysUntilDue >= 0 && daysUntilDue <= upcomingWindowDays
			if !overdue && !upcoming {
				continue
			}

			if client == nil {
				client, err = s.repo.FindUserByID(credit.ClientID)
				if err != nil {
					s.log.Errorf("Reminder skipped, client %s not found for credit %s: %v", credit.ClientID, credit.ID, err)
					break
				}
			}

			if err := s.mailer.SendInstallmentReminder(client.Email, client.Name,
				inst.InstallmentNumber, inst.DueDate, inst.Remaining(), overdue); err != nil {
				s.log.Errorf("Failed to send reminder for credit %s installment %d: %v", credit.ID, inst.InstallmentNumber, err)
				continue
			}
			sent++
		}
	}

	s.log.Infof("Reminder run complete: %d emails sent", sent)
}
