package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/crediflow/cartera-service/internal/config"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendInstallmentReminder sends an upcoming or overdue installment reminder
func (s *Sender) SendInstallmentReminder(to, name string, installmentNumber int, dueDate time.Time, amount decimal.Decimal, isOverdue bool) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if isOverdue {
		e.Subject = "Overdue Installment Notification"
	} else {
		e.Subject = "Upcoming Installment Reminder"
	}

	// Format email body
	body := fmt.Sprintf(
		"Dear %s,\n\n", name,
	)
	if isOverdue {
		body += fmt.Sprintf(
			"Installment #%d of %s COP was due on %s and is now overdue.\n"+
				"Please make the payment as soon as possible to keep your credit in good standing.\n",
			installmentNumber, amount.StringFixed(2), dueDate.Format("2006-01-02"),
		)
	} else {
		body += fmt.Sprintf(
			"This is a reminder that installment #%d of %s COP is due on %s.\n"+
				"Please make sure the payment is made on time.\n",
			installmentNumber, amount.StringFixed(2), dueDate.Format("2006-01-02"),
		)
	}
	body += "\nBest regards,\nCartera Service"
	e.Text = []byte(body)

	return s.send(e)
}

// SendPaymentReceipt sends a confirmation email after a payment is recorded
func (s *Sender) SendPaymentReceipt(to, name string, installmentNumber int, amount, remaining decimal.Decimal, receiptNumber string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Payment Receipt"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"We received your payment of %s COP for installment #%d.\n"+
			"Receipt number: %s\n"+
			"Remaining balance on this installment: %s COP\n",
		name, amount.StringFixed(2), installmentNumber, receiptNumber, remaining.StringFixed(2),
	)
	body += "\nBest regards,\nCartera Service"
	e.Text = []byte(body)

	return s.send(e)
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %v: %v", e.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %v: %s", e.To, e.Subject)
	return nil
}
