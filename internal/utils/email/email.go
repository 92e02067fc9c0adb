package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/edusys/school-payments/internal/config"
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

// SendPaymentVerified notifies a student that a payment was accepted
func (s *Sender) SendPaymentVerified(to, studentName, courseName string, number int, amount float64) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Payment Verified"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your payment of %.2f USD for installment #%d of %s has been verified.\n"+
			"No further action is needed for this installment.\n"+
			"\nBest regards,\nSchool Payments",
		studentName, amount, number, courseName,
	)
	e.Text = []byte(body)

	return s.send(e)
}

// SendPaymentRejected notifies a student that a payment proof was refused
func (s *Sender) SendPaymentRejected(to, studentName, courseName string, number int, reason string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Payment Proof Rejected"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"The payment proof you submitted for installment #%d of %s was rejected.\n"+
			"Reason: %s\n"+
			"The installment is pending again; please submit a new proof of payment.\n"+
			"\nBest regards,\nSchool Payments",
		studentName, number, courseName, reason,
	)
	e.Text = []byte(body)

	return s.send(e)
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %v: %v", e.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %v: %s", e.To, e.Subject)
	return nil
}
