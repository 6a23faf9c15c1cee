package mailer

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

const (
	TemplateOrderConfirmation = "orderConfirmation"
	TemplateEmailVerification = "emailVerification"
	TemplatePasswordReset     = "passwordReset"
)

type Message struct {
	To       string
	Subject  string
	Template string
	Data     map[string]any
}

// Outcome makes the best-effort send observable instead of a swallowed
// exception. A failed Outcome never aborts the operation it is attached to.
type Outcome struct {
	Sent   bool   `json:"sent"`
	Reason string `json:"reason,omitempty"`
}

func SentOutcome() Outcome {
	return Outcome{Sent: true}
}

func FailedOutcome(err error) Outcome {
	return Outcome{Sent: false, Reason: err.Error()}
}

type Sender interface {
	Send(ctx context.Context, msg Message) Outcome
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, user, pass, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) Outcome {
	html, err := render(msg.Template, msg.Data)
	if err != nil {
		return FailedOutcome(err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		return FailedOutcome(err)
	}
	return SentOutcome()
}

func render(template string, data map[string]any) (string, error) {
	switch template {
	case TemplateOrderConfirmation:
		return fmt.Sprintf(
			"<h2>Thank you for your order, %v!</h2>"+
				"<p>Your order <strong>%v</strong> has been received and is pending processing.</p>"+
				"<p>Order total: %v</p>"+
				"<p>We will contact you to arrange payment and shipping.</p>",
			data["name"], data["orderNumber"], data["total"],
		), nil
	case TemplateEmailVerification:
		return fmt.Sprintf(
			"<h2>Welcome to Bazaar, %v!</h2>"+
				"<p>Please verify your email address by clicking the link below:</p>"+
				`<a href="%v">Verify Email</a>`+
				"<p>If you didn't create an account, please ignore this email.</p>",
			data["name"], data["verificationLink"],
		), nil
	case TemplatePasswordReset:
		return fmt.Sprintf(
			"<h2>Password Reset Request</h2>"+
				"<p>Hello %v,</p>"+
				"<p>You requested a password reset. Click the link below to reset your password:</p>"+
				`<a href="%v">Reset Password</a>`+
				"<p>This link will expire in 10 minutes.</p>",
			data["name"], data["resetLink"],
		), nil
	default:
		return "", fmt.Errorf("unknown mail template %q", template)
	}
}
