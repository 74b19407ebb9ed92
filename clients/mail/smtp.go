package mail

import (
	"gopkg.in/gomail.v2"

	"github.com/hiconvo/notifier/errors"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type smtpImpl struct {
	dialer *gomail.Dialer
}

// NewSMTPClient returns a Client that sends through an SMTP relay.
func NewSMTPClient(c SMTPConfig) Client {
	return &smtpImpl{dialer: gomail.NewDialer(c.Host, c.Port, c.Username, c.Password)}
}

func (s *smtpImpl) Send(e EmailMessage) error {
	if err := s.dialer.DialAndSend(newSMTPMessage(e)); err != nil {
		return errors.E(errors.Opf("mail.SMTPSend(to=%s)", e.ToEmail), err)
	}

	return nil
}

func newSMTPMessage(e EmailMessage) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", e.FromEmail, e.FromName)
	m.SetAddressHeader("To", e.ToEmail, e.ToName)
	m.SetHeader("Subject", e.Subject)
	m.SetBody("text/plain", e.TextContent)

	if e.HTMLContent != "" {
		m.AddAlternative("text/html", e.HTMLContent)
	}

	return m
}
