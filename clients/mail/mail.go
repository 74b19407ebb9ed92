package mail

import (
	"net/http"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	smail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/hiconvo/notifier/errors"
	"github.com/hiconvo/notifier/log"
)

// EmailMessage is a sendable email message. All of its fields
// are strings. No additional processing or rendering is done
// in this package. HTMLContent may be empty.
type EmailMessage struct {
	FromName    string
	FromEmail   string
	ToName      string
	ToEmail     string
	Subject     string
	HTMLContent string
	TextContent string
}

type Client interface {
	Send(e EmailMessage) error
}

type sender interface {
	Send(email *smail.SGMailV3) (*rest.Response, error)
}

type clientImpl struct {
	client sender
}

// NewClient returns a Client that sends through SendGrid.
func NewClient(apiKey string) Client {
	return &clientImpl{client: sendgrid.NewSendClient(apiKey)}
}

func (c *clientImpl) Send(e EmailMessage) error {
	op := errors.Op("mail.Send")

	from := smail.NewEmail(e.FromName, e.FromEmail)
	to := smail.NewEmail(e.ToName, e.ToEmail)

	var email *smail.SGMailV3
	if e.HTMLContent != "" {
		email = smail.NewSingleEmail(from, e.Subject, to, e.TextContent, e.HTMLContent)
	} else {
		email = smail.NewV3MailInit(from, e.Subject, to, smail.NewContent("text/plain", e.TextContent))
	}

	resp, err := c.client.Send(email)
	if err != nil {
		return errors.E(op, err)
	}

	if resp.StatusCode != http.StatusAccepted {
		log.Print(resp.Body)
		return errors.E(op, errors.Str("received non-202 status from SendGrid"))
	}

	return nil
}

type loggerImpl struct{}

// NewLogger returns a Client that only logs what it would send.
func NewLogger() Client {
	return &loggerImpl{}
}

func (l *loggerImpl) Send(e EmailMessage) error {
	log.Printf("mail.Send(from=%s, to=%s, subject=%q, text=%d bytes, html=%d bytes)",
		e.FromEmail, e.ToEmail, e.Subject, len(e.TextContent), len(e.HTMLContent))

	return nil
}
