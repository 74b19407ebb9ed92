package mail

import (
	"github.com/hiconvo/notifier/clients/mail"
	"github.com/hiconvo/notifier/metrics"
	"github.com/hiconvo/notifier/model"
)

const (
	_fromEmail = "notifications@discussions.example.com"
	_fromName  = "Discussion Digest"
	_subject   = "Discussion Digest"
)

type Config struct {
	Sender    mail.Client
	FromName  string
	FromEmail string
	// Subject is used for both digests and flagged posts notifications
	// unless FlaggedSubject is set.
	Subject        string
	FlaggedSubject string
	// RewriteRecipient, if set, receives every message instead of the
	// actual recipient. Used on staging.
	RewriteRecipient string
	Metrics          *metrics.Collector
}

// Client addresses rendered bodies and hands them to the transport.
type Client struct {
	mail    mail.Client
	metrics *metrics.Collector

	fromName       string
	fromEmail      string
	subject        string
	flaggedSubject string
	rewrite        string
}

func New(c *Config) *Client {
	cl := &Client{
		mail:           c.Sender,
		metrics:        c.Metrics,
		fromName:       c.FromName,
		fromEmail:      c.FromEmail,
		subject:        c.Subject,
		flaggedSubject: c.FlaggedSubject,
		rewrite:        c.RewriteRecipient,
	}

	if cl.fromName == "" {
		cl.fromName = _fromName
	}

	if cl.fromEmail == "" {
		cl.fromEmail = _fromEmail
	}

	if cl.subject == "" {
		cl.subject = _subject
	}

	if cl.flaggedSubject == "" {
		cl.flaggedSubject = cl.subject
	}

	return cl
}

// SendDigest sends a rendered digest to u.
func (c *Client) SendDigest(u *model.User, plainText, html string) error {
	err := c.mail.Send(mail.EmailMessage{
		FromName:    c.fromName,
		FromEmail:   c.fromEmail,
		ToName:      u.DisplayName(),
		ToEmail:     c.recipient(u),
		Subject:     c.subject,
		TextContent: plainText,
		HTMLContent: html,
	})

	c.metrics.RecordSent("digest", err)

	return err
}

// SendFlagged sends a rendered flagged posts notification to a moderator.
// It has no HTML part.
func (c *Client) SendFlagged(u *model.User, plainText string) error {
	err := c.mail.Send(mail.EmailMessage{
		FromName:    c.fromName,
		FromEmail:   c.fromEmail,
		ToName:      u.DisplayName(),
		ToEmail:     c.recipient(u),
		Subject:     c.flaggedSubject,
		TextContent: plainText,
	})

	c.metrics.RecordSent("flagged", err)

	return err
}

func (c *Client) recipient(u *model.User) string {
	if c.rewrite != "" {
		return c.rewrite
	}

	return u.Email
}
