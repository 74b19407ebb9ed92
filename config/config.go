// Package config reads the notifier's settings from secrets and the
// environment.
package config

import (
	"strconv"
	"strings"

	"github.com/imdario/mergo"
	"gopkg.in/validator.v2"

	sender "github.com/hiconvo/notifier/clients/mail"
	"github.com/hiconvo/notifier/clients/secrets"
	"github.com/hiconvo/notifier/errors"
	"github.com/hiconvo/notifier/model"
)

// Mail transports.
const (
	TransportLog      = "log"
	TransportSendGrid = "sendgrid"
	TransportSMTP     = "smtp"
)

type Config struct {
	Port      string
	SentryDSN string
	Release   string
	// TaskURL is where batch commands post tasks. Empty means inline.
	TaskURL   string
	TaskToken string

	LMSURLBase string `validate:"nonzero"`
	Limits     model.Limits
	// BatchSize is the number of flagged messages sent per batch.
	BatchSize int `validate:"min=1"`
	// Interval is the digest window in minutes.
	Interval  int `validate:"min=1,max=1440"`
	Languages []string

	Subject          string
	FlaggedSubject   string
	Title            string
	Description      string
	FromName         string
	FromEmail        string `validate:"nonzero"`
	RewriteRecipient string

	Transport      string
	SendGridAPIKey string
	SMTP           sender.SMTPConfig
}

// Defaults fill any setting that is not provided.
var Defaults = Config{
	Port:           "8080",
	Release:        "dev",
	LMSURLBase:     "http://localhost:8000",
	BatchSize:      5,
	Interval:       1440,
	Subject:        "Daily Discussion Digest",
	FlaggedSubject: "Flagged Discussion Posts",
	Title:          "Discussion Digest",
	Description:    "A digest of unread content from course discussions you are following.",
	FromName:       "Discussion Digest",
	FromEmail:      "notifications@example.com",
	Transport:      TransportLog,
	SMTP:           sender.SMTPConfig{Host: "localhost", Port: 25},
}

// Load builds a Config from sc. Unset values take their defaults.
func Load(sc secrets.Client) (*Config, error) {
	op := errors.Op("config.Load")

	c := Config{
		Port:             sc.Get("PORT", ""),
		SentryDSN:        sc.Get("SENTRY_DSN", ""),
		Release:          sc.Get("RELEASE", ""),
		TaskURL:          sc.Get("TASK_URL", ""),
		TaskToken:        sc.Get("TASK_TOKEN", ""),
		LMSURLBase:       sc.Get("LMS_URL_BASE", ""),
		Subject:          sc.Get("FORUM_DIGEST_EMAIL_SUBJECT", ""),
		FlaggedSubject:   sc.Get("FORUM_DIGEST_FLAGGED_EMAIL_SUBJECT", ""),
		Title:            sc.Get("FORUM_DIGEST_EMAIL_TITLE", ""),
		Description:      sc.Get("FORUM_DIGEST_EMAIL_DESCRIPTION", ""),
		FromName:         sc.Get("FORUM_DIGEST_EMAIL_SENDER_NAME", ""),
		FromEmail:        sc.Get("FORUM_DIGEST_EMAIL_SENDER", ""),
		RewriteRecipient: sc.Get("EMAIL_REWRITE_RECIPIENT", ""),
		Transport:        strings.ToLower(sc.Get("EMAIL_TRANSPORT", "")),
		SendGridAPIKey:   sc.Get("SENDGRID_API_KEY", ""),
		Languages:        splitList(sc.Get("LANGUAGES", "")),
		SMTP: sender.SMTPConfig{
			Host:     sc.Get("SMTP_HOST", ""),
			Username: sc.Get("SMTP_USERNAME", ""),
			Password: sc.Get("SMTP_PASSWORD", ""),
		},
	}

	ints := []struct {
		id  string
		dst *int
	}{
		{"FORUM_DIGEST_TASK_BATCH_SIZE", &c.BatchSize},
		{"FORUM_DIGEST_TASK_INTERVAL", &c.Interval},
		{"FORUM_DIGEST_ITEM_LIMIT", &c.Limits.ItemBody},
		{"FORUM_DIGEST_TITLE_LIMIT", &c.Limits.ThreadTitle},
		{"SMTP_PORT", &c.SMTP.Port},
	}

	for _, i := range ints {
		v := sc.Get(i.id, "")
		if v == "" {
			continue
		}

		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.E(errors.Opf("%s(%s)", op, i.id), errors.Validation, err)
		}

		*i.dst = n
	}

	if err := mergo.Merge(&c, Defaults); err != nil {
		return nil, errors.E(op, errors.Internal, err)
	}

	if err := mergo.Merge(&c.Limits, model.DefaultLimits); err != nil {
		return nil, errors.E(op, errors.Internal, err)
	}

	if err := validator.Validate(c); err != nil {
		return nil, errors.E(op, errors.Validation, err)
	}

	switch c.Transport {
	case TransportLog, TransportSMTP:
	case TransportSendGrid:
		if c.SendGridAPIKey == "" {
			return nil, errors.E(op, errors.Validation, errors.Str("SENDGRID_API_KEY is required"))
		}
	default:
		return nil, errors.E(op, errors.Validation, errors.Errorf("unknown mail transport %q", c.Transport))
	}

	return &c, nil
}

// Sender returns the mail transport selected by c.
func (c *Config) Sender() sender.Client {
	switch c.Transport {
	case TransportSendGrid:
		return sender.NewClient(c.SendGridAPIKey)
	case TransportSMTP:
		return sender.NewSMTPClient(c.SMTP)
	default:
		return sender.NewLogger()
	}
}

func splitList(s string) []string {
	var out []string

	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}

	return out
}
