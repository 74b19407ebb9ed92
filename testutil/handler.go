package testutil

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	sender "github.com/hiconvo/notifier/clients/mail"
	"github.com/hiconvo/notifier/digest"
	"github.com/hiconvo/notifier/handler"
	"github.com/hiconvo/notifier/locale"
	"github.com/hiconvo/notifier/mail"
	"github.com/hiconvo/notifier/metrics"
	"github.com/hiconvo/notifier/model"
	"github.com/hiconvo/notifier/template"
)

// LMSURLBase is the LMS base used by Handler.
const LMSURLBase = "https://lms.example.com"

// Now is the fixed clock of Handler.
var Now = time.Date(2013, 1, 1, 0, 14, 0, 0, time.UTC)

// Handler returns the full notifier handler with mail going to s. Metrics
// are registered with reg.
func Handler(s sender.Client, reg *prometheus.Registry, taskToken string) http.Handler {
	collector := metrics.NewCollector(reg)

	locales, err := locale.NewRegistry(&locale.Config{Observer: collector})
	if err != nil {
		panic(err)
	}

	builder, err := model.NewBuilder(model.Limits{})
	if err != nil {
		panic(err)
	}

	renderer := digest.NewRenderer(&digest.RendererConfig{
		Locales:   locales,
		Templates: template.NewClient(),
		URLs:      model.NewURLBuilder(LMSURLBase),
		Metrics:   collector,
	})

	return handler.New(&handler.Config{
		Digester: digest.New(&digest.Config{
			Renderer:    renderer,
			Mail:        mail.New(&mail.Config{Sender: s, Metrics: collector}),
			Title:       "Discussion Digest",
			Description: "New posts in your courses",
		}),
		Builder:   builder,
		Gatherer:  reg,
		TaskToken: taskToken,
		Interval:  15,
		Now:       func() time.Time { return Now },
	})
}

// Recorder is a mail transport that keeps what it is asked to send.
type Recorder struct {
	Sent []sender.EmailMessage
}

func (r *Recorder) Send(e sender.EmailMessage) error {
	r.Sent = append(r.Sent, e)
	return nil
}
