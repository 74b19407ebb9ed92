// Package metrics exposes Prometheus metrics for digest rendering and
// delivery.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes used as label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Collector records notifier metrics. A nil *Collector is valid and records
// nothing.
type Collector struct {
	renders       *prometheus.CounterVec
	renderLatency prometheus.Histogram
	flagged       *prometheus.CounterVec
	sent          *prometheus.CounterVec
	activeScopes  *prometheus.GaugeVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifier_digest_renders_total",
			Help: "Digests rendered, by outcome.",
		}, []string{"outcome"}),
		renderLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "notifier_digest_render_seconds",
			Help:    "Time spent rendering one digest.",
			Buckets: prometheus.DefBuckets,
		}),
		flagged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifier_flagged_renders_total",
			Help: "Flagged post notifications rendered, by outcome.",
		}, []string{"outcome"}),
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifier_emails_sent_total",
			Help: "Emails handed to the mail transport, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		activeScopes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "notifier_locale_active_scopes",
			Help: "Locale scopes currently open, by language.",
		}, []string{"lang"}),
	}

	reg.MustRegister(
		c.renders,
		c.renderLatency,
		c.flagged,
		c.sent,
		c.activeScopes,
	)

	return c
}

// RecordRender records one digest render.
func (c *Collector) RecordRender(d time.Duration, err error) {
	if c == nil {
		return
	}

	c.renders.WithLabelValues(outcome(err)).Inc()
	c.renderLatency.Observe(d.Seconds())
}

// RecordFlagged records one flagged notification render.
func (c *Collector) RecordFlagged(err error) {
	if c == nil {
		return
	}

	c.flagged.WithLabelValues(outcome(err)).Inc()
}

// RecordSent records one email handed to the transport.
func (c *Collector) RecordSent(kind string, err error) {
	if c == nil {
		return
	}

	c.sent.WithLabelValues(kind, outcome(err)).Inc()
}

// ScopeOpened implements locale.Observer.
func (c *Collector) ScopeOpened(lang string) {
	if c == nil {
		return
	}

	c.activeScopes.WithLabelValues(lang).Inc()
}

// ScopeClosed implements locale.Observer.
func (c *Collector) ScopeClosed(lang string) {
	if c == nil {
		return
	}

	c.activeScopes.WithLabelValues(lang).Dec()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}

	return OutcomeOK
}
