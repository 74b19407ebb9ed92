package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiconvo/notifier/errors"
	"github.com/hiconvo/notifier/metrics"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.RecordRender(time.Millisecond, nil)
	c.RecordRender(time.Millisecond, errors.Str("boom"))
	c.RecordFlagged(nil)
	c.RecordSent("digest", nil)
	c.ScopeOpened("fr")
	c.ScopeOpened("fr")
	c.ScopeClosed("fr")

	expected := `
# HELP notifier_locale_active_scopes Locale scopes currently open, by language.
# TYPE notifier_locale_active_scopes gauge
notifier_locale_active_scopes{lang="fr"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "notifier_locale_active_scopes"))

	expected = `
# HELP notifier_digest_renders_total Digests rendered, by outcome.
# TYPE notifier_digest_renders_total counter
notifier_digest_renders_total{outcome="error"} 1
notifier_digest_renders_total{outcome="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "notifier_digest_renders_total"))
}

func TestNilCollector(t *testing.T) {
	var c *metrics.Collector

	assert.NotPanics(t, func() {
		c.RecordRender(time.Second, nil)
		c.RecordFlagged(nil)
		c.RecordSent("flagged", nil)
		c.ScopeOpened("en")
		c.ScopeClosed("en")
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)
	c.RecordFlagged(nil)

	rr := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `notifier_flagged_renders_total{outcome="ok"} 1`)
}
