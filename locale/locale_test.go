package locale_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiconvo/notifier/locale"
)

type countingObserver struct {
	mu     sync.Mutex
	opened map[string]int
	closed map[string]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{opened: map[string]int{}, closed: map[string]int{}}
}

func (o *countingObserver) ScopeOpened(lang string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened[lang]++
}

func (o *countingObserver) ScopeClosed(lang string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed[lang]++
}

func newRegistry(t *testing.T, obs locale.Observer) *locale.Registry {
	t.Helper()

	r, err := locale.NewRegistry(&locale.Config{Observer: obs})
	require.NoError(t, err)

	return r
}

func TestRegistrySupported(t *testing.T) {
	r := newRegistry(t, nil)

	tests := []struct {
		Code   string
		Expect bool
	}{
		{"en", true},
		{"fr", true},
		{"fr-CA", true},
		{"es", true},
		{"de", true},
		{"", false},
		{"x-unsupported-lang", false},
		{"ja", false},
		{"not a language", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.Expect, r.Supported(tt.Code), "code=%q", tt.Code)
	}
}

func TestRegistryTranslates(t *testing.T) {
	r := newRegistry(t, nil)

	fr := r.Activate("fr")
	assert.Equal(t, "fr", fr.Language())
	assert.Equal(t, "Bonjour Ada,", fr.Sprintf(locale.MsgGreeting, "Ada"))
	r.Deactivate("fr")

	en := r.Default()
	assert.Equal(t, "en", en.Language())
	assert.Equal(t, "Hi Ada,", en.Sprintf(locale.MsgGreeting, "Ada"))
}

func TestNewRegistryRejectsBadLanguage(t *testing.T) {
	_, err := locale.NewRegistry(&locale.Config{Languages: []string{"en", "!!"}})
	assert.Error(t, err)
}

func TestEnterSupported(t *testing.T) {
	obs := newCountingObserver()
	r := newRegistry(t, obs)

	s := locale.Enter(r, "fr")
	assert.True(t, s.Active())
	assert.Equal(t, "fr", s.Translator().Language())

	s.Exit()
	s.Exit()

	assert.False(t, s.Active())
	assert.Equal(t, "en", s.Translator().Language())
	assert.Equal(t, 1, obs.opened["fr"])
	assert.Equal(t, 1, obs.closed["fr"])
}

func TestEnterUnsupportedOrAbsent(t *testing.T) {
	obs := newCountingObserver()
	r := newRegistry(t, obs)

	for _, code := range []string{"", "x-unsupported-lang"} {
		s := locale.Enter(r, code)
		assert.False(t, s.Active())
		assert.Equal(t, "en", s.Translator().Language())
		s.Exit()
	}

	assert.Empty(t, obs.opened)
	assert.Empty(t, obs.closed)
}

func TestConcurrentScopesAreIndependent(t *testing.T) {
	obs := newCountingObserver()
	r := newRegistry(t, obs)

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		code := locale.DefaultLanguages[i%len(locale.DefaultLanguages)]

		wg.Add(1)

		go func(code string) {
			defer wg.Done()

			s := locale.Enter(r, code)
			defer s.Exit()

			assert.Equal(t, code, s.Translator().Language())
		}(code)
	}

	wg.Wait()

	for _, code := range locale.DefaultLanguages {
		assert.Equal(t, obs.opened[code], obs.closed[code], "lang=%s", code)
	}
}
