// Package locale selects the translation context used while rendering a
// digest for one user.
//
// There is no process-wide active language. Each render opens its own
// Scope, renders with the Scope's Translator and closes it, so concurrent
// renders for users with different languages never see each other's state.
package locale

// Translator renders message keys in one language.
type Translator interface {
	// Sprintf looks up key in the catalog and formats it with args.
	Sprintf(key string, args ...interface{}) string
	// Language returns the BCP 47 code of the translator's language.
	Language() string
}

// Provider decides which language codes can be activated and hands out
// translators for them.
type Provider interface {
	Supported(code string) bool
	Activate(code string) Translator
	Deactivate(code string)
	Default() Translator
}

// Scope is the span during which a language is active for a render. A Scope
// is owned by a single render and must not be shared.
type Scope struct {
	p       Provider
	code    string
	tr      Translator
	active  bool
	entered bool
}

// Enter opens a Scope for code. If code is empty or not supported, nothing
// is activated and the Scope uses the provider's default translator.
// Every Scope must be closed with Exit.
func Enter(p Provider, code string) *Scope {
	s := &Scope{p: p, code: code, entered: true}

	if code != "" && p.Supported(code) {
		s.tr = p.Activate(code)
		s.active = true
	} else {
		s.tr = p.Default()
	}

	return s
}

// Translator returns the translator for the scope. After Exit it is the
// provider's default.
func (s *Scope) Translator() Translator {
	return s.tr
}

// Active reports whether the scope activated a language that has not been
// deactivated yet.
func (s *Scope) Active() bool {
	return s.active
}

// Exit deactivates the scope's language if one was activated. It is safe to
// call more than once; the provider is only told once.
func (s *Scope) Exit() {
	if !s.entered {
		return
	}

	s.entered = false

	if s.active {
		s.active = false
		s.p.Deactivate(s.code)
	}

	s.tr = s.p.Default()
}
