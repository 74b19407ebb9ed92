package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/hiconvo/notifier/errors"
	"github.com/hiconvo/notifier/log"
)

// Observer is told when scopes are activated and deactivated.
type Observer interface {
	ScopeOpened(lang string)
	ScopeClosed(lang string)
}

// Registry is a Provider backed by a message catalog. It is safe for
// concurrent use: it holds no per-render state.
type Registry struct {
	fallback  language.Tag
	supported []language.Tag
	matcher   language.Matcher
	catalog   catalog.Catalog
	observer  Observer
}

// Config configures a Registry.
type Config struct {
	// Languages lists the codes that can be activated. The first one is the
	// fallback language.
	Languages []string
	// Catalog overrides the built-in catalog.
	Catalog catalog.Catalog
	// Observer, if set, sees every activation and deactivation.
	Observer Observer
}

// NewRegistry returns a Registry for the configured languages. Languages
// defaults to every language of the built-in catalog.
func NewRegistry(c *Config) (*Registry, error) {
	op := errors.Op("locale.NewRegistry")

	codes := c.Languages
	if len(codes) == 0 {
		codes = DefaultLanguages
	}

	tags := make([]language.Tag, len(codes))
	for i := range codes {
		t, err := language.Parse(codes[i])
		if err != nil {
			return nil, errors.E(errors.Opf("%s(lang=%q)", op, codes[i]), errors.Validation, err)
		}

		tags[i] = t
	}

	cat := c.Catalog
	if cat == nil {
		b, err := newCatalog(tags[0])
		if err != nil {
			return nil, errors.E(op, errors.Internal, err)
		}

		cat = b
	}

	return &Registry{
		fallback:  tags[0],
		supported: tags,
		matcher:   language.NewMatcher(tags),
		catalog:   cat,
		observer:  c.Observer,
	}, nil
}

// Supported reports whether code matches one of the registry's languages
// closely enough to activate it. Malformed codes are simply unsupported.
func (r *Registry) Supported(code string) bool {
	_, ok := r.lookup(code)
	return ok
}

// Activate returns a translator for code. Unsupported codes get the
// fallback language.
func (r *Registry) Activate(code string) Translator {
	tag, ok := r.lookup(code)
	if !ok {
		log.Printf("locale.Activate: unsupported language %q, using %s", code, r.fallback)
		tag = r.fallback
	}

	if r.observer != nil {
		r.observer.ScopeOpened(tag.String())
	}

	return r.translator(tag)
}

// Deactivate marks the end of a scope opened with Activate.
func (r *Registry) Deactivate(code string) {
	tag, ok := r.lookup(code)
	if !ok {
		tag = r.fallback
	}

	if r.observer != nil {
		r.observer.ScopeClosed(tag.String())
	}
}

// Default returns a translator for the fallback language.
func (r *Registry) Default() Translator {
	return r.translator(r.fallback)
}

func (r *Registry) lookup(code string) (language.Tag, bool) {
	if code == "" {
		return language.Und, false
	}

	tag, err := language.Parse(code)
	if err != nil {
		return language.Und, false
	}

	_, i, conf := r.matcher.Match(tag)
	if conf < language.High {
		return language.Und, false
	}

	return r.supported[i], true
}

func (r *Registry) translator(tag language.Tag) Translator {
	return &printer{
		p:   message.NewPrinter(tag, message.Catalog(r.catalog)),
		tag: tag,
	}
}

type printer struct {
	p   *message.Printer
	tag language.Tag
}

func (p *printer) Sprintf(key string, args ...interface{}) string {
	return p.p.Sprintf(key, args...)
}

func (p *printer) Language() string {
	return p.tag.String()
}
