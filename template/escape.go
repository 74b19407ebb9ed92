package template

import "strings"

// Escaper turns user-authored text into markup-safe HTML.
type Escaper interface {
	Escape(s string) string
}

// EscaperFunc adapts a function to the Escaper interface.
type EscaperFunc func(string) string

// Escape calls f(s).
func (f EscaperFunc) Escape(s string) string {
	return f(s)
}

var _htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// HTMLEscaper escapes the five HTML special characters using named
// entities where HTML defines one.
var HTMLEscaper = EscaperFunc(_htmlReplacer.Replace)
