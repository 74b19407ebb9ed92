package template

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	"regexp"
	"strconv"

	"github.com/aymerick/douceur/inliner"
	"github.com/jaytaylor/html2text"
	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"

	"github.com/hiconvo/notifier/errors"
)

// nolint
var _policy = bluemonday.UGCPolicy()

type renderable struct {
	RenderedBody htmltpl.HTML
}

// RenderMarkdown renders data as sanitized HTML into RenderedBody.
func (r *renderable) RenderMarkdown(data string) {
	r.RenderedBody = htmltpl.HTML(_policy.SanitizeBytes(blackfriday.Run([]byte(data))))
}

// PlainBody returns RenderedBody converted back to text.
func (r *renderable) PlainBody() (string, error) {
	if r.RenderedBody == "" {
		return "", nil
	}

	text, err := html2text.FromString(string(r.RenderedBody), html2text.Options{})
	if err != nil {
		return "", errors.E(errors.Op("renderable.PlainBody"), err)
	}

	return text, nil
}

// RenderHTML executes tpl, inlines its CSS and splices in the escaped
// user content held by s.
func (r *renderable) RenderHTML(tpl *htmltpl.Template, data interface{}, s *splicer) (string, error) {
	var op errors.Op = "renderable.RenderHTML"

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return "", errors.E(op, err)
	}

	html, err := inliner.Inline(buf.String())
	if err != nil {
		return "", errors.E(op, err)
	}

	return s.splice(html), nil
}

// The inliner parses and reserializes the whole document, which would
// rewrite entities in user content. User content is therefore rendered as
// placeholders made of private use characters and put back afterwards.
const (
	_phOpen  = '\uE000'
	_phClose = '\uE001'
)

var _phRe = regexp.MustCompile(`\x{E000}([0-9]+)\x{E001}`)

type splicer struct {
	escaper Escaper
	values  []string
}

func newSplicer(e Escaper) *splicer {
	return &splicer{escaper: e}
}

// hold escapes s and returns the placeholder standing in for it.
func (s *splicer) hold(v string) htmltpl.HTML {
	s.values = append(s.values, s.escaper.Escape(v))
	return htmltpl.HTML(fmt.Sprintf("%c%d%c", _phOpen, len(s.values)-1, _phClose))
}

func (s *splicer) splice(html string) string {
	return _phRe.ReplaceAllStringFunc(html, func(m string) string {
		i, err := strconv.Atoi(_phRe.FindStringSubmatch(m)[1])
		if err != nil || i >= len(s.values) {
			return m
		}

		return s.values[i]
	})
}
