package template

import (
	"bytes"
	"embed"
	"fmt"
	htmltpl "html/template"
	"io/fs"
	"path"
	"strings"
	texttpl "text/template"

	"github.com/hiconvo/notifier/errors"
	"github.com/hiconvo/notifier/locale"
	"github.com/hiconvo/notifier/truncate"
)

const _previewLen = 200

//go:embed templates
var _files embed.FS

// Item is a renderable post or comment. It is always a constituent of a
// Thread. Body is plain text.
type Item struct {
	Body       string
	AuthorName string
}

// Thread is a representation of a renderable forum thread.
type Thread struct {
	Title string
	URL   string
	Items []Item
}

// Course is a representation of a renderable course and its threads.
type Course struct {
	CourseID string
	URL      string
	Threads  []Thread
}

// Digest is a representation of a renderable email digest. Description
// accepts markdown.
type Digest struct {
	renderable
	Subject          string
	Description      string
	PlainDescription string
	UserName         string
	Courses          []Course
	Preview          string
	Lang             string
}

// Flagged is a representation of a renderable flagged posts notification.
type Flagged struct {
	CourseID      string
	RecipientName string
	Posts         []string
}

// Option configures a Client.
type Option func(*Client)

// WithEscaper replaces HTMLEscaper.
func WithEscaper(e Escaper) Option {
	return func(c *Client) {
		c.escaper = e
	}
}

type Client struct {
	html    map[string]*htmltpl.Template
	text    map[string]*texttpl.Template
	escaper Escaper
}

// NewClient parses the embedded templates. It panics if they are invalid,
// since that can only happen at startup.
func NewClient(opts ...Option) *Client {
	c := &Client{
		html:    make(map[string]*htmltpl.Template),
		text:    make(map[string]*texttpl.Template),
		escaper: HTMLEscaper,
	}

	for _, opt := range opts {
		opt(c)
	}

	files, err := fs.Sub(_files, "templates")
	if err != nil {
		panic(err)
	}

	layouts, err := fs.Glob(files, "layouts/*.html")
	if err != nil {
		panic(err)
	}

	// Generate our templates map from our layouts/ and includes/ directories
	for _, layout := range layouts {
		name := path.Base(layout)
		c.html[name] = htmltpl.Must(htmltpl.New(name).
			Funcs(htmltpl.FuncMap(stubFuncs())).
			ParseFS(files, "includes/*.html", layout))
	}

	texts, err := fs.Glob(files, "text/*.txt")
	if err != nil {
		panic(err)
	}

	for _, text := range texts {
		name := path.Base(text)
		c.text[name] = texttpl.Must(texttpl.New(name).
			Funcs(texttpl.FuncMap(stubFuncs())).
			ParseFS(files, text))
	}

	// Make sure the expected templates are there
	for _, tplName := range []string{"digest.html"} {
		if _, ok := c.html[tplName]; !ok {
			panic(fmt.Sprintf("Template '%v' not found", tplName))
		}
	}

	for _, tplName := range []string{"digest.txt", "flagged.txt"} {
		if _, ok := c.text[tplName]; !ok {
			panic(fmt.Sprintf("Template '%v' not found", tplName))
		}
	}

	return c
}

// RenderDigest returns a rendered digest email as plain text and HTML.
// Strings passed through tr are looked up in its catalog.
func (c *Client) RenderDigest(tr locale.Translator, d *Digest) (string, string, error) {
	op := errors.Op("template.RenderDigest")

	d.Lang = tr.Language()
	d.RenderMarkdown(d.Description)

	plainDescription, err := d.PlainBody()
	if err != nil {
		return "", "", errors.E(op, err)
	}

	d.PlainDescription = plainDescription

	textTpl, err := c.text["digest.txt"].Clone()
	if err != nil {
		return "", "", errors.E(op, err)
	}

	var buf bytes.Buffer
	if err := textTpl.Funcs(texttpl.FuncMap{"t": tr.Sprintf}).Execute(&buf, d); err != nil {
		return "", "", errors.E(op, err)
	}

	plainText := buf.String()
	d.Preview = getPreview(plainText)

	htmlTpl, err := c.html["digest.html"].Clone()
	if err != nil {
		return "", "", errors.E(op, err)
	}

	s := newSplicer(c.escaper)
	htmlTpl.Funcs(htmltpl.FuncMap{"t": tr.Sprintf, "esc": s.hold})

	html, err := d.RenderHTML(htmlTpl, d, s)
	if err != nil {
		return "", "", errors.E(op, err)
	}

	return plainText, html, nil
}

// RenderFlagged returns a rendered flagged posts notification. There is no
// HTML version.
func (c *Client) RenderFlagged(f *Flagged) (string, error) {
	var buf bytes.Buffer
	if err := c.text["flagged.txt"].Execute(&buf, f); err != nil {
		return "", errors.E(errors.Op("template.RenderFlagged"), err)
	}

	return buf.String(), nil
}

func stubFuncs() map[string]interface{} {
	return map[string]interface{}{
		"t": func(key string, args ...interface{}) string {
			return fmt.Sprintf(key, args...)
		},
		"esc": func(s string) htmltpl.HTML {
			return htmltpl.HTML(HTMLEscaper.Escape(s))
		},
	}
}

func getPreview(plainText string) string {
	return truncate.Words(strings.TrimSpace(plainText), _previewLen)
}
