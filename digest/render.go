package digest

import (
	"time"

	"github.com/hiconvo/notifier/errors"
	"github.com/hiconvo/notifier/locale"
	"github.com/hiconvo/notifier/metrics"
	"github.com/hiconvo/notifier/model"
	"github.com/hiconvo/notifier/template"
)

// Templates renders the view data built by a Renderer.
type Templates interface {
	RenderDigest(tr locale.Translator, d *template.Digest) (string, string, error)
	RenderFlagged(f *template.Flagged) (string, error)
}

type RendererConfig struct {
	Locales   locale.Provider
	Templates Templates
	URLs      model.URLBuilder
	Metrics   *metrics.Collector
}

// Renderer turns digests and flagged post listings into email bodies. It
// keeps no state between calls and may be shared by concurrent workers.
type Renderer struct {
	*RendererConfig
}

func NewRenderer(c *RendererConfig) *Renderer {
	return &Renderer{RendererConfig: c}
}

// Render returns the plain text and HTML bodies of d for u. The user's
// language, if supported, is active for the duration of the call only.
// Neither u nor d is modified.
func (r *Renderer) Render(u *model.User, d *model.Digest, subject, description string) (text, html string, err error) {
	op := errors.Opf("digest.Render(user=%s)", u.ID)
	start := time.Now()

	defer func() { r.Metrics.RecordRender(time.Since(start), err) }()

	scope := locale.Enter(r.Locales, u.Preferences.Language)
	defer scope.Exit()

	text, html, err = r.Templates.RenderDigest(scope.Translator(), r.view(u, d, subject, description))
	if err != nil {
		return "", "", errors.E(op, err)
	}

	return text, html, nil
}

// RenderFlagged returns the plain text body listing m's posts in order.
func (r *Renderer) RenderFlagged(m *model.FlaggedMessage) (string, error) {
	text, err := r.Templates.RenderFlagged(&template.Flagged{
		CourseID:      m.CourseID,
		RecipientName: m.Recipient.DisplayName(),
		Posts:         append([]string(nil), m.Posts...),
	})

	r.Metrics.RecordFlagged(err)

	if err != nil {
		return "", errors.E(errors.Opf("digest.RenderFlagged(course=%s)", m.CourseID), err)
	}

	return text, nil
}

func (r *Renderer) view(u *model.User, d *model.Digest, subject, description string) *template.Digest {
	courses := make([]template.Course, len(d.Courses))
	for i, c := range d.Courses {
		threads := make([]template.Thread, len(c.Threads))
		for j, t := range c.Threads {
			items := make([]template.Item, len(t.Items))
			for k, item := range t.Items {
				items[k] = template.Item{
					Body:       item.Body,
					AuthorName: item.Meta.AuthorName,
				}
			}

			threads[j] = template.Thread{
				Title: t.Title,
				URL:   r.URLs.ThreadURL(t.CourseID, t.CommentableID, t.ID),
				Items: items,
			}
		}

		courses[i] = template.Course{
			CourseID: c.CourseID,
			URL:      r.URLs.CourseURL(c.CourseID),
			Threads:  threads,
		}
	}

	return &template.Digest{
		Subject:     subject,
		Description: description,
		UserName:    u.DisplayName(),
		Courses:     courses,
	}
}
