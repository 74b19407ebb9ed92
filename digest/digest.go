package digest

import (
	"context"

	"github.com/hiconvo/notifier/errors"
	"github.com/hiconvo/notifier/log"
	"github.com/hiconvo/notifier/mail"
	"github.com/hiconvo/notifier/model"
)

// Job is the digest of one user for one time window.
type Job struct {
	User   model.User
	Digest *model.Digest
}

// Report summarizes a run.
type Report struct {
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type Digester interface {
	Digest(ctx context.Context, jobs []Job) (*Report, error)
	Flagged(ctx context.Context, msgs []model.FlaggedMessage) (*Report, error)
}

type Config struct {
	Renderer *Renderer
	Mail     *mail.Client
	// Title and Description are shown at the top of every digest.
	Title       string
	Description string
}

type digesterImpl struct {
	*Config
}

func New(c *Config) Digester {
	return &digesterImpl{Config: c}
}

// Digest renders and sends each job. A job that fails is reported and the
// remaining jobs are still processed. Only cancellation of ctx stops the run.
func (d *digesterImpl) Digest(ctx context.Context, jobs []Job) (*Report, error) {
	op := errors.Op("digest.Digest")
	report := &Report{}

	for i := range jobs {
		if err := ctx.Err(); err != nil {
			return report, errors.E(op, err)
		}

		u := &jobs[i].User

		if jobs[i].Digest == nil || jobs[i].Digest.Empty() {
			log.Printf("digest.Digest: skipping empty digest for user=%q", u.ID)
			report.Skipped++

			continue
		}

		if err := d.sendDigest(u, jobs[i].Digest); err != nil {
			log.Alarm(errors.E(op, errors.Errorf("could not send digest for user=%q: %v", u.ID, err)))
			report.Failed++

			continue
		}

		report.Sent++
	}

	log.Printf("digest.Digest: processed %d digests (sent=%d skipped=%d failed=%d)",
		len(jobs), report.Sent, report.Skipped, report.Failed)

	return report, nil
}

func (d *digesterImpl) sendDigest(u *model.User, dg *model.Digest) error {
	text, html, err := d.Renderer.Render(u, dg, d.Title, d.Description)
	if err != nil {
		return err
	}

	return d.Mail.SendDigest(u, text, html)
}

// Flagged renders and sends each flagged posts message.
func (d *digesterImpl) Flagged(ctx context.Context, msgs []model.FlaggedMessage) (*Report, error) {
	op := errors.Op("digest.Flagged")
	report := &Report{}

	for i := range msgs {
		if err := ctx.Err(); err != nil {
			return report, errors.E(op, err)
		}

		if len(msgs[i].Posts) == 0 {
			report.Skipped++
			continue
		}

		text, err := d.Renderer.RenderFlagged(&msgs[i])
		if err == nil {
			err = d.Mail.SendFlagged(&msgs[i].Recipient, text)
		}

		if err != nil {
			log.Alarm(errors.E(op, errors.Errorf("could not send flagged posts for course=%q to user=%q: %v",
				msgs[i].CourseID, msgs[i].Recipient.ID, err)))
			report.Failed++

			continue
		}

		report.Sent++
	}

	log.Printf("digest.Flagged: processed %d messages (sent=%d skipped=%d failed=%d)",
		len(msgs), report.Sent, report.Skipped, report.Failed)

	return report, nil
}
