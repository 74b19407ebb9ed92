package task

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/hiconvo/notifier/bjson"
	"github.com/hiconvo/notifier/digest"
	"github.com/hiconvo/notifier/errors"
	"github.com/hiconvo/notifier/handler/middleware"
	"github.com/hiconvo/notifier/log"
	"github.com/hiconvo/notifier/model"
	"github.com/hiconvo/notifier/schedule"
	"github.com/hiconvo/notifier/valid"
)

type Config struct {
	Digester digest.Digester
	Builder  *model.Builder
	// Interval is the digest window in minutes.
	Interval int
	Now      func() time.Time
}

// DigestJob is one user's digest as sent by the scheduler.
type DigestJob struct {
	User    model.User        `json:"user"`
	Courses []model.RawCourse `json:"courses"`
}

type DigestPayload struct {
	Jobs []DigestJob `json:"jobs"`
}

type FlaggedPayload struct {
	Messages []model.FlaggedMessage `json:"messages"`
}

type response struct {
	RunID string     `json:"runId"`
	From  *time.Time `json:"from,omitempty"`
	To    *time.Time `json:"to,omitempty"`
	*digest.Report
}

func NewHandler(c *Config) *mux.Router {
	if c.Now == nil {
		c.Now = time.Now
	}

	r := mux.NewRouter()

	r.HandleFunc("/tasks/digests", c.SendDigests).Methods("POST")
	r.HandleFunc("/tasks/flagged", c.SendFlagged).Methods("POST")

	return r
}

func (c *Config) SendDigests(w http.ResponseWriter, r *http.Request) {
	var (
		op      = errors.Op("handlers.SendDigests")
		ctx     = r.Context()
		runID   = middleware.RunIDFromContext(ctx)
		payload DigestPayload
	)

	if err := bjson.ReadJSON(&payload, r); err != nil {
		bjson.HandleError(w, err)
		return
	}

	jobs := make([]digest.Job, len(payload.Jobs))
	for i := range payload.Jobs {
		if err := valid.Recipient(&payload.Jobs[i].User); err != nil {
			bjson.HandleError(w, errors.E(op, err))
			return
		}

		d, err := c.Builder.Digest(payload.Jobs[i].Courses)
		if err != nil {
			bjson.HandleError(w, errors.E(op, err))
			return
		}

		jobs[i] = digest.Job{User: payload.Jobs[i].User, Digest: d}
	}

	from, to, err := schedule.TimeSlice(c.Interval, c.Now())
	if err != nil {
		bjson.HandleError(w, errors.E(op, errors.Internal, err))
		return
	}

	log.Printf("%s: run=%s starting with %d jobs for window from=%s to=%s",
		op, runID, len(jobs), from.Format(time.RFC3339), to.Format(time.RFC3339))

	report, err := c.Digester.Digest(ctx, jobs)
	if err != nil {
		bjson.HandleError(w, errors.E(op, err))
		return
	}

	bjson.WriteJSON(w, response{RunID: runID, From: &from, To: &to, Report: report}, http.StatusOK)
}

func (c *Config) SendFlagged(w http.ResponseWriter, r *http.Request) {
	var (
		op      = errors.Op("handlers.SendFlagged")
		ctx     = r.Context()
		runID   = middleware.RunIDFromContext(ctx)
		payload FlaggedPayload
	)

	if err := bjson.ReadJSON(&payload, r); err != nil {
		bjson.HandleError(w, err)
		return
	}

	for i := range payload.Messages {
		if err := valid.Recipient(&payload.Messages[i].Recipient); err != nil {
			bjson.HandleError(w, errors.E(op, err))
			return
		}
	}

	log.Printf("%s: run=%s starting with %d messages", op, runID, len(payload.Messages))

	report, err := c.Digester.Flagged(ctx, payload.Messages)
	if err != nil {
		bjson.HandleError(w, errors.E(op, err))
		return
	}

	bjson.WriteJSON(w, response{RunID: runID, Report: report}, http.StatusOK)
}
