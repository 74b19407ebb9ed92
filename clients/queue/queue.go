package queue

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sendgrid/rest"

	"github.com/hiconvo/notifier/errors"
	"github.com/hiconvo/notifier/log"
	"github.com/hiconvo/notifier/model"
)

const _flaggedPath = "/tasks/flagged"

// FlaggedPayload is the body of a flagged posts task.
type FlaggedPayload struct {
	Messages []model.FlaggedMessage `json:"messages"`
}

type Client interface {
	PutFlagged(ctx context.Context, msgs []model.FlaggedMessage) error
}

type clientImpl struct {
	baseURL string
	token   string
}

// NewClient returns a Client that posts tasks to the notifier server at
// baseURL. An empty baseURL gives a logger.
func NewClient(baseURL, token string) Client {
	if baseURL == "" {
		return NewLogger()
	}

	return &clientImpl{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

// PutFlagged enqueues a batch of flagged posts messages.
func (c *clientImpl) PutFlagged(ctx context.Context, msgs []model.FlaggedMessage) error {
	op := errors.Opf("queue.PutFlagged(n=%d)", len(msgs))

	if err := ctx.Err(); err != nil {
		return errors.E(op, err)
	}

	jsonBytes, err := json.Marshal(FlaggedPayload{Messages: msgs})
	if err != nil {
		return errors.E(op, err)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	if c.token != "" {
		headers["X-Task-Token"] = c.token
	}

	resp, err := rest.API(rest.Request{
		Method:  rest.Post,
		BaseURL: c.baseURL + _flaggedPath,
		Headers: headers,
		Body:    jsonBytes,
	})
	if err != nil {
		return errors.E(op, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Print(resp.Body)
		return errors.E(op, errors.Errorf("received %d status from task server", resp.StatusCode))
	}

	return nil
}

type loggerImpl struct{}

func NewLogger() Client {
	log.Print("queue.NewLogger: USING QUEUE LOGGER FOR LOCAL DEVELOPMENT")
	return &loggerImpl{}
}

func (c *loggerImpl) PutFlagged(ctx context.Context, msgs []model.FlaggedMessage) error {
	courses := make([]string, len(msgs))
	for i := range msgs {
		courses[i] = msgs[i].CourseID
	}

	log.Printf("queue.PutFlagged(courses=[%s])", strings.Join(courses, ", "))

	return nil
}
