package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/getsentry/raven-go"
	"github.com/gofrs/uuid"
	"github.com/gorilla/handlers"

	"github.com/hiconvo/notifier/bjson"
	"github.com/hiconvo/notifier/errors"
	"github.com/hiconvo/notifier/log"
)

type contextKey int

const (
	runIDKey contextKey = iota
)

// RunIDHeader carries the id of the run handling a request.
const RunIDHeader = "X-Run-Id"

// TaskTokenHeader must carry the task token when one is configured.
const TaskTokenHeader = "X-Task-Token"

// WithLogging logs requests to stdout.
func WithLogging(next http.Handler) http.Handler {
	return handlers.LoggingHandler(os.Stdout, next)
}

// WithErrorReporting reports errors to Sentry.
func WithErrorReporting(next http.Handler) http.Handler {
	return raven.Recoverer(next)
}

// WithRunID gives every request a run id, echoed in the response headers,
// so that the log lines of one run can be correlated.
func WithRunID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.NewV4()
		if err != nil {
			bjson.HandleError(w, errors.E(errors.Op("middleware.WithRunID"), err))
			return
		}

		w.Header().Set(RunIDHeader, id.String())

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), runIDKey, id.String())))
	})
}

// RunIDFromContext returns the run id added by WithRunID, or an empty string.
func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

// WithTaskToken rejects requests that do not carry token. An empty token
// disables the check.
func WithTaskToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			given := r.Header.Get(TaskTokenHeader)
			if subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
				log.Printf("middleware.WithTaskToken: rejected %s %s", r.Method, r.URL.Path)
				bjson.WriteJSON(w, map[string]string{"message": "Not found"}, http.StatusNotFound)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithJSONRequests is middleware that ensures that a content-type of "application/json"
// is set on all write POST, PUT, and PATCH requets.
func WithJSONRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isWriteRequest(r.Method) {
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				bjson.HandleError(w, errors.E(
					errors.Op("bjson.WithJSONRequests"),
					errors.Str("correct header not present"),
					http.StatusUnsupportedMediaType))
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func isWriteRequest(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch || method == http.MethodDelete
}
