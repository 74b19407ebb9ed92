package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hiconvo/notifier/bjson"
	"github.com/hiconvo/notifier/digest"
	"github.com/hiconvo/notifier/handler/middleware"
	"github.com/hiconvo/notifier/handler/task"
	"github.com/hiconvo/notifier/metrics"
	"github.com/hiconvo/notifier/model"
)

type Config struct {
	Digester digest.Digester
	Builder  *model.Builder
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer  prometheus.Gatherer
	TaskToken string
	// Interval is the digest window in minutes.
	Interval int
	// Now overrides the clock used for digest windows.
	Now func() time.Time
}

func New(c *Config) http.Handler {
	router := mux.NewRouter()

	router.NotFoundHandler = http.HandlerFunc(notFound)

	if c.Gatherer != nil {
		router.Handle("/metrics", metrics.Handler(c.Gatherer)).Methods("GET")
	}

	s := router.NewRoute().Subrouter()
	s.Use(middleware.WithTaskToken(c.TaskToken))
	s.Use(middleware.WithJSONRequests)
	s.Use(middleware.WithRunID)

	s.PathPrefix("/tasks").Handler(task.NewHandler(&task.Config{
		Digester: c.Digester,
		Builder:  c.Builder,
		Interval: c.Interval,
		Now:      c.Now,
	}))

	h := middleware.WithLogging(router)
	h = middleware.WithErrorReporting(h)

	return h
}

func notFound(w http.ResponseWriter, r *http.Request) {
	bjson.WriteJSON(w, map[string]string{"message": "Not found"}, http.StatusNotFound)
}
