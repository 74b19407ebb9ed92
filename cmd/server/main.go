package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/getsentry/raven-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hiconvo/notifier/clients/secrets"
	"github.com/hiconvo/notifier/config"
	"github.com/hiconvo/notifier/digest"
	"github.com/hiconvo/notifier/errors"
	"github.com/hiconvo/notifier/handler"
	"github.com/hiconvo/notifier/locale"
	"github.com/hiconvo/notifier/mail"
	"github.com/hiconvo/notifier/metrics"
	"github.com/hiconvo/notifier/model"
	"github.com/hiconvo/notifier/template"
)

func main() {
	ctx := context.Background()
	conf, err := config.Load(secrets.NewClient(nil))
	if err != nil {
		log.Panicf("config.Load: %v", err)
	}

	raven.SetDSN(conf.SentryDSN)
	raven.SetRelease(conf.Release)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	collector := metrics.NewCollector(reg)

	locales, err := locale.NewRegistry(&locale.Config{
		Languages: conf.Languages,
		Observer:  collector,
	})
	if err != nil {
		log.Panicf("locale.NewRegistry: %v", err)
	}

	builder, err := model.NewBuilder(conf.Limits)
	if err != nil {
		log.Panicf("model.NewBuilder: %v", err)
	}

	var (
		mailClient = mail.New(&mail.Config{
			Sender:           conf.Sender(),
			FromName:         conf.FromName,
			FromEmail:        conf.FromEmail,
			Subject:          conf.Subject,
			FlaggedSubject:   conf.FlaggedSubject,
			RewriteRecipient: conf.RewriteRecipient,
			Metrics:          collector,
		})
		renderer = digest.NewRenderer(&digest.RendererConfig{
			Locales:   locales,
			Templates: template.NewClient(),
			URLs:      model.NewURLBuilder(conf.LMSURLBase),
			Metrics:   collector,
		})
	)

	h := handler.New(&handler.Config{
		Digester: digest.New(&digest.Config{
			Renderer:    renderer,
			Mail:        mailClient,
			Title:       conf.Title,
			Description: conf.Description,
		}),
		Builder:   builder,
		Gatherer:  reg,
		TaskToken: conf.TaskToken,
		Interval:  conf.Interval,
	})

	srv := http.Server{Handler: h, Addr: fmt.Sprintf(":%s", conf.Port)}

	idleConnsClosed := make(chan struct{})

	go func() {
		signalChan := make(chan os.Signal, 1)

		signal.Notify(signalChan, os.Interrupt)
		defer signal.Stop(signalChan)

		<-signalChan // first signal: clean up and exit gracefully
		log.Print("Signal detected, cleaning up")

		if err := srv.Shutdown(ctx); err != nil {
			// Error from closing listeners, or context timeout:
			log.Printf("HTTP server Shutdown: %v", err)
		}

		close(idleConnsClosed)
	}()

	log.Printf("Listening on port :%s", conf.Port)

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Panicf("ListenAndServe: %v", err)
	}

	<-idleConnsClosed
}
