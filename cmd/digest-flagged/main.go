package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"

	"github.com/getsentry/raven-go"

	sender "github.com/hiconvo/notifier/clients/mail"
	"github.com/hiconvo/notifier/clients/queue"
	"github.com/hiconvo/notifier/clients/secrets"
	"github.com/hiconvo/notifier/config"
	"github.com/hiconvo/notifier/digest"
	"github.com/hiconvo/notifier/flagged"
	"github.com/hiconvo/notifier/locale"
	"github.com/hiconvo/notifier/mail"
	"github.com/hiconvo/notifier/model"
	"github.com/hiconvo/notifier/template"
)

// This command sends each course moderator the list of flagged posts found in
// a listing of post URLs.
func main() {
	var (
		isDryRun       bool
		coursesFile    string
		moderatorsFile string
	)

	flag.BoolVar(&isDryRun, "dry-run", false, "if passed, emails are logged instead of sent.")
	flag.StringVar(&coursesFile, "courses-file", "", "file listing flagged post URLs; reads stdin if empty.")
	flag.StringVar(&moderatorsFile, "moderators", "", "JSON file mapping course ids to moderator users.")
	flag.Parse()

	ctx := context.Background()

	conf, err := config.Load(secrets.NewClient(nil))
	if err != nil {
		log.Panicf("config.Load: %v", err)
	}

	raven.SetDSN(conf.SentryDSN)
	raven.SetRelease(conf.Release)

	log.Printf("about to send flagged posts with lms=%s, batch-size=%d, dry-run=%v",
		conf.LMSURLBase, conf.BatchSize, isDryRun)

	moderators, err := readModerators(moderatorsFile)
	if err != nil {
		log.Panicf("reading moderators: %v", err)
	}

	var in io.Reader = os.Stdin
	if coursesFile != "" {
		f, err := os.Open(coursesFile)
		if err != nil {
			log.Panicf("opening courses file: %v", err)
		}
		defer f.Close()

		in = f
	}

	urls := model.NewURLBuilder(conf.LMSURLBase)

	groups, err := flagged.Parse(in, urls)
	if err != nil {
		log.Panicf(err.Error())
	}

	msgs, err := flagged.Messages(groups, moderators)
	if err != nil {
		log.Panicf(err.Error())
	}

	batches, err := flagged.Batch(msgs, conf.BatchSize)
	if err != nil {
		log.Panicf(err.Error())
	}

	log.Printf("found %d courses, %d messages, %d batches", len(groups), len(msgs), len(batches))

	if conf.TaskURL != "" && !isDryRun {
		q := queue.NewClient(conf.TaskURL, conf.TaskToken)

		for i := range batches {
			if err := q.PutFlagged(ctx, batches[i]); err != nil {
				log.Panicf(err.Error())
			}
		}

		log.Printf("done: enqueued %d batches to %s", len(batches), conf.TaskURL)

		return
	}

	locales, err := locale.NewRegistry(&locale.Config{Languages: conf.Languages})
	if err != nil {
		log.Panicf("locale.NewRegistry: %v", err)
	}

	transport := conf.Sender()
	if isDryRun {
		transport = sender.NewLogger()
	}

	d := digest.New(&digest.Config{
		Renderer: digest.NewRenderer(&digest.RendererConfig{
			Locales:   locales,
			Templates: template.NewClient(),
			URLs:      urls,
		}),
		Mail: mail.New(&mail.Config{
			Sender:           transport,
			FromName:         conf.FromName,
			FromEmail:        conf.FromEmail,
			Subject:          conf.Subject,
			FlaggedSubject:   conf.FlaggedSubject,
			RewriteRecipient: conf.RewriteRecipient,
		}),
	})

	var total digest.Report

	for i := range batches {
		report, err := d.Flagged(ctx, batches[i])
		if err != nil {
			log.Panicf(err.Error())
		}

		log.Printf("batch %d/%d: sent=%d skipped=%d failed=%d",
			i+1, len(batches), report.Sent, report.Skipped, report.Failed)

		total.Sent += report.Sent
		total.Skipped += report.Skipped
		total.Failed += report.Failed
	}

	log.Printf("done: sent=%d skipped=%d failed=%d", total.Sent, total.Skipped, total.Failed)
}

func readModerators(path string) (flagged.StaticModerators, error) {
	mods := flagged.StaticModerators{}
	if path == "" {
		return mods, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(b, &mods); err != nil {
		return nil, err
	}

	return mods, nil
}
