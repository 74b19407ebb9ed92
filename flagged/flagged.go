// Package flagged turns a listing of flagged forum post URLs into messages
// for course moderators.
package flagged

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"mvdan.cc/xurls/v2"

	"github.com/hiconvo/notifier/errors"
	"github.com/hiconvo/notifier/model"
)

var (
	_urls = xurls.Strict()
	// Course ids have three segments: org/number/run.
	_postURL = regexp.MustCompile(`^https?://\S+/courses/((?:[^/]+/){3})(\S*)`)
)

// CoursePosts holds the flagged posts of one course, in listing order.
type CoursePosts struct {
	CourseID string   `json:"courseId"`
	Posts    []string `json:"posts"`
}

// Moderators looks up the moderators of a course.
type Moderators interface {
	Moderators(courseID string) ([]model.User, error)
}

// StaticModerators is a Moderators backed by a map of course id to users.
type StaticModerators map[string][]model.User

func (m StaticModerators) Moderators(courseID string) ([]model.User, error) {
	return m[courseID], nil
}

// Parse reads a listing with one or more post URLs per line. URLs that do not
// point into a course are ignored. Every kept URL is rebuilt against the
// LMS base of urls. Courses are returned in the order they first appear.
func Parse(r io.Reader, urls model.URLBuilder) ([]CoursePosts, error) {
	op := errors.Op("flagged.Parse")

	var (
		groups []CoursePosts
		index  = map[string]int{}
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		for _, found := range _urls.FindAllString(strings.TrimSpace(scanner.Text()), -1) {
			m := _postURL.FindStringSubmatch(found)
			if m == nil {
				continue
			}

			courseID := strings.TrimSuffix(strings.TrimSpace(m[1]), "/")

			i, ok := index[courseID]
			if !ok {
				i = len(groups)
				index[courseID] = i
				groups = append(groups, CoursePosts{CourseID: courseID})
			}

			groups[i].Posts = append(groups[i].Posts, urls.PostURL(courseID, m[2]))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.E(op, err)
	}

	return groups, nil
}

// Messages returns one message per moderator of each course. Every message
// of a course shares the same list of posts.
func Messages(groups []CoursePosts, moderators Moderators) ([]model.FlaggedMessage, error) {
	var msgs []model.FlaggedMessage

	for _, g := range groups {
		users, err := moderators.Moderators(g.CourseID)
		if err != nil {
			return nil, errors.E(errors.Opf("flagged.Messages(course=%s)", g.CourseID), err)
		}

		for _, u := range users {
			msgs = append(msgs, model.FlaggedMessage{
				CourseID:  g.CourseID,
				Recipient: u,
				Posts:     g.Posts,
			})
		}
	}

	return msgs, nil
}

// Batch splits msgs into consecutive batches of at most size messages.
func Batch(msgs []model.FlaggedMessage, size int) ([][]model.FlaggedMessage, error) {
	if size < 1 {
		return nil, errors.E(errors.Op("flagged.Batch"), errors.Validation,
			errors.Errorf("batch size must be positive, got %d", size))
	}

	var batches [][]model.FlaggedMessage
	for len(msgs) > size {
		batches = append(batches, msgs[:size:size])
		msgs = msgs[size:]
	}

	if len(msgs) > 0 {
		batches = append(batches, msgs)
	}

	return batches, nil
}
