package flagged_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiconvo/notifier/errors"
	"github.com/hiconvo/notifier/flagged"
	"github.com/hiconvo/notifier/model"
)

const listing = `Flagged posts as of today
https://old.example.com/courses/org/num/run/discussion/forum/abc/threads/1
  http://old.example.com/courses/other/course/id/discussion/forum/def/threads/9
not a url
https://old.example.com/dashboard
see https://old.example.com/courses/org/num/run/discussion/forum/abc/threads/2 please
`

func TestParse(t *testing.T) {
	groups, err := flagged.Parse(strings.NewReader(listing), model.NewURLBuilder("https://lms.example.com/"))
	require.NoError(t, err)

	assert.Equal(t, []flagged.CoursePosts{
		{
			CourseID: "org/num/run",
			Posts: []string{
				"https://lms.example.com/courses/org/num/run/discussion/forum/abc/threads/1",
				"https://lms.example.com/courses/org/num/run/discussion/forum/abc/threads/2",
			},
		},
		{
			CourseID: "other/course/id",
			Posts: []string{
				"https://lms.example.com/courses/other/course/id/discussion/forum/def/threads/9",
			},
		},
	}, groups)
}

func TestParseEmpty(t *testing.T) {
	groups, err := flagged.Parse(strings.NewReader("\n\nnothing here\n"), model.NewURLBuilder("https://lms.example.com"))
	require.NoError(t, err)
	assert.Empty(t, groups)
}

type failingModerators struct{}

func (failingModerators) Moderators(string) ([]model.User, error) {
	return nil, errors.Str("directory unavailable")
}

func TestMessages(t *testing.T) {
	groups := []flagged.CoursePosts{
		{CourseID: "a/b/c", Posts: []string{"http://x/1", "http://x/2"}},
		{CourseID: "d/e/f", Posts: []string{"http://x/3"}},
		{CourseID: "no/mods/here", Posts: []string{"http://x/4"}},
	}

	mods := flagged.StaticModerators{
		"a/b/c": {{ID: "1", Username: "ada"}, {ID: "2", Username: "bob"}},
		"d/e/f": {{ID: "3", Username: "cy"}},
	}

	msgs, err := flagged.Messages(groups, mods)
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	assert.Equal(t, "a/b/c", msgs[0].CourseID)
	assert.Equal(t, "ada", msgs[0].Recipient.Username)
	assert.Equal(t, "bob", msgs[1].Recipient.Username)
	assert.Equal(t, []string{"http://x/1", "http://x/2"}, msgs[1].Posts)
	assert.Equal(t, "d/e/f", msgs[2].CourseID)

	_, err = flagged.Messages(groups, failingModerators{})
	assert.Error(t, err)
}

func TestBatch(t *testing.T) {
	msgs := make([]model.FlaggedMessage, 5)
	for i := range msgs {
		msgs[i].CourseID = string(rune('a' + i))
	}

	tests := []struct {
		Size   int
		Expect []int
	}{
		{Size: 1, Expect: []int{1, 1, 1, 1, 1}},
		{Size: 2, Expect: []int{2, 2, 1}},
		{Size: 5, Expect: []int{5}},
		{Size: 100, Expect: []int{5}},
	}

	for _, tt := range tests {
		batches, err := flagged.Batch(msgs, tt.Size)
		require.NoError(t, err)

		sizes := make([]int, len(batches))
		var flat []model.FlaggedMessage

		for i := range batches {
			sizes[i] = len(batches[i])
			flat = append(flat, batches[i]...)
		}

		assert.Equal(t, tt.Expect, sizes)
		assert.Equal(t, msgs, flat)
	}

	batches, err := flagged.Batch(nil, 3)
	require.NoError(t, err)
	assert.Empty(t, batches)

	_, err = flagged.Batch(msgs, 0)
	assert.Equal(t, errors.Validation, errors.KindOf(err))
}
