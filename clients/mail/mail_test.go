package mail

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/sendgrid/rest"
	smail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSender struct {
	status int
	sent   []*smail.SGMailV3
}

func (s *testSender) Send(email *smail.SGMailV3) (*rest.Response, error) {
	s.sent = append(s.sent, email)

	return &rest.Response{
		StatusCode: s.status,
		Body:       "{}",
		Headers:    map[string][]string{},
	}, nil
}

var _message = EmailMessage{
	FromName:    "Discussion Digest",
	FromEmail:   "digest@example.com",
	ToName:      "Ada",
	ToEmail:     "ada@example.com",
	Subject:     "Daily Digest",
	TextContent: "plain",
	HTMLContent: "<p>html</p>",
}

func TestSendGrid(t *testing.T) {
	s := &testSender{status: http.StatusAccepted}
	c := &clientImpl{client: s}

	require.NoError(t, c.Send(_message))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "Daily Digest", s.sent[0].Subject)
	assert.Equal(t, "digest@example.com", s.sent[0].From.Address)
	require.Len(t, s.sent[0].Content, 2)
	assert.Equal(t, "plain", s.sent[0].Content[0].Value)
	assert.Equal(t, "<p>html</p>", s.sent[0].Content[1].Value)
}

func TestSendGridTextOnly(t *testing.T) {
	s := &testSender{status: http.StatusAccepted}
	c := &clientImpl{client: s}

	m := _message
	m.HTMLContent = ""

	require.NoError(t, c.Send(m))
	require.Len(t, s.sent[0].Content, 1)
	assert.Equal(t, "text/plain", s.sent[0].Content[0].Type)
}

func TestSendGridBadStatus(t *testing.T) {
	c := &clientImpl{client: &testSender{status: http.StatusBadRequest}}

	assert.Error(t, c.Send(_message))
}

func TestSMTPMessage(t *testing.T) {
	var buf bytes.Buffer

	_, err := newSMTPMessage(_message).WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Subject: Daily Digest")
	assert.Contains(t, out, "text/plain")
	assert.Contains(t, out, "text/html")
}

func TestSMTPMessageTextOnly(t *testing.T) {
	var buf bytes.Buffer

	m := _message
	m.HTMLContent = ""

	_, err := newSMTPMessage(m).WriteTo(&buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "text/html")
}

func TestLogger(t *testing.T) {
	assert.NoError(t, NewLogger().Send(_message))
}
