package mailer

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingPublisher struct {
	bodies []any
	err    error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.bodies = append(p.bodies, body)
	return p.err
}

func TestQueue_Send(t *testing.T) {
	pub := &recordingPublisher{}
	q := NewQueue(pub)
	require.NoError(t, q.Send(context.Background(), "a@b.c", "Subj", "text", "<p>html</p>"))
	require.Len(t, pub.bodies, 1)
	assert.Equal(t, EmailJob{To: "a@b.c", Subject: "Subj", Text: "text", HTML: "<p>html</p>"}, pub.bodies[0])

	pub.err = errors.New("channel closed")
	assert.Error(t, q.Send(context.Background(), "a@b.c", "Subj", "text", ""))
	assert.Error(t, NewQueue(nil).Send(context.Background(), "a@b.c", "s", "t", ""))
}

func TestSMTP_SendBuildsMessage(t *testing.T) {
	s := NewSMTP("localhost", 2525, "user", "pass", "No Reply <no-reply@example.com>")
	var got *gomail.Message
	s.dial = func(m *gomail.Message) error { got = m; return nil }

	require.NoError(t, s.Send(context.Background(), "a@b.c", "Hello", "plain", "<b>rich</b>"))
	require.NotNil(t, got)
	assert.Equal(t, []string{"a@b.c"}, got.GetHeader("To"))
	assert.Equal(t, []string{"Hello"}, got.GetHeader("Subject"))
	assert.Equal(t, []string{"No Reply <no-reply@example.com>"}, got.GetHeader("From"))
}

func TestSMTP_SendHonoursContext(t *testing.T) {
	s := NewSMTP("localhost", 2525, "", "", "from@example.com")
	block := make(chan struct{})
	defer close(block)
	s.dial = func(*gomail.Message) error { <-block; return nil }

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Send(ctx, "a@b.c", "s", "t", ""), context.DeadlineExceeded)
}

func TestLogSender(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	assert.NoError(t, NewLogSender(logger).Send(context.Background(), "a@b.c", "s", "t", ""))
}
