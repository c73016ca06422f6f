package main

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-user-auth-api/pkg/mailer"
)

type ackRecorder struct {
	acked, nacked, requeued bool
}

func (a *ackRecorder) Ack(uint64, bool) error { a.acked = true; return nil }
func (a *ackRecorder) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked, a.requeued = true, requeue
	return nil
}
func (a *ackRecorder) Reject(_ uint64, requeue bool) error {
	a.nacked, a.requeued = true, requeue
	return nil
}

type stubSender struct {
	err   error
	calls int
}

func (s *stubSender) Send(context.Context, string, string, string, string) error {
	s.calls++
	return s.err
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		redelivered bool
		sendErr     error
		wantAck     bool
		wantRequeue bool
		wantSends   int
	}{
		{name: "delivered", body: `{"to":"ann@example.com","subject":"Hi","text":"body"}`, wantAck: true, wantSends: 1},
		{name: "bad json", body: `{`},
		{name: "no recipient", body: `{"to":" ","text":"body"}`},
		{name: "unknown template", body: `{"to":"ann@example.com","template":"nope"}`},
		{name: "transient failure requeued", body: `{"to":"ann@example.com","text":"body"}`,
			sendErr: errors.New("smtp down"), wantRequeue: true, wantSends: 1},
		{name: "second failure dropped", body: `{"to":"ann@example.com","text":"body"}`, redelivered: true,
			sendErr: errors.New("smtp down"), wantSends: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()
			logger.SetOutput(io.Discard)
			ack := &ackRecorder{}
			sender := &stubSender{err: tt.sendErr}
			msg := amqp.Delivery{Acknowledger: ack, Body: []byte(tt.body), Redelivered: tt.redelivered}

			handle(context.Background(), logger, sender, mailer.RetryPolicy{Base: time.Millisecond}, time.Second, msg)

			assert.Equal(t, tt.wantAck, ack.acked)
			assert.Equal(t, !tt.wantAck, ack.nacked)
			assert.Equal(t, tt.wantRequeue, ack.requeued)
			assert.Equal(t, tt.wantSends, sender.calls)
			if !tt.wantAck {
				assert.LessOrEqual(t, hook.LastEntry().Level, logrus.WarnLevel)
			}
		})
	}
}
