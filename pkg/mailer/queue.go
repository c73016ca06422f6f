package mailer

import (
	"context"
	"errors"
)

// Publisher puts a JSON payload on the mail queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Queue hands emails to cmd/email_worker through RabbitMQ instead of sending
// them inline.
type Queue struct {
	pub Publisher
}

func NewQueue(pub Publisher) *Queue {
	return &Queue{pub: pub}
}

func (q *Queue) Send(ctx context.Context, to, subject, text, html string) error {
	if q.pub == nil {
		return errors.New("mail queue: no publisher")
	}
	return q.pub.PublishJSON(ctx, EmailJob{To: to, Subject: subject, Text: text, HTML: html})
}
