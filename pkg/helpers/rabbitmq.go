package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrNotConfirmed is returned when the broker nacks a published job.
var ErrNotConfirmed = errors.New("rabbitmq: publish not confirmed")

// RabbitPublisher owns one connection and channel bound to a durable queue.
// The API publishes email jobs through it and cmd/email_worker consumes from
// the same queue. The channel runs in confirm mode so PublishJSON returns
// only once the broker has taken the message.
type RabbitPublisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	Queue string
}

func NewRabbitPublisher(url, queue string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	p := &RabbitPublisher{conn: conn, Queue: queue}
	if p.ch, err = conn.Channel(); err != nil {
		p.Close()
		return nil, fmt.Errorf("channel: %w", err)
	}
	if _, err = p.ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		p.Close()
		return nil, fmt.Errorf("declare %s: %w", queue, err)
	}
	if err = p.ch.Confirm(false); err != nil {
		p.Close()
		return nil, fmt.Errorf("confirm mode: %w", err)
	}
	return p, nil
}

// Close is safe on a nil or partially built publisher.
func (p *RabbitPublisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// PublishJSON sends body as a persistent JSON message on the default
// exchange and waits for the broker confirm or ctx.
func (p *RabbitPublisher) PublishJSON(ctx context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	dc, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, "", p.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         b,
	})
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	ok, err := dc.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("await confirm: %w", err)
	}
	if !ok {
		return ErrNotConfirmed
	}
	return nil
}

// Consume starts a manual-ack consumer with the given prefetch.
func (p *RabbitPublisher) Consume(prefetch int) (<-chan amqp.Delivery, error) {
	if err := p.ch.Qos(prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("qos: %w", err)
	}
	return p.ch.Consume(p.Queue, "", false, false, false, false, nil)
}
