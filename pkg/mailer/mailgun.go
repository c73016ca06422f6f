package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun delivers through the Mailgun HTTP API.
type Mailgun struct {
	Sender  string
	Timeout time.Duration
	client  mg.Mailgun
}

func NewMailgun(domain, apiKey, sender string, timeout time.Duration) *Mailgun {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Mailgun{Sender: sender, Timeout: timeout, client: mg.NewMailgun(domain, apiKey)}
}

// WithAPIBase points the client at another API endpoint, such as the EU
// region or a test server.
func (m *Mailgun) WithAPIBase(base string) *Mailgun {
	m.client.SetAPIBase(base)
	return m
}

// Send posts one message. html is optional.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return err
}
