package mailer

import (
	"context"

	"gopkg.in/gomail.v2"
)

// SMTP delivers mail through an SMTP relay with gomail.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string

	dial func(m *gomail.Message) error
}

func NewSMTP(host string, port int, username, password, from string) *SMTP {
	s := &SMTP{Host: host, Port: port, Username: username, Password: password, From: from}
	s.dial = func(m *gomail.Message) error {
		return gomail.NewDialer(s.Host, s.Port, s.Username, s.Password).DialAndSend(m)
	}
	return s
}

func (s *SMTP) message(to, subject, text, html string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	if html != "" {
		msg.AddAlternative("text/html", html)
	}
	return msg
}

// Send dials the relay and sends one message. gomail has no context support,
// so ctx only bounds how long the caller waits.
func (s *SMTP) Send(ctx context.Context, to, subject, text, html string) error {
	msg := s.message(to, subject, text, html)
	done := make(chan error, 1)
	go func() { done <- s.dial(msg) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
