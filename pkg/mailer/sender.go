package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Sender delivers one email. html may be empty.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// LogSender records emails in the log instead of sending them. It is used
// when MAIL_SEND_ENABLED is false or MAIL_DRIVER=log.
type LogSender struct {
	Logger *logrus.Logger
}

func NewLogSender(logger *logrus.Logger) *LogSender {
	return &LogSender{Logger: logger}
}

func (s *LogSender) Send(_ context.Context, to, subject, _, _ string) error {
	s.Logger.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("mail delivery disabled, email not sent")
	return nil
}
