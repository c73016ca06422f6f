package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oksasatya/go-user-auth-api/pkg/mailer/templates"
	"github.com/sethvargo/go-retry"
)

// ErrPermanent marks a job that will never succeed, such as one naming an
// unknown template. The worker drops it instead of requeueing.
var ErrPermanent = errors.New("permanent mail failure")

// RetryPolicy bounds delivery attempts.
type RetryPolicy struct {
	MaxRetries uint64
	Base       time.Duration
}

// Deliver renders job when it names a template and sends it through s,
// retrying transport failures with exponential backoff. A rendered subject
// replaces job.Subject.
func Deliver(ctx context.Context, s Sender, job EmailJob, policy RetryPolicy) error {
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		sub, txt, htm, err := templates.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPermanent, err)
		}
		if sub != "" {
			subject = sub
		}
		text, html = txt, htm
	}
	if text == "" && html == "" {
		return fmt.Errorf("%w: empty body", ErrPermanent)
	}

	base := policy.Base
	if base <= 0 {
		base = time.Second
	}
	b := retry.WithMaxRetries(policy.MaxRetries, retry.NewExponential(base))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := s.Send(ctx, job.To, subject, text, html); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
