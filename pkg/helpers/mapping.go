package helpers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/go-user-auth-api/pkg/mailer"
	mailtpl "github.com/oksasatya/go-user-auth-api/pkg/mailer/templates"
)

// ErrNoRecipient is returned for queued jobs without a usable address.
var ErrNoRecipient = errors.New("email job has no recipient")

// SubjectFor returns the fallback subject for a template name.
func SubjectFor(template string) string {
	switch strings.ToLower(template) {
	case mailtpl.VerifyEmail:
		return "Verify your email"
	case mailtpl.ResetPassword:
		return "Password Reset Request"
	default:
		return "Notification"
	}
}

// NormalizeEmailJob prepares a job read from the queue for delivery: legacy
// template names are mapped, the recipient is copied into the template data
// and a subject is filled in when missing.
func NormalizeEmailJob(job *mailer.EmailJob) error {
	job.To = strings.TrimSpace(job.To)
	if job.To == "" {
		return ErrNoRecipient
	}
	job.Template = strings.ToLower(strings.TrimSpace(job.Template))
	if job.Template == "forgot_password" {
		job.Template = mailtpl.ResetPassword
	}
	if job.Template != "" {
		if job.Data == nil {
			job.Data = map[string]any{}
		}
		if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
			job.Data["Email"] = job.To
		}
		if _, ok := job.Data["Type"]; !ok {
			job.Data["Type"] = job.Template
		}
	}
	if job.Subject == "" {
		job.Subject = SubjectFor(job.Template)
	}
	return nil
}
