package application

import (
	"net/url"
	"strings"
)

// Links builds the front-end URLs mailed to users. The one-time code is
// appended as the last path segment.
type Links struct {
	VerifyEmailURL   string
	ResetPasswordURL string
	// AllowedOrigins lists the origins a client may pick as reset link base.
	AllowedOrigins []string
}

func (l Links) Verify(code string) string {
	return joinLink(l.VerifyEmailURL, code)
}

// Reset uses frontBaseURL when its origin is allowed and the configured
// ResetPasswordURL otherwise.
func (l Links) Reset(frontBaseURL, code string) string {
	base := l.ResetPasswordURL
	if l.originAllowed(frontBaseURL) {
		base = frontBaseURL
	}
	return joinLink(base, code)
}

func (l Links) originAllowed(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") || u.User != nil {
		return false
	}
	origin := strings.ToLower(u.Scheme + "://" + u.Host)
	for _, o := range l.AllowedOrigins {
		if strings.ToLower(strings.TrimRight(strings.TrimSpace(o), "/")) == origin {
			return true
		}
	}
	return false
}

func joinLink(base, code string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(code)
}
