package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinks_Reset(t *testing.T) {
	l := Links{
		VerifyEmailURL:   "http://localhost:5173/auth/verify_email/",
		ResetPasswordURL: "http://localhost:5173/auth/reset_password",
		AllowedOrigins:   []string{"https://app.example.com/", " http://localhost:5173"},
	}

	tests := []struct {
		name  string
		front string
		want  string
	}{
		{"empty uses default", "", "http://localhost:5173/auth/reset_password/abc"},
		{"allowed origin", "https://app.example.com/reset", "https://app.example.com/reset/abc"},
		{"allowed origin case", "HTTPS://App.Example.com/reset", "HTTPS://App.Example.com/reset/abc"},
		{"other origin", "https://evil.test/reset", "http://localhost:5173/auth/reset_password/abc"},
		{"port mismatch", "https://app.example.com:8443/reset", "http://localhost:5173/auth/reset_password/abc"},
		{"userinfo", "https://app.example.com@evil.test/", "http://localhost:5173/auth/reset_password/abc"},
		{"not a url", "javascript:alert(1)", "http://localhost:5173/auth/reset_password/abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Reset(tt.front, "abc"))
		})
	}

	assert.Equal(t, "http://localhost:5173/auth/verify_email/abc", l.Verify("abc"))
}
