package application

import (
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-auth-api/internal/domain/repository"
	"github.com/oksasatya/go-user-auth-api/pkg/helpers"
	"github.com/oksasatya/go-user-auth-api/pkg/mailer"
	"github.com/oksasatya/go-user-auth-api/pkg/mailer/templates"
)

// DefaultMailTimeout bounds a single email send.
const DefaultMailTimeout = 10 * time.Second

// Service runs the account workflows: registration, verification, login,
// password reset and user management.
type Service struct {
	Store       repository.Store
	Hasher      *helpers.PasswordHasher
	JWT         *helpers.JWTManager
	Mailer      mailer.Sender
	Links       Links
	Brand       templates.Brand
	Logger      *logrus.Logger
	Metrics     *Metrics
	CodeTTL     time.Duration
	MailTimeout time.Duration

	now func() time.Time
}

// Deps are the collaborators of a Service. Store, Hasher, JWT and Mailer are
// required.
type Deps struct {
	Store       repository.Store
	Hasher      *helpers.PasswordHasher
	JWT         *helpers.JWTManager
	Mailer      mailer.Sender
	Links       Links
	Brand       templates.Brand
	Logger      *logrus.Logger
	Metrics     *Metrics
	CodeTTL     time.Duration
	MailTimeout time.Duration
	Now         func() time.Time
}

func NewService(d Deps) *Service {
	s := &Service{
		Store:       d.Store,
		Hasher:      d.Hasher,
		JWT:         d.JWT,
		Mailer:      d.Mailer,
		Links:       d.Links,
		Brand:       d.Brand,
		Logger:      d.Logger,
		Metrics:     d.Metrics,
		CodeTTL:     d.CodeTTL,
		MailTimeout: d.MailTimeout,
		now:         d.Now,
	}
	if s.Logger == nil {
		s.Logger = logrus.New()
		s.Logger.SetOutput(io.Discard)
	}
	if s.MailTimeout <= 0 {
		s.MailTimeout = DefaultMailTimeout
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
