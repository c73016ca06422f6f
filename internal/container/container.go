package container

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-auth-api/config"
	"github.com/oksasatya/go-user-auth-api/internal/application"
	"github.com/oksasatya/go-user-auth-api/internal/domain/repository"
	"github.com/oksasatya/go-user-auth-api/pkg/helpers"
	"github.com/oksasatya/go-user-auth-api/pkg/mailer"
	"github.com/oksasatya/go-user-auth-api/pkg/mailer/templates"
)

// Container holds the components built once in main and shared by the
// router modules.
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Store    repository.Store
	JWT      *helpers.JWTManager
	Hasher   *helpers.PasswordHasher
	Mailer   mailer.Sender
	Rabbit   *helpers.RabbitPublisher
	Registry *prometheus.Registry
	Metrics  *application.Metrics
	Service  *application.Service
}

// New wires the container. It fails when the signing secret is missing or
// the mail driver cannot be set up.
func New(cfg *config.Config, logger *logrus.Logger, store repository.Store) (*Container, error) {
	jwt, err := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	send, rabbit, err := NewMailer(cfg, logger)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := application.NewMetrics(reg)

	hasher := helpers.NewPasswordHasher(cfg.BcryptCost)
	svc := application.NewService(application.Deps{
		Store:  store,
		Hasher: hasher,
		JWT:    jwt,
		Mailer: send,
		Links: application.Links{
			VerifyEmailURL:   cfg.VerifyEmailURL,
			ResetPasswordURL: cfg.ResetPasswordURL,
			AllowedOrigins:   cfg.CORSOrigins(),
		},
		Brand: templates.Brand{
			AppName:     cfg.AppName,
			CompanyName: cfg.CompanyName,
			SupportURL:  cfg.SupportURL,
		},
		Logger:      logger,
		Metrics:     metrics,
		CodeTTL:     cfg.CodeTTL,
		MailTimeout: cfg.MailSendTimeout,
	})

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		JWT:      jwt,
		Hasher:   hasher,
		Mailer:   send,
		Rabbit:   rabbit,
		Registry: reg,
		Metrics:  metrics,
		Service:  svc,
	}, nil
}

// NewMailer picks the outbound mail transport from MAIL_DRIVER. The
// RabbitMQ publisher is returned for the queue driver so the caller can
// close it.
func NewMailer(cfg *config.Config, logger *logrus.Logger) (mailer.Sender, *helpers.RabbitPublisher, error) {
	if !cfg.MailSendEnabled {
		return mailer.NewLogSender(logger), nil, nil
	}
	switch cfg.MailDriver {
	case "", "log":
		return mailer.NewLogSender(logger), nil, nil
	case "queue":
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			return nil, nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		return mailer.NewQueue(pub), pub, nil
	default:
		s, err := NewDeliverySender(cfg.MailDriver, cfg)
		return s, nil, err
	}
}

// NewDeliverySender builds a sender that talks to a mail provider directly.
// cmd/email_worker uses it with WORKER_MAIL_DRIVER.
func NewDeliverySender(driver string, cfg *config.Config) (mailer.Sender, error) {
	switch driver {
	case "smtp":
		return mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom), nil
	case "mailgun":
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
			return nil, fmt.Errorf("mailgun driver needs MAILGUN_DOMAIN and MAILGUN_API_KEY")
		}
		from := cfg.MailgunSender
		if from == "" {
			from = cfg.MailFrom
		}
		m := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, from, cfg.MailSendTimeout)
		if cfg.MailgunAPIBase != "" {
			m.WithAPIBase(cfg.MailgunAPIBase)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", driver)
	}
}

// Close releases connections owned by the container.
func (c *Container) Close() {
	c.Rabbit.Close()
}
