package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-auth-api/config"
	"github.com/oksasatya/go-user-auth-api/internal/container"
	"github.com/oksasatya/go-user-auth-api/pkg/helpers"
	"github.com/oksasatya/go-user-auth-api/pkg/mailer"
)

const prefetch = 16

func main() {
	_ = godotenv.Load()

	cfg := config.LoadEnv()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env, cfg.LogLevel)
	if !cfg.MailSendEnabled {
		logger.Warn("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}

	sender, err := container.NewDeliverySender(cfg.WorkerMailDriver, cfg)
	if err != nil {
		logger.Fatalf("mail sender: %v", err)
	}

	rabbit, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
	if err != nil {
		logger.Fatalf("connect rabbitmq: %v", err)
	}
	defer rabbit.Close()

	msgs, err := rabbit.Consume(prefetch)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	policy := mailer.RetryPolicy{MaxRetries: uint64(max(cfg.MailMaxRetries, 0)), Base: time.Second}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			handle(ctx, logger, sender, policy, cfg.MailSendTimeout, msg)
		}
	}()

	logger.WithFields(logrus.Fields{"queue": cfg.RabbitMQEmailQueue, "driver": cfg.WorkerMailDriver}).
		Info("email worker listening")
	select {
	case <-ctx.Done():
	case <-done:
		logger.Warn("delivery channel closed")
		os.Exit(1)
	}
	logger.Info("shutting down...")
	rabbit.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// handle delivers one queued job. Broken jobs are dropped; transport failures
// are requeued once, then dropped on the second delivery.
func handle(ctx context.Context, logger *logrus.Logger, sender mailer.Sender, policy mailer.RetryPolicy,
	timeout time.Duration, msg amqp.Delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		logger.WithError(err).Warn("bad message")
		_ = msg.Nack(false, false)
		return
	}
	if err := helpers.NormalizeEmailJob(&job); err != nil {
		logger.WithError(err).Warn("dropping email job")
		_ = msg.Nack(false, false)
		return
	}

	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	entry := logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template})
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout*time.Duration(policy.MaxRetries+1))
	defer cancel()

	err := mailer.Deliver(sendCtx, sender, job, policy)
	switch {
	case err == nil:
		entry.Info("email sent")
		_ = msg.Ack(false)
	case errors.Is(err, mailer.ErrPermanent):
		entry.WithError(err).Error("email job rejected")
		_ = msg.Nack(false, false)
	default:
		entry.WithError(err).WithField("redelivered", msg.Redelivered).Error("send failed")
		_ = msg.Nack(false, !msg.Redelivered)
	}
}
