package main

import (
	"context"
	"errors"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-auth-api/config"
	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-user-auth-api/internal/domain/repository"
	pginfra "github.com/oksasatya/go-user-auth-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-user-auth-api/pkg/helpers"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "password123"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	u, created, err := seedUser(ctx, pginfra.NewStore(pool), helpers.NewPasswordHasher(cfg.BcryptCost), demoEmail, demoPassword)
	if err != nil {
		logger.Fatalf("failed to seed user: %v", err)
	}
	entry := logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email})
	if !created {
		entry.Info("user already seeded")
		return
	}
	entry.WithField("password", demoPassword).Info("seeded verified user")
}

// seedUser creates a verified user unless one with email already exists.
func seedUser(ctx context.Context, store repository.Store, hasher *helpers.PasswordHasher,
	email, password string) (*entity.User, bool, error) {
	if u, err := store.Users().GetByEmail(ctx, email); err == nil {
		return u, false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, false, err
	}
	u := &entity.User{
		FirstName: "Demo",
		LastName:  "User",
		Email:     email,
		Password:  hash,
		Country:   "ID",
	}
	err = store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := tx.Users().Create(ctx, u); err != nil {
			return err
		}
		if err := tx.Users().SetVerified(ctx, u.ID); err != nil {
			return err
		}
		u.IsVerified = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}
