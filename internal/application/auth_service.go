package application

import (
	"context"
	"fmt"
	"time"

	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-user-auth-api/internal/domain/repository"
	"github.com/oksasatya/go-user-auth-api/pkg/mailer/templates"
)

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Country   string
	Image     string
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	User      entity.PublicUser `json:"user"`
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// Register creates an unverified user together with a verification code and
// mails the verification link.
func (s *Service) Register(ctx context.Context, in RegisterInput) (entity.PublicUser, error) {
	const op = "application.Register"

	digest, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return entity.PublicUser{}, hashError(op, err)
	}
	u := &entity.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     normalizeEmail(in.Email),
		Password:  digest,
		Country:   in.Country,
		Image:     in.Image,
	}

	var code string
	err = s.Store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := tx.Users().Create(ctx, u); err != nil {
			return err
		}
		c, err := s.issueCode(ctx, tx, u.ID, entity.PurposeVerifyEmail)
		code = c
		return err
	})
	if err = storageError(op, err); err != nil {
		s.Metrics.event("register", err)
		return entity.PublicUser{}, err
	}

	s.Logger.WithField("user_id", u.ID).Info("user registered")
	s.notify(ctx, templates.VerifyEmail, u, s.Links.Verify(code))
	s.Metrics.event("register", nil)
	return u.Public(), nil
}

// VerifyEmail redeems a verification code and marks its owner verified.
func (s *Service) VerifyEmail(ctx context.Context, code string) (entity.PublicUser, error) {
	const op = "application.VerifyEmail"

	var u *entity.User
	err := s.consumeCode(ctx, op, code, entity.PurposeVerifyEmail, func(ctx context.Context, tx repository.Store, userID int64) error {
		if err := tx.Users().SetVerified(ctx, userID); err != nil {
			return err
		}
		var err error
		u, err = tx.Users().GetByID(ctx, userID)
		return err
	})
	s.Metrics.event("verify_email", err)
	if err != nil {
		return entity.PublicUser{}, err
	}
	s.Logger.WithField("user_id", u.ID).Info("email verified")
	return u.Public(), nil
}

// Login checks, in order, that the user exists, that the password matches and
// that the email is verified, then issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	res, err := s.login(ctx, email, password)
	s.Metrics.event("login", err)
	return res, err
}

func (s *Service) login(ctx context.Context, email, password string) (*LoginResult, error) {
	const op = "application.Login"

	u, err := s.Store.Users().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, storageError(op, err)
	}
	ok, err := s.Hasher.Verify(password, u.Password)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("stored password hash unreadable")
		return nil, fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if !u.IsVerified {
		return nil, ErrEmailNotVerified
	}

	token, exp, err := s.JWT.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return nil, fmt.Errorf("%s: sign token: %w", op, err)
	}
	s.Logger.WithField("user_id", u.ID).Info("user logged in")
	return &LoginResult{User: u.Public(), Token: token, ExpiresAt: exp}, nil
}

// RequestPasswordReset issues a reset code for email and mails the link.
// frontBaseURL is honoured only when its origin is allowed.
func (s *Service) RequestPasswordReset(ctx context.Context, email, frontBaseURL string) error {
	const op = "application.RequestPasswordReset"

	u, err := s.Store.Users().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		err = storageError(op, err)
		s.Metrics.event("reset_request", err)
		return err
	}
	code, err := s.issueCode(ctx, s.Store, u.ID, entity.PurposeResetPassword)
	if err != nil {
		err = storageError(op, err)
		s.Metrics.event("reset_request", err)
		return err
	}

	s.notify(ctx, templates.ResetPassword, u, s.Links.Reset(frontBaseURL, code))
	s.Metrics.event("reset_request", nil)
	return nil
}

// ResetPassword redeems a reset code and replaces its owner's password.
func (s *Service) ResetPassword(ctx context.Context, code, newPassword string) error {
	const op = "application.ResetPassword"

	digest, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return hashError(op, err)
	}
	var userID int64
	err = s.consumeCode(ctx, op, code, entity.PurposeResetPassword, func(ctx context.Context, tx repository.Store, id int64) error {
		userID = id
		return tx.Users().UpdatePassword(ctx, id, digest)
	})
	s.Metrics.event("reset_password", err)
	if err != nil {
		return err
	}
	s.Logger.WithField("user_id", userID).Info("password reset")
	return nil
}
