package application

import (
	"errors"
	"fmt"

	"github.com/oksasatya/go-user-auth-api/internal/domain/repository"
	"github.com/oksasatya/go-user-auth-api/pkg/helpers"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidToken       = helpers.ErrInvalidToken
	ErrPasswordTooLong    = helpers.ErrPasswordTooLong
	// ErrStorage wraps every collaborator failure. Its cause is for logs only.
	ErrStorage = errors.New("storage failure")
)

var domainErrors = []error{
	ErrNotFound, ErrDuplicateEmail, ErrInvalidCredentials,
	ErrEmailNotVerified, ErrInvalidToken, ErrPasswordTooLong, ErrStorage,
}

// hashError keeps an over-long password distinct from hashing faults.
func hashError(op string, err error) error {
	if errors.Is(err, ErrPasswordTooLong) {
		return ErrPasswordTooLong
	}
	return fmt.Errorf("%s: hash password: %w", op, err)
}

// storageError maps repository errors onto the workflow taxonomy.
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrDuplicateEmail
	}
	for _, d := range domainErrors {
		if errors.Is(err, d) {
			return err
		}
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
