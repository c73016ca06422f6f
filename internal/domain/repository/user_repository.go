package repository

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a user with the same email exists.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create inserts u and fills its ID and timestamps.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// List returns every user, newest first.
	List(ctx context.Context) ([]*entity.User, error)
	// Update writes the profile fields of u and refreshes UpdatedAt.
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id int64, digest string) error
	SetVerified(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// EmailCodeRepository stores one-time codes.
type EmailCodeRepository interface {
	Create(ctx context.Context, c *entity.EmailCode) error
	// GetByCode returns the code with the given purpose created at or after
	// notBefore. A zero notBefore disables the age check.
	GetByCode(ctx context.Context, code string, purpose entity.CodePurpose, notBefore time.Time) (*entity.EmailCode, error)
	Delete(ctx context.Context, id int64) error
}

// Store groups the repositories sharing one connection or transaction.
type Store interface {
	Users() UserRepository
	Codes() EmailCodeRepository
	// WithinTx runs fn against a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
