package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/go-user-auth-api/internal/domain/repository"
)

// Store implements repository.Store over a pool or an open transaction.
type Store struct {
	db DBTX
}

func NewStore(db DBTX) *Store {
	return &Store{db: db}
}

func (s *Store) Users() repository.UserRepository       { return NewUserRepository(s.db) }
func (s *Store) Codes() repository.EmailCodeRepository { return NewEmailCodeRepository(s.db) }

// WithinTx begins a transaction (a savepoint when s is already inside one),
// runs fn and commits. Errors and panics from fn roll back.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) (err error) {
	const op = "postgres.Store.WithinTx"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
	}()

	if err := fn(ctx, &Store{db: tx}); err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			return errors.Join(err, fmt.Errorf("%s: rollback: %w", op, rbErr))
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	return nil
}
