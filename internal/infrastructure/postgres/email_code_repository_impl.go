package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-user-auth-api/internal/domain/repository"
)

type EmailCodeRepository struct {
	db DBTX
}

func NewEmailCodeRepository(db DBTX) *EmailCodeRepository {
	return &EmailCodeRepository{db: db}
}

func (r *EmailCodeRepository) Create(ctx context.Context, c *entity.EmailCode) error {
	const op = "postgres.EmailCodeRepository.Create"

	row := r.db.QueryRow(ctx, `
		INSERT INTO email_codes (code, user_id, purpose)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, c.Code, c.UserID, string(c.Purpose))

	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetByCode locks the row so two concurrent redemptions of one code serialize;
// the loser sees it deleted.
func (r *EmailCodeRepository) GetByCode(ctx context.Context, code string, purpose entity.CodePurpose, notBefore time.Time) (*entity.EmailCode, error) {
	const op = "postgres.EmailCodeRepository.GetByCode"

	var since any
	if !notBefore.IsZero() {
		since = notBefore
	}

	c := &entity.EmailCode{}
	var p string
	err := r.db.QueryRow(ctx, `
		SELECT id, code, user_id, purpose, created_at, updated_at
		FROM email_codes
		WHERE code = $1 AND purpose = $2 AND ($3::timestamptz IS NULL OR created_at >= $3)
		FOR UPDATE
	`, code, string(purpose), since).Scan(&c.ID, &c.Code, &c.UserID, &p, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	c.Purpose = entity.CodePurpose(p)
	return c, nil
}

func (r *EmailCodeRepository) Delete(ctx context.Context, id int64) error {
	const op = "postgres.EmailCodeRepository.Delete"

	tag, err := r.db.Exec(ctx, `DELETE FROM email_codes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return nil
}
