package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-user-auth-api/internal/domain/repository"
)

const userColumns = `id, first_name, last_name, email, password, country, image, is_verify, created_at, updated_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password,
		&u.Country, &u.Image, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	const op = "postgres.UserRepository.Create"

	row := r.db.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password, country, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_verify, created_at, updated_at
	`, u.FirstName, u.LastName, u.Email, u.Password, u.Country, u.Image)

	if err := row.Scan(&u.ID, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	const op = "postgres.UserRepository.GetByID"

	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const op = "postgres.UserRepository.GetByEmail"

	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	const op = "postgres.UserRepository.List"

	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	const op = "postgres.UserRepository.Update"

	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET first_name = $2, last_name = $3, country = $4, image = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, u.ID, u.FirstName, u.LastName, u.Country, u.Image)

	if err := row.Scan(&u.UpdatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, digest string) error {
	const op = "postgres.UserRepository.UpdatePassword"
	return r.execOne(ctx, op, `UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`, id, digest)
}

func (r *UserRepository) SetVerified(ctx context.Context, id int64) error {
	const op = "postgres.UserRepository.SetVerified"
	return r.execOne(ctx, op, `UPDATE users SET is_verify = TRUE, updated_at = NOW() WHERE id = $1`, id)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	const op = "postgres.UserRepository.Delete"
	return r.execOne(ctx, op, `DELETE FROM users WHERE id = $1`, id)
}

// execOne runs a statement that must touch exactly one row.
func (r *UserRepository) execOne(ctx context.Context, op, sql string, args ...any) error {
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return nil
}
