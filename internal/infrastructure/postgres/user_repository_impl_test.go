package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-user-auth-api/internal/domain/repository"
)

var userCols = []string{"id", "first_name", "last_name", "email", "password", "country", "image", "is_verify", "created_at", "updated_at"}

func TestUserRepository_Create(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "inserted",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Ann", "Lee", "ann@example.com", "digest", "NZ", "").
					WillReturnRows(pgxmock.NewRows([]string{"id", "is_verify", "created_at", "updated_at"}).
						AddRow(int64(7), false, now, now))
			},
		},
		{
			name: "duplicate email",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Ann", "Lee", "ann@example.com", "digest", "NZ", "").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})
			},
			wantErr: repository.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.setupMock(mock)

			u := &entity.User{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Password: "digest", Country: "NZ"}
			err = NewUserRepository(mock).Create(context.Background(), u)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(7), u.ID)
				assert.False(t, u.IsVerified)
				assert.Equal(t, now, u.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	now := time.Now().UTC()
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
		errMsg    string
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM users WHERE email`).
					WithArgs("ann@example.com").
					WillReturnRows(pgxmock.NewRows(userCols).
						AddRow(int64(1), "Ann", "Lee", "ann@example.com", "digest", "NZ", "a.png", true, now, now))
			},
		},
		{
			name: "missing",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM users WHERE email`).
					WithArgs("ann@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: repository.ErrNotFound,
		},
		{
			name: "driver failure",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM users WHERE email`).
					WithArgs("ann@example.com").
					WillReturnError(errors.New("connection refused"))
			},
			errMsg: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.setupMock(mock)

			u, err := NewUserRepository(mock).GetByEmail(context.Background(), "ann@example.com")
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.NotErrorIs(t, err, repository.ErrNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, int64(1), u.ID)
				assert.Equal(t, "a.png", u.Image)
				assert.True(t, u.IsVerified)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	mock.ExpectQuery(`ORDER BY created_at DESC`).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(2), "Bob", "B", "bob@example.com", "d2", "", "", false, newer, newer).
			AddRow(int64(1), "Ann", "A", "ann@example.com", "d1", "", "", true, older, older))

	users, err := NewUserRepository(mock).List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(2), users[0].ID)
	assert.Equal(t, int64(1), users[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`UPDATE users`).
		WithArgs(int64(4), "Ann", "Lee", "NZ", "b.png").
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectQuery(`UPDATE users`).
		WithArgs(int64(5), "", "", "", "").
		WillReturnError(pgx.ErrNoRows)

	repo := NewUserRepository(mock)
	u := &entity.User{ID: 4, FirstName: "Ann", LastName: "Lee", Country: "NZ", Image: "b.png"}
	require.NoError(t, repo.Update(context.Background(), u))
	assert.Equal(t, now, u.UpdatedAt)

	assert.ErrorIs(t, repo.Update(context.Background(), &entity.User{ID: 5}), repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SingleRowWrites(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		run     func(r *UserRepository) error
		args    []any
		rows    int64
		wantErr error
	}{
		{
			name:  "set verified",
			query: `UPDATE users SET is_verify = TRUE`,
			run:   func(r *UserRepository) error { return r.SetVerified(context.Background(), 3) },
			args:  []any{int64(3)},
			rows:  1,
		},
		{
			name:  "update password",
			query: `UPDATE users SET password`,
			run:   func(r *UserRepository) error { return r.UpdatePassword(context.Background(), 3, "new") },
			args:  []any{int64(3), "new"},
			rows:  1,
		},
		{
			name:  "delete",
			query: `DELETE FROM users`,
			run:   func(r *UserRepository) error { return r.Delete(context.Background(), 3) },
			args:  []any{int64(3)},
			rows:  1,
		},
		{
			name:    "delete missing",
			query:   `DELETE FROM users`,
			run:     func(r *UserRepository) error { return r.Delete(context.Background(), 3) },
			args:    []any{int64(3)},
			rows:    0,
			wantErr: repository.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			verb := "UPDATE"
			if tt.query == `DELETE FROM users` {
				verb = "DELETE"
			}
			mock.ExpectExec(tt.query).WithArgs(tt.args...).WillReturnResult(pgxmock.NewResult(verb, tt.rows))

			err = tt.run(NewUserRepository(mock))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
