package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-user-auth-api/internal/domain/repository"
)

var codeCols = []string{"id", "code", "user_id", "purpose", "created_at", "updated_at"}

func TestEmailCodeRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO email_codes`).
		WithArgs("abc", int64(9), "verify_email").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	c := &entity.EmailCode{Code: "abc", UserID: 9, Purpose: entity.PurposeVerifyEmail}
	require.NoError(t, NewEmailCodeRepository(mock).Create(context.Background(), c))
	assert.Equal(t, int64(1), c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailCodeRepository_GetByCode(t *testing.T) {
	now := time.Now().UTC()
	cutoff := now.Add(-24 * time.Hour)
	tests := []struct {
		name      string
		notBefore time.Time
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "no age limit",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM email_codes`).
					WithArgs("abc", "reset_password", nil).
					WillReturnRows(pgxmock.NewRows(codeCols).AddRow(int64(1), "abc", int64(9), "reset_password", now, now))
			},
		},
		{
			name:      "with age limit",
			notBefore: cutoff,
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FOR UPDATE`).
					WithArgs("abc", "reset_password", cutoff).
					WillReturnRows(pgxmock.NewRows(codeCols).AddRow(int64(1), "abc", int64(9), "reset_password", now, now))
			},
		},
		{
			name: "absent or expired",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM email_codes`).
					WithArgs("abc", "reset_password", nil).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: repository.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.setupMock(mock)

			c, err := NewEmailCodeRepository(mock).GetByCode(context.Background(), "abc", entity.PurposeResetPassword, tt.notBefore)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(9), c.UserID)
				assert.Equal(t, entity.PurposeResetPassword, c.Purpose)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEmailCodeRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM email_codes`).WithArgs(int64(1)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM email_codes`).WithArgs(int64(2)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewEmailCodeRepository(mock)
	assert.NoError(t, repo.Delete(context.Background(), 1))
	assert.ErrorIs(t, repo.Delete(context.Background(), 2), repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
