package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-auth-api/internal/domain/repository"
)

func TestStore_WithinTx(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		fn        func(ctx context.Context, tx repository.Store) error
		wantErr   string
	}{
		{
			name: "commits",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE users SET is_verify = TRUE`).WithArgs(int64(1)).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectExec(`DELETE FROM email_codes`).WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context, tx repository.Store) error {
				if err := tx.Users().SetVerified(ctx, 1); err != nil {
					return err
				}
				return tx.Codes().Delete(ctx, 5)
			},
		},
		{
			name: "rolls back on error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE users SET is_verify = TRUE`).WithArgs(int64(1)).WillReturnError(errors.New("deadlock detected"))
				mock.ExpectRollback()
			},
			fn: func(ctx context.Context, tx repository.Store) error {
				return tx.Users().SetVerified(ctx, 1)
			},
			wantErr: "deadlock detected",
		},
		{
			name: "begin fails",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin().WillReturnError(errors.New("pool closed"))
			},
			fn:      func(context.Context, repository.Store) error { return nil },
			wantErr: "pool closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.setupMock(mock)

			err = NewStore(mock).WithinTx(context.Background(), tt.fn)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_WithinTxPanic(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = NewStore(mock).WithinTx(context.Background(), func(context.Context, repository.Store) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
