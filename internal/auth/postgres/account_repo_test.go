// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demigame/demiserver/internal/auth"
)

func TestAccountRepository_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   bool
		errMsg    string
	}{
		{
			name: "successful insert",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO account`).
					WithArgs("arthas", "$argon2id$hash", int32(auth.SecurityPlayer)).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
			wantErr: false,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO account`).
					WithArgs("arthas", "$argon2id$hash", int32(auth.SecurityPlayer)).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
			errMsg:  "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewAccountRepository(mock)
			err = repo.Create(context.Background(), "arthas", "$argon2id$hash", auth.SecurityPlayer)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestAccountRepository_CountByUsername(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      int
		wantErr   bool
	}{
		{
			name: "name taken",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"count"}).AddRow(1)
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM account WHERE username = \$1`).
					WithArgs("arthas").
					WillReturnRows(rows)
			},
			want: 1,
		},
		{
			name: "name free",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"count"}).AddRow(0)
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM account WHERE username = \$1`).
					WithArgs("arthas").
					WillReturnRows(rows)
			},
			want: 0,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM account WHERE username = \$1`).
					WithArgs("arthas").
					WillReturnError(errors.New("timeout"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewAccountRepository(mock)
			got, err := repo.CountByUsername(context.Background(), "arthas")

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestAccountRepository_GetByUsername(t *testing.T) {
	sessionID := uuid.New()
	sessionStr := sessionID.String()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      *auth.Account
		wantErr   error
	}{
		{
			name: "account with live session",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "username", "password_hash", "security", "session_id"}).
					AddRow(int32(3), "arthas", "$argon2id$hash", int32(1), &sessionStr)
				mock.ExpectQuery(`SELECT id, username, password_hash, security, session_id`).
					WithArgs("arthas").
					WillReturnRows(rows)
			},
			want: &auth.Account{
				ID:           3,
				Username:     "arthas",
				PasswordHash: "$argon2id$hash",
				Security:     auth.SecurityGameMaster,
				SessionID:    &sessionID,
			},
		},
		{
			name: "account with no session",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "username", "password_hash", "security", "session_id"}).
					AddRow(int32(3), "arthas", "$argon2id$hash", int32(0), (*string)(nil))
				mock.ExpectQuery(`SELECT id, username, password_hash, security, session_id`).
					WithArgs("arthas").
					WillReturnRows(rows)
			},
			want: &auth.Account{
				ID:           3,
				Username:     "arthas",
				PasswordHash: "$argon2id$hash",
				Security:     auth.SecurityPlayer,
			},
		},
		{
			name: "absent account",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, username, password_hash, security, session_id`).
					WithArgs("arthas").
					WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "security", "session_id"}))
			},
			wantErr: auth.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewAccountRepository(mock)
			got, err := repo.GetByUsername(context.Background(), "arthas")

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestAccountRepository_GetBySession(t *testing.T) {
	sessionID := uuid.New()
	sessionStr := sessionID.String()

	t.Run("live token", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "username", "password_hash", "security", "session_id"}).
			AddRow(int32(3), "arthas", "$argon2id$hash", int32(0), &sessionStr)
		mock.ExpectQuery(`SELECT id, username, password_hash, security, session_id`).
			WithArgs(sessionID.String()).
			WillReturnRows(rows)

		repo := NewAccountRepository(mock)
		got, err := repo.GetBySession(context.Background(), sessionID)

		require.NoError(t, err)
		assert.Equal(t, int32(3), got.ID)
		require.NotNil(t, got.SessionID)
		assert.Equal(t, sessionID, *got.SessionID)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("dead token", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, username, password_hash, security, session_id`).
			WithArgs(sessionID.String()).
			WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "security", "session_id"}))

		repo := NewAccountRepository(mock)
		_, err = repo.GetBySession(context.Background(), sessionID)

		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}

func TestAccountRepository_GetID(t *testing.T) {
	t.Run("resolved", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id"}).AddRow(int32(42))
		mock.ExpectQuery(`SELECT id FROM account WHERE username = \$1`).
			WithArgs("arthas").
			WillReturnRows(rows)

		repo := NewAccountRepository(mock)
		id, err := repo.GetID(context.Background(), "arthas")

		require.NoError(t, err)
		assert.Equal(t, int32(42), id)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("absent yields -1 and ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectQuery(`SELECT id FROM account WHERE username = \$1`).
			WithArgs("nobody").
			WillReturnRows(pgxmock.NewRows([]string{"id"}))

		repo := NewAccountRepository(mock)
		id, err := repo.GetID(context.Background(), "nobody")

		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrNotFound)
		assert.Equal(t, int32(-1), id)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}

func TestAccountRepository_SetSession(t *testing.T) {
	sessionID := uuid.New()

	t.Run("establish token", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectExec(`UPDATE account SET session_id = \$2 WHERE id = \$1`).
			WithArgs(int32(3), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewAccountRepository(mock)
		err = repo.SetSession(context.Background(), 3, &sessionID)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("clear token", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectExec(`UPDATE account SET session_id = \$2 WHERE id = \$1`).
			WithArgs(int32(3), (*string)(nil)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewAccountRepository(mock)
		err = repo.SetSession(context.Background(), 3, nil)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("unknown account id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectExec(`UPDATE account SET session_id = \$2 WHERE id = \$1`).
			WithArgs(int32(99), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := NewAccountRepository(mock)
		err = repo.SetSession(context.Background(), 99, &sessionID)

		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}

func TestAccountRepository_ClearAllSessions(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	mock.ExpectExec(`UPDATE account SET session_id = NULL`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 12))

	repo := NewAccountRepository(mock)
	require.NoError(t, repo.ClearAllSessions(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}
