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
)

func TestPresenceRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO account_online`).
		WithArgs(int32(7)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewPresenceRepository(mock)
	require.NoError(t, repo.Create(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}

func TestPresenceRepository_SetOnlineCharacter(t *testing.T) {
	charID := uuid.New()

	t.Run("successful update", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectExec(`UPDATE account_online SET character_id = \$2, is_online = TRUE`).
			WithArgs(int32(7), charID.String()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewPresenceRepository(mock)
		require.NoError(t, repo.SetOnlineCharacter(context.Background(), 7, charID))
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectExec(`UPDATE account_online SET character_id = \$2, is_online = TRUE`).
			WithArgs(int32(7), charID.String()).
			WillReturnError(errors.New("connection lost"))

		repo := NewPresenceRepository(mock)
		err = repo.SetOnlineCharacter(context.Background(), 7, charID)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection lost")
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}

func TestPresenceRepository_ClearOnlineCharacter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	mock.ExpectExec(`UPDATE account_online SET character_id = NULL, is_online = FALSE WHERE user_id = \$1`).
		WithArgs(int32(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewPresenceRepository(mock)
	require.NoError(t, repo.ClearOnlineCharacter(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}

func TestPresenceRepository_ClearAll(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	mock.ExpectExec(`UPDATE account_online SET character_id = NULL, is_online = FALSE`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 40))

	repo := NewPresenceRepository(mock)
	require.NoError(t, repo.ClearAll(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}
