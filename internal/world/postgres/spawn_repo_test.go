// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demigame/demiserver/internal/world"
)

func TestSpawnRepository_MapIDForRace(t *testing.T) {
	t.Run("race has a starting map", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"map_id"}).AddRow(int32(2))
		mock.ExpectQuery(`SELECT map_id FROM character_spawns WHERE race_id = \$1`).
			WithArgs(int32(world.RaceOrc)).
			WillReturnRows(rows)

		repo := NewSpawnRepository(mock)
		mapID, err := repo.MapIDForRace(context.Background(), world.RaceOrc)

		require.NoError(t, err)
		assert.Equal(t, int32(2), mapID)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("unknown race yields -1 and ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectQuery(`SELECT map_id FROM character_spawns WHERE race_id = \$1`).
			WithArgs(int32(99)).
			WillReturnRows(pgxmock.NewRows([]string{"map_id"}))

		repo := NewSpawnRepository(mock)
		mapID, err := repo.MapIDForRace(context.Background(), world.Race(99))

		require.Error(t, err)
		assert.ErrorIs(t, err, world.ErrNotFound)
		assert.Equal(t, int32(-1), mapID)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectQuery(`SELECT map_id FROM character_spawns WHERE race_id = \$1`).
			WithArgs(int32(0)).
			WillReturnError(errors.New("timeout"))

		repo := NewSpawnRepository(mock)
		_, err = repo.MapIDForRace(context.Background(), world.RaceHuman)

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}
