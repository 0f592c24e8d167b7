// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/demigame/demiserver/internal/world"
)

// SpawnRepository implements world.SpawnRepository using PostgreSQL.
type SpawnRepository struct {
	pool Pool
}

// NewSpawnRepository creates a new SpawnRepository.
func NewSpawnRepository(pool Pool) *SpawnRepository {
	return &SpawnRepository{pool: pool}
}

// MapIDForRace returns the starting map for a race. Absence yields -1 and
// ErrNotFound, distinct from a storage failure.
func (r *SpawnRepository) MapIDForRace(ctx context.Context, race world.Race) (int32, error) {
	var mapID int32
	err := querierFromCtx(ctx, r.pool).QueryRow(ctx, `
		SELECT map_id FROM character_spawns WHERE race_id = $1
	`, int32(race)).Scan(&mapID)
	if errors.Is(err, pgx.ErrNoRows) {
		return -1, oops.Code("SPAWN_NOT_FOUND").
			With("race_id", int32(race)).
			Wrap(world.ErrNotFound)
	}
	if err != nil {
		return -1, oops.Code("SPAWN_GET_FAILED").
			With("operation", "get spawn map for race").
			With("race_id", int32(race)).
			Wrap(err)
	}
	return mapID, nil
}

// Compile-time interface check.
var _ world.SpawnRepository = (*SpawnRepository)(nil)
