// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/demigame/demiserver/internal/world"
)

// CharacterRepository implements world.CharacterRepository using PostgreSQL.
type CharacterRepository struct {
	pool Pool
}

// NewCharacterRepository creates a new CharacterRepository.
func NewCharacterRepository(pool Pool) *CharacterRepository {
	return &CharacterRepository{pool: pool}
}

// Create inserts a character row.
func (r *CharacterRepository) Create(ctx context.Context, char *world.Character) error {
	_, err := querierFromCtx(ctx, r.pool).Exec(ctx, `
		INSERT INTO character_data (character_id, user_id, name, level, class_id, race_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		char.ID.String(),
		char.AccountID,
		char.Name,
		char.Level,
		int32(char.Class),
		int32(char.Race),
	)
	if err != nil {
		return oops.Code("CHARACTER_CREATE_FAILED").
			With("operation", "insert character_data").
			With("name", char.Name).
			Wrap(err)
	}
	return nil
}

// CreateLocation inserts the companion position row.
func (r *CharacterRepository) CreateLocation(ctx context.Context, characterID uuid.UUID, vec world.Vector) error {
	_, err := querierFromCtx(ctx, r.pool).Exec(ctx, `
		INSERT INTO character_location_data (character_id, map_id, cell_id, x, y, direction)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		characterID.String(),
		vec.MapID,
		vec.CellID,
		vec.X,
		vec.Y,
		int32(vec.Direction),
	)
	if err != nil {
		return oops.Code("CHARACTER_CREATE_LOCATION_FAILED").
			With("operation", "insert character_location_data").
			With("character_id", characterID.String()).
			Wrap(err)
	}
	return nil
}

// CountByName returns the number of characters with the given name.
func (r *CharacterRepository) CountByName(ctx context.Context, name string) (int, error) {
	var count int
	err := querierFromCtx(ctx, r.pool).QueryRow(ctx, `
		SELECT COUNT(*) FROM character_data WHERE name = $1
	`, name).Scan(&count)
	if err != nil {
		return 0, oops.Code("CHARACTER_COUNT_FAILED").
			With("operation", "count characters by name").
			With("name", name).
			Wrap(err)
	}
	return count, nil
}

// CountByAccount returns the number of characters an account holds.
func (r *CharacterRepository) CountByAccount(ctx context.Context, accountID int32) (int, error) {
	var count int
	err := querierFromCtx(ctx, r.pool).QueryRow(ctx, `
		SELECT COUNT(*) FROM character_data WHERE user_id = $1
	`, accountID).Scan(&count)
	if err != nil {
		return 0, oops.Code("CHARACTER_COUNT_FAILED").
			With("operation", "count characters by account").
			With("account_id", accountID).
			Wrap(err)
	}
	return count, nil
}

// ListByAccount returns the account's characters, positions not attached.
func (r *CharacterRepository) ListByAccount(ctx context.Context, accountID int32) ([]world.Character, error) {
	rows, err := querierFromCtx(ctx, r.pool).Query(ctx, `
		SELECT character_id, user_id, name, level, class_id, race_id
		FROM character_data
		WHERE user_id = $1
		ORDER BY name
	`, accountID)
	if err != nil {
		return nil, oops.Code("CHARACTER_LIST_FAILED").
			With("operation", "query character_data").
			With("account_id", accountID).
			Wrap(err)
	}
	defer rows.Close()

	var characters []world.Character
	for rows.Next() {
		var (
			char    world.Character
			idStr   string
			classID int32
			raceID  int32
		)
		if err := rows.Scan(&idStr, &char.AccountID, &char.Name, &char.Level, &classID, &raceID); err != nil {
			return nil, oops.Code("CHARACTER_SCAN_FAILED").
				With("operation", "scan character row").
				Wrap(err)
		}
		char.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, oops.Code("CHARACTER_INVALID_ID").
				With("operation", "parse character id").
				With("character_id", idStr).
				Wrap(err)
		}
		char.Class = world.Class(classID)
		char.Race = world.Race(raceID)
		characters = append(characters, char)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("CHARACTER_LIST_FAILED").
			With("operation", "iterate character rows").
			Wrap(err)
	}
	return characters, nil
}

// GetLocation fetches a character's position row.
func (r *CharacterRepository) GetLocation(ctx context.Context, characterID uuid.UUID) (world.Vector, error) {
	var (
		vec       world.Vector
		direction int32
	)
	err := querierFromCtx(ctx, r.pool).QueryRow(ctx, `
		SELECT map_id, cell_id, x, y, direction
		FROM character_location_data
		WHERE character_id = $1
	`, characterID.String()).Scan(&vec.MapID, &vec.CellID, &vec.X, &vec.Y, &direction)
	if errors.Is(err, pgx.ErrNoRows) {
		return world.Vector{}, oops.Code("CHARACTER_LOCATION_NOT_FOUND").
			With("character_id", characterID.String()).
			Wrap(world.ErrNotFound)
	}
	if err != nil {
		return world.Vector{}, oops.Code("CHARACTER_GET_LOCATION_FAILED").
			With("operation", "get character location").
			With("character_id", characterID.String()).
			Wrap(err)
	}
	vec.Direction = world.MoveDirection(direction)
	return vec, nil
}

// GetID resolves (account, name) to a character id.
func (r *CharacterRepository) GetID(ctx context.Context, accountID int32, name string) (uuid.UUID, error) {
	var idStr string
	err := querierFromCtx(ctx, r.pool).QueryRow(ctx, `
		SELECT character_id FROM character_data WHERE user_id = $1 AND name = $2
	`, accountID, name).Scan(&idStr)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, oops.Code("CHARACTER_NOT_FOUND").
			With("account_id", accountID).
			With("name", name).
			Wrap(world.ErrNotFound)
	}
	if err != nil {
		return uuid.Nil, oops.Code("CHARACTER_GET_ID_FAILED").
			With("operation", "get character id").
			With("name", name).
			Wrap(err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, oops.Code("CHARACTER_INVALID_ID").
			With("operation", "parse character id").
			With("character_id", idStr).
			Wrap(err)
	}
	return id, nil
}

// Delete removes the character row.
func (r *CharacterRepository) Delete(ctx context.Context, characterID uuid.UUID) error {
	result, err := querierFromCtx(ctx, r.pool).Exec(ctx, `
		DELETE FROM character_data WHERE character_id = $1
	`, characterID.String())
	if err != nil {
		return oops.Code("CHARACTER_DELETE_FAILED").
			With("operation", "delete character_data").
			With("character_id", characterID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("CHARACTER_NOT_FOUND").
			With("character_id", characterID.String()).
			Wrap(world.ErrNotFound)
	}
	return nil
}

// DeleteLocation removes the companion position row.
func (r *CharacterRepository) DeleteLocation(ctx context.Context, characterID uuid.UUID) error {
	_, err := querierFromCtx(ctx, r.pool).Exec(ctx, `
		DELETE FROM character_location_data WHERE character_id = $1
	`, characterID.String())
	if err != nil {
		return oops.Code("CHARACTER_DELETE_LOCATION_FAILED").
			With("operation", "delete character_location_data").
			With("character_id", characterID.String()).
			Wrap(err)
	}
	return nil
}

// SavePosition updates x, y, and direction for the character.
func (r *CharacterRepository) SavePosition(ctx context.Context, characterID uuid.UUID, vec world.Vector) error {
	_, err := querierFromCtx(ctx, r.pool).Exec(ctx, `
		UPDATE character_location_data SET x = $2, y = $3, direction = $4
		WHERE character_id = $1
	`, characterID.String(), vec.X, vec.Y, int32(vec.Direction))
	if err != nil {
		return oops.Code("CHARACTER_SAVE_POSITION_FAILED").
			With("operation", "update character_location_data").
			With("character_id", characterID.String()).
			Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ world.CharacterRepository = (*CharacterRepository)(nil)
