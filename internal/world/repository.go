// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package world

import (
	"context"

	"github.com/google/uuid"
)

// CharacterRepository defines persistence operations on character_data and
// character_location_data.
type CharacterRepository interface {
	// Create inserts a character row.
	Create(ctx context.Context, char *Character) error

	// CreateLocation inserts the companion position row.
	CreateLocation(ctx context.Context, characterID uuid.UUID, vec Vector) error

	// CountByName returns the number of characters with the given name.
	// Names are globally unique, so this is 0 or 1 outside of races.
	CountByName(ctx context.Context, name string) (int, error)

	// CountByAccount returns the number of characters an account holds.
	CountByAccount(ctx context.Context, accountID int32) (int, error)

	// ListByAccount returns the account's characters without positions.
	ListByAccount(ctx context.Context, accountID int32) ([]Character, error)

	// GetLocation fetches a character's position row.
	// Returns ErrNotFound when the character has no position.
	GetLocation(ctx context.Context, characterID uuid.UUID) (Vector, error)

	// GetID resolves (account, name) to a character id.
	// Returns uuid.Nil and ErrNotFound when unresolved.
	GetID(ctx context.Context, accountID int32, name string) (uuid.UUID, error)

	// Delete removes the character row.
	Delete(ctx context.Context, characterID uuid.UUID) error

	// DeleteLocation removes the companion position row.
	DeleteLocation(ctx context.Context, characterID uuid.UUID) error

	// SavePosition updates x, y, and direction for the character,
	// unconditionally (no existence check).
	SavePosition(ctx context.Context, characterID uuid.UUID, vec Vector) error
}

// SpawnRepository resolves race starting maps from character_spawns.
type SpawnRepository interface {
	// MapIDForRace returns the starting map for a race, or -1 and
	// ErrNotFound when no spawn row exists.
	MapIDForRace(ctx context.Context, race Race) (int32, error)
}

// Transactor runs a function inside a single storage transaction.
type Transactor interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
