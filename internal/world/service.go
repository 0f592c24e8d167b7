// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package world

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/demigame/demiserver/internal/status"
)

// Service provides character creation, listing, deletion, and position
// persistence. Every mutating operation yields exactly one Status; raw
// storage errors are logged here and never returned to callers.
type Service struct {
	characters CharacterRepository
	spawnMaps  SpawnRepository
	spawns     SpawnProvider
	tx         Transactor
}

// NewService creates a new Service.
func NewService(characters CharacterRepository, spawnMaps SpawnRepository, spawns SpawnProvider, tx Transactor) *Service {
	return &Service{
		characters: characters,
		spawnMaps:  spawnMaps,
		spawns:     spawns,
		tx:         tx,
	}
}

// CharacterExists reports whether the (normalized) name is taken, scoped to
// the character table.
func (s *Service) CharacterExists(ctx context.Context, name string) status.Status {
	count, err := s.characters.CountByName(ctx, NormalizeCharacterName(name))
	if err != nil {
		slog.Error("character existence check failed", "name", name, "error", err)
		return status.Fatal
	}
	if count > 0 {
		return status.RowExists
	}
	return status.OK
}

// CanCreate reports whether the account is below the character limit.
// The limit is enforced here at the caller layer; CreateCharacter itself
// does not enforce it.
func (s *Service) CanCreate(ctx context.Context, accountID int32) (bool, error) {
	count, err := s.characters.CountByAccount(ctx, accountID)
	if err != nil {
		return false, err
	}
	return count < MaxCharactersPerAccount, nil
}

// CreateCharacter creates a character and its companion position row.
// The name is normalized before the existence check; the position is seeded
// from the race's starting map at its "Player" spawn point, with the cell id
// left at the unset sentinel and direction zero. Both inserts run in one
// transaction.
func (s *Service) CreateCharacter(ctx context.Context, accountID int32, name string, race Race) status.Status {
	normalized := NormalizeCharacterName(name)
	if err := ValidateCharacterName(normalized); err != nil {
		slog.Warn("character name rejected", "name", name, "error", err)
		return status.Fatal
	}

	if existStatus := s.CharacterExists(ctx, normalized); existStatus != status.OK {
		return existStatus
	}

	mapID, err := s.spawnMaps.MapIDForRace(ctx, race)
	if err != nil {
		slog.Error("no starting map for race", "race", race, "error", err)
		return status.Fatal
	}
	point, err := s.spawns.SpawnPoint(mapID, PlayerSpawnName)
	if err != nil {
		slog.Error("no player spawn point on starting map", "map_id", mapID, "error", err)
		return status.Fatal
	}

	char := &Character{
		ID:        uuid.New(),
		AccountID: accountID,
		Name:      normalized,
		Level:     1,
		Class:     ClassWarrior,
		Race:      race,
	}
	vec := Vector{
		MapID:     mapID,
		CellID:    UnsetCellID,
		X:         point.X,
		Y:         point.Y,
		Direction: DirectionDown,
	}

	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.characters.Create(ctx, char); err != nil {
			return err
		}
		return s.characters.CreateLocation(ctx, char.ID, vec)
	})
	if err != nil {
		st := status.FromError(err)
		if st == status.Fatal {
			slog.Error("character creation failed", "name", normalized, "error", err)
		}
		return st
	}
	return status.OK
}

// FetchCharacters returns the account's characters with positions attached.
// One query lists the characters, then each position is fetched separately;
// the list is bounded by the character limit, so the N+1 stays small. A
// missing position row leaves a zero vector rather than failing the list.
func (s *Service) FetchCharacters(ctx context.Context, accountID int32) []Character {
	characters, err := s.characters.ListByAccount(ctx, accountID)
	if err != nil {
		slog.Error("character list fetch failed", "account_id", accountID, "error", err)
		return nil
	}

	for i := range characters {
		vec, err := s.characters.GetLocation(ctx, characters[i].ID)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				slog.Error("character position fetch failed",
					"character_id", characters[i].ID.String(), "error", err)
			}
			continue
		}
		characters[i].Vector = vec
	}
	return characters
}

// DeleteCharacter removes the character resolved by (account, name) along
// with its position row, in that order, in one transaction. An unresolved
// name yields Fatal: absence is deliberately not distinguished from failure
// here, matching the protocol's delete result codes.
func (s *Service) DeleteCharacter(ctx context.Context, accountID int32, name string) status.Status {
	id, err := s.characters.GetID(ctx, accountID, name)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Error("character id lookup failed", "name", name, "error", err)
		}
		return status.Fatal
	}

	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.characters.Delete(ctx, id); err != nil {
			return err
		}
		return s.characters.DeleteLocation(ctx, id)
	})
	if err != nil {
		slog.Error("character deletion failed", "character_id", id.String(), "error", err)
		return status.Fatal
	}
	return status.OK
}

// SaveCharacter persists the character's current x, y, and direction.
// No existence check: the caller already holds a valid character reference.
func (s *Service) SaveCharacter(ctx context.Context, char *Character) status.Status {
	if err := s.characters.SavePosition(ctx, char.ID, char.Vector); err != nil {
		slog.Error("character position save failed", "character_id", char.ID.String(), "error", err)
		return status.Fatal
	}
	return status.OK
}
