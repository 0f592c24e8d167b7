// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/demigame/demiserver/internal/auth"
)

// PresenceRepository implements auth.PresenceRepository using PostgreSQL.
type PresenceRepository struct {
	pool Pool
}

// NewPresenceRepository creates a new PresenceRepository.
func NewPresenceRepository(pool Pool) *PresenceRepository {
	return &PresenceRepository{pool: pool}
}

// Create inserts the companion presence row for a new account.
func (r *PresenceRepository) Create(ctx context.Context, accountID int32) error {
	_, err := querierFromCtx(ctx, r.pool).Exec(ctx, `
		INSERT INTO account_online (user_id) VALUES ($1)
	`, accountID)
	if err != nil {
		return oops.Code("PRESENCE_CREATE_FAILED").
			With("operation", "insert account_online").
			With("account_id", accountID).
			Wrap(err)
	}
	return nil
}

// SetOnlineCharacter marks the account online with the given character.
func (r *PresenceRepository) SetOnlineCharacter(ctx context.Context, accountID int32, characterID uuid.UUID) error {
	_, err := querierFromCtx(ctx, r.pool).Exec(ctx, `
		UPDATE account_online SET character_id = $2, is_online = TRUE WHERE user_id = $1
	`, accountID, characterID.String())
	if err != nil {
		return oops.Code("PRESENCE_SET_FAILED").
			With("operation", "set online character").
			With("account_id", accountID).
			Wrap(err)
	}
	return nil
}

// ClearOnlineCharacter marks the account offline and clears the character.
func (r *PresenceRepository) ClearOnlineCharacter(ctx context.Context, accountID int32) error {
	_, err := querierFromCtx(ctx, r.pool).Exec(ctx, `
		UPDATE account_online SET character_id = NULL, is_online = FALSE WHERE user_id = $1
	`, accountID)
	if err != nil {
		return oops.Code("PRESENCE_CLEAR_FAILED").
			With("operation", "clear online character").
			With("account_id", accountID).
			Wrap(err)
	}
	return nil
}

// ClearAll marks every account offline.
func (r *PresenceRepository) ClearAll(ctx context.Context) error {
	_, err := querierFromCtx(ctx, r.pool).Exec(ctx, `
		UPDATE account_online SET character_id = NULL, is_online = FALSE
	`)
	if err != nil {
		return oops.Code("PRESENCE_RESET_FAILED").
			With("operation", "clear all presence").
			Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ auth.PresenceRepository = (*PresenceRepository)(nil)
