// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package auth

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines the persistence operations for accounts.
type AccountRepository interface {
	// Create inserts a new account row. The server assigns the id.
	Create(ctx context.Context, username, passwordHash string, security AccountSecurity) error

	// CountByUsername returns the number of accounts with the given username.
	CountByUsername(ctx context.Context, username string) (int, error)

	// GetByUsername retrieves an account by username.
	// Returns ErrNotFound if no such account exists.
	GetByUsername(ctx context.Context, username string) (*Account, error)

	// GetBySession retrieves the account holding the given session token.
	// Returns ErrNotFound if the token is not live.
	GetBySession(ctx context.Context, sessionID uuid.UUID) (*Account, error)

	// GetID resolves a username to its account id.
	// Returns -1 and ErrNotFound when the account is absent.
	GetID(ctx context.Context, username string) (int32, error)

	// SetSession writes the session token for an account. A nil token
	// clears it (NULL in the store).
	SetSession(ctx context.Context, accountID int32, sessionID *uuid.UUID) error

	// ClearAllSessions nulls every session token. Run once at server start.
	ClearAllSessions(ctx context.Context) error
}

// PresenceRepository defines operations on the online-presence table
// (account_online), keyed by account id.
type PresenceRepository interface {
	// Create inserts the companion presence row for a new account.
	Create(ctx context.Context, accountID int32) error

	// SetOnlineCharacter marks the account online with the given character.
	SetOnlineCharacter(ctx context.Context, accountID int32, characterID uuid.UUID) error

	// ClearOnlineCharacter marks the account offline and clears the
	// character. Distinct from SetOnlineCharacter: the two statements take
	// different parameter sets.
	ClearOnlineCharacter(ctx context.Context, accountID int32) error

	// ClearAll marks every account offline. Run once at server start.
	ClearAll(ctx context.Context) error
}

// RealmRepository provides the read-only realm list.
type RealmRepository interface {
	List(ctx context.Context) ([]Realm, error)
}

// Transactor runs a function inside a single storage transaction.
type Transactor interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
