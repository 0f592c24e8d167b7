// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/demigame/demiserver/internal/auth"
)

// AccountRepository implements auth.AccountRepository using PostgreSQL.
type AccountRepository struct {
	pool Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account row. The id is server-assigned.
func (r *AccountRepository) Create(ctx context.Context, username, passwordHash string, security auth.AccountSecurity) error {
	_, err := querierFromCtx(ctx, r.pool).Exec(ctx, `
		INSERT INTO account (username, password_hash, security)
		VALUES ($1, $2, $3)
	`, username, passwordHash, int32(security))
	if err != nil {
		return oops.Code("ACCOUNT_CREATE_FAILED").
			With("operation", "insert account").
			With("username", username).
			Wrap(err)
	}
	return nil
}

// CountByUsername returns the number of accounts with the given username.
func (r *AccountRepository) CountByUsername(ctx context.Context, username string) (int, error) {
	var count int
	err := querierFromCtx(ctx, r.pool).QueryRow(ctx, `
		SELECT COUNT(*) FROM account WHERE username = $1
	`, username).Scan(&count)
	if err != nil {
		return 0, oops.Code("ACCOUNT_COUNT_FAILED").
			With("operation", "count accounts by username").
			With("username", username).
			Wrap(err)
	}
	return count, nil
}

// GetByUsername retrieves an account by username.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*auth.Account, error) {
	row := querierFromCtx(ctx, r.pool).QueryRow(ctx, `
		SELECT id, username, password_hash, security, session_id
		FROM account
		WHERE username = $1
	`, username)

	account, err := r.scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("username", username).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_BY_USERNAME_FAILED").
			With("operation", "get account by username").
			With("username", username).
			Wrap(err)
	}
	return account, nil
}

// GetBySession retrieves the account holding the given session token.
func (r *AccountRepository) GetBySession(ctx context.Context, sessionID uuid.UUID) (*auth.Account, error) {
	row := querierFromCtx(ctx, r.pool).QueryRow(ctx, `
		SELECT id, username, password_hash, security, session_id
		FROM account
		WHERE session_id = $1
	`, sessionID.String())

	account, err := r.scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_BY_SESSION_FAILED").
			With("operation", "get account by session").
			Wrap(err)
	}
	return account, nil
}

// GetID resolves a username to its account id. Absence yields -1 and
// ErrNotFound; absence is not a storage failure.
func (r *AccountRepository) GetID(ctx context.Context, username string) (int32, error) {
	var id int32
	err := querierFromCtx(ctx, r.pool).QueryRow(ctx, `
		SELECT id FROM account WHERE username = $1
	`, username).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return -1, oops.Code("ACCOUNT_NOT_FOUND").
			With("username", username).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return -1, oops.Code("ACCOUNT_GET_ID_FAILED").
			With("operation", "get account id").
			With("username", username).
			Wrap(err)
	}
	return id, nil
}

// SetSession writes the session token for an account; nil clears it.
func (r *AccountRepository) SetSession(ctx context.Context, accountID int32, sessionID *uuid.UUID) error {
	var token *string
	if sessionID != nil {
		s := sessionID.String()
		token = &s
	}

	result, err := querierFromCtx(ctx, r.pool).Exec(ctx, `
		UPDATE account SET session_id = $2 WHERE id = $1
	`, accountID, token)
	if err != nil {
		return oops.Code("ACCOUNT_SET_SESSION_FAILED").
			With("operation", "update session").
			With("account_id", accountID).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("ACCOUNT_NOT_FOUND").
			With("account_id", accountID).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// ClearAllSessions nulls every session token.
func (r *AccountRepository) ClearAllSessions(ctx context.Context) error {
	_, err := querierFromCtx(ctx, r.pool).Exec(ctx, `
		UPDATE account SET session_id = NULL
	`)
	if err != nil {
		return oops.Code("ACCOUNT_RESET_SESSIONS_FAILED").
			With("operation", "clear all sessions").
			Wrap(err)
	}
	return nil
}

// scanAccount scans a single row into an Account.
// Callers are responsible for handling pgx.ErrNoRows.
func (r *AccountRepository) scanAccount(row pgx.Row) (*auth.Account, error) {
	var (
		id           int32
		username     string
		passwordHash string
		security     int32
		sessionIDStr *string
	)

	err := row.Scan(&id, &username, &passwordHash, &security, &sessionIDStr)
	if err != nil {
		// Propagate pgx.ErrNoRows unchanged for callers to handle with context.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("ACCOUNT_SCAN_FAILED").
			With("operation", "scan account").
			Wrap(err)
	}

	var sessionID *uuid.UUID
	if sessionIDStr != nil {
		parsed, err := uuid.Parse(*sessionIDStr)
		if err != nil {
			return nil, oops.Code("ACCOUNT_INVALID_SESSION_ID").
				With("operation", "parse session id").
				With("session_id", *sessionIDStr).
				Wrap(err)
		}
		sessionID = &parsed
	}

	return &auth.Account{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		Security:     auth.AccountSecurity(security),
		SessionID:    sessionID,
	}, nil
}

// Compile-time interface check.
var _ auth.AccountRepository = (*AccountRepository)(nil)
