// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/demigame/demiserver/internal/status"
)

// Service provides account, session, and presence operations. Every
// operation classifies its outcome into the status taxonomy; raw storage
// errors are logged here and never returned to callers.
type Service struct {
	accounts AccountRepository
	presence PresenceRepository
	realms   RealmRepository
	tx       Transactor
	hasher   PasswordHasher
}

// NewService creates a new Service.
func NewService(accounts AccountRepository, presence PresenceRepository, realms RealmRepository, tx Transactor, hasher PasswordHasher) *Service {
	return &Service{
		accounts: accounts,
		presence: presence,
		realms:   realms,
		tx:       tx,
		hasher:   hasher,
	}
}

// dummyPasswordHash is verified when a username doesn't exist so that a
// failed lookup and a wrong password take the same time. It never matches
// any password.
//
//nolint:gosec // G101: intentionally fake hash, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// UserExists reports whether the username is taken.
func (s *Service) UserExists(ctx context.Context, username string) status.Status {
	count, err := s.accounts.CountByUsername(ctx, username)
	if err != nil {
		slog.Error("user existence check failed", "username", username, "error", err)
		return status.Fatal
	}
	if count > 0 {
		return status.RowExists
	}
	return status.OK
}

// CreateUser registers a new account with its companion presence row.
// Short-circuits with the existence check's status when the name is taken
// or the check fails. Both inserts run in one transaction.
func (s *Service) CreateUser(ctx context.Context, username, password string) status.Status {
	if existStatus := s.UserExists(ctx, username); existStatus != status.OK {
		return existStatus
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		slog.Error("password hashing failed", "username", username, "error", err)
		return status.Fatal
	}

	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.accounts.Create(ctx, username, passwordHash, SecurityPlayer); err != nil {
			return err
		}
		accountID, err := s.accounts.GetID(ctx, username)
		if err != nil {
			return err
		}
		return s.presence.Create(ctx, accountID)
	})
	if err != nil {
		st := status.FromError(err)
		if st == status.Fatal {
			slog.Error("account creation failed", "username", username, "error", err)
		}
		return st
	}
	return status.OK
}

// TryLogin authenticates the given credentials. The returned account's
// Status field carries the outcome: LoggedIn on success, LoginServerError on
// a storage fault, and LoginUnknown for both an absent account and a wrong
// password (deliberately indistinguishable).
func (s *Service) TryLogin(ctx context.Context, username, password string) *Account {
	account, lookupErr := s.accounts.GetByUsername(ctx, username)

	// Verify against a dummy hash when the account is absent so response
	// time does not reveal whether the username exists.
	targetHash := dummyPasswordHash
	exists := false
	if lookupErr == nil {
		targetHash = account.PasswordHash
		exists = true
	} else if !errors.Is(lookupErr, ErrNotFound) {
		slog.Error("account lookup failed", "username", username, "error", lookupErr)
		return &Account{Username: username, Status: LoginServerError}
	}

	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil && exists {
		slog.Error("password verification failed", "username", username, "error", verifyErr)
		return &Account{Username: username, Status: LoginServerError}
	}

	if !exists || !valid {
		return &Account{Username: username, Status: LoginUnknown}
	}

	account.Status = LoggedIn
	return account
}

// FetchAccountBySession retrieves the account holding the given session
// token. Outcome is carried in the account's Status field; an absent token
// yields LoginUnknown.
func (s *Service) FetchAccountBySession(ctx context.Context, sessionID uuid.UUID) *Account {
	account, err := s.accounts.GetBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &Account{Status: LoginUnknown}
		}
		slog.Error("session lookup failed", "error", err)
		return &Account{Status: LoginServerError}
	}
	return account
}

// UpdateSession establishes or clears the account's session token.
// Establishing generates a fresh token and writes it to both the store and
// the in-memory account; clearing nulls the token server-side only. On a
// write failure the account's Status is forced to LoginServerError and the
// in-memory token is left unset, so callers must check Status after every
// session update rather than inspect the token.
func (s *Service) UpdateSession(ctx context.Context, account *Account, isNewSession bool) {
	if account == nil {
		return
	}

	if !isNewSession {
		if err := s.accounts.SetSession(ctx, account.ID, nil); err != nil {
			slog.Error("session clear failed", "account_id", account.ID, "error", err)
			account.Status = LoginServerError
		}
		return
	}

	sessionID := uuid.New()
	if err := s.accounts.SetSession(ctx, account.ID, &sessionID); err != nil {
		slog.Error("session update failed", "account_id", account.ID, "error", err)
		account.Status = LoginServerError
		return
	}
	account.SessionID = &sessionID
}

// UpdateOnlineCharacter sets the presence row's active character and online
// flag. An empty character id clears both fields instead; the two branches
// issue different parameter sets, not an update-with-null shortcut.
func (s *Service) UpdateOnlineCharacter(ctx context.Context, accountID int32, characterID string) status.Status {
	if characterID == "" {
		if err := s.presence.ClearOnlineCharacter(ctx, accountID); err != nil {
			slog.Error("presence clear failed", "account_id", accountID, "error", err)
			return status.Fatal
		}
		return status.OK
	}

	id, err := uuid.Parse(characterID)
	if err != nil {
		slog.Error("invalid character id for presence update", "account_id", accountID, "character_id", characterID)
		return status.Fatal
	}
	if err := s.presence.SetOnlineCharacter(ctx, accountID, id); err != nil {
		slog.Error("presence update failed", "account_id", accountID, "error", err)
		return status.Fatal
	}
	return status.OK
}

// ResetSessions nulls every session token, reconciling stale state left by
// a previous crash. Intended to run once at server start.
func (s *Service) ResetSessions(ctx context.Context) status.Status {
	if err := s.accounts.ClearAllSessions(ctx); err != nil {
		slog.Error("session reset failed", "error", err)
		return status.Fatal
	}
	return status.OK
}

// ResetOnlineCharacters marks every account offline. Intended to run once
// at server start.
func (s *Service) ResetOnlineCharacters(ctx context.Context) status.Status {
	if err := s.presence.ClearAll(ctx); err != nil {
		slog.Error("presence reset failed", "error", err)
		return status.Fatal
	}
	return status.OK
}

// FetchRealms returns the realm list. A storage fault yields an empty list;
// clients treat an empty realmlist as "no realms available".
func (s *Service) FetchRealms(ctx context.Context) []Realm {
	realms, err := s.realms.List(ctx)
	if err != nil {
		slog.Error("realm list fetch failed", "error", err)
		return nil
	}
	return realms
}
