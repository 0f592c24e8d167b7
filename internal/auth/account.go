// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

// Package auth provides account, session, and presence operations for the
// authentication store.
package auth

import (
	"github.com/google/uuid"
)

// AccountSecurity is the privilege level of an account.
type AccountSecurity int32

const (
	SecurityPlayer AccountSecurity = iota
	SecurityGameMaster
	SecurityAdmin
)

// LoginStatus is the transient outcome of a login attempt. It is never
// persisted.
type LoginStatus int

const (
	// LoginNone is the zero value: no login attempt has been classified yet.
	LoginNone LoginStatus = iota

	// LoggedIn means credentials were verified.
	LoggedIn

	// LoginUnknown covers both an absent account and a wrong password.
	// The conflation is deliberate: distinguishing them would let a client
	// enumerate usernames.
	LoginUnknown

	// LoginServerError means the storage layer failed; the caller must retry
	// the whole login flow, not resume it.
	LoginServerError

	// LoginAlreadyLoggedIn means the account already holds a live session.
	LoginAlreadyLoggedIn
)

// String returns the login status name.
func (s LoginStatus) String() string {
	switch s {
	case LoginNone:
		return "None"
	case LoggedIn:
		return "LoggedIn"
	case LoginUnknown:
		return "Unknown"
	case LoginServerError:
		return "ServerError"
	case LoginAlreadyLoggedIn:
		return "AlreadyLoggedIn"
	default:
		return "Invalid"
	}
}

// Account represents a player account in the authentication store.
type Account struct {
	ID           int32
	Username     string
	PasswordHash string
	Security     AccountSecurity
	SessionID    *uuid.UUID // set only while a session is live

	// Status is the outcome of the most recent login or session operation.
	// Transient; callers must check it after every session update.
	Status LoginStatus
}

// Realm is one entry of the realm list served to clients.
type Realm struct {
	ID   int32
	Name string
	Port int32
}
