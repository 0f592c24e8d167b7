// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

// Package status defines the outcome taxonomy shared by every repository
// operation. Callers branch on a Status value instead of inspecting raw
// driver errors, which never cross this boundary.
package status

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Status classifies the outcome of a repository operation.
type Status int

const (
	// OK means the operation completed successfully.
	OK Status = iota

	// RowExists means a conflicting row already exists. This is an expected
	// conflict, not an error; callers must distinguish it from OK.
	RowExists

	// Fatal means a storage or connectivity failure. No partial-success
	// guarantee beyond what each operation documents.
	Fatal
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case RowExists:
		return "RowExists"
	case Fatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}

// FromError classifies an error from the storage layer. A nil error is OK.
// A unique-constraint violation is RowExists: the schema-level constraint is
// what closes the existence-check-then-insert race, so a lost race surfaces
// the same way a failed existence check does. Everything else is Fatal.
func FromError(err error) Status {
	if err == nil {
		return OK
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return RowExists
	}
	return Fatal
}
