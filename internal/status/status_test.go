// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Status
	}{
		{
			name: "nil error is OK",
			err:  nil,
			want: OK,
		},
		{
			name: "unique violation is RowExists",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation},
			want: RowExists,
		},
		{
			name: "wrapped unique violation is RowExists",
			err:  fmt.Errorf("insert account: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation}),
			want: RowExists,
		},
		{
			name: "other pg error is Fatal",
			err:  &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation},
			want: Fatal,
		},
		{
			name: "generic error is Fatal",
			err:  errors.New("connection refused"),
			want: Fatal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromError(tt.err))
		})
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "OK", OK.String())
	assert.Equal(t, "RowExists", RowExists.String())
	assert.Equal(t, "Fatal", Fatal.String())
	assert.Equal(t, "Unknown", Status(99).String())
}
