// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCharacterName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "Arthas", wantErr: false},
		{name: "minimum length", input: "Ab", wantErr: false},
		{name: "maximum length", input: "Abcdefghijkl", wantErr: false},
		{name: "accented letters", input: "Ragnarök", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "too short", input: "A", wantErr: true},
		{name: "too long", input: "Abcdefghijklm", wantErr: true},
		{name: "contains digit", input: "Arthas2", wantErr: true},
		{name: "contains space", input: "Ar thas", wantErr: true},
		{name: "contains punctuation", input: "Ar'thas", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCharacterName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var vErr *ValidationError
				assert.ErrorAs(t, err, &vErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeCharacterName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "aRTHAS", want: "Arthas"},
		{input: "ARTHAS", want: "Arthas"},
		{input: "arthas", want: "Arthas"},
		{input: "Arthas", want: "Arthas"},
		{input: "  arthas  ", want: "Arthas"},
		{input: "", want: ""},
		{input: "a", want: "A"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCharacterName(tt.input))
		})
	}
}
