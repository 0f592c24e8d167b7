// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package world

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Character name length constraints.
const (
	MinCharacterNameLength = 2
	MaxCharacterNameLength = 12
)

// characterNameRegex matches names made of letters only, no spaces.
var characterNameRegex = regexp.MustCompile(`^[\p{L}]+$`)

// ValidationError describes a failed field validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// ValidateCharacterName checks that a character name is valid: letters only,
// within the length bounds.
func ValidateCharacterName(name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	if len(name) < MinCharacterNameLength {
		return &ValidationError{Field: "name", Message: fmt.Sprintf("must be at least %d characters", MinCharacterNameLength)}
	}
	if len(name) > MaxCharacterNameLength {
		return &ValidationError{Field: "name", Message: fmt.Sprintf("must be at most %d characters", MaxCharacterNameLength)}
	}
	if !characterNameRegex.MatchString(name) {
		return &ValidationError{Field: "name", Message: "must contain letters only"}
	}
	return nil
}

// NormalizeCharacterName capitalizes the first letter and lowercases the
// rest. Names are stored and matched in this form.
//
// Example: "aRTHAS" -> "Arthas".
func NormalizeCharacterName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	runes := []rune(strings.ToLower(name))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
