// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package auth

import "errors"

// ErrNotFound is returned when no account matches the lookup, whether by
// username or session token.
var ErrNotFound = errors.New("account not found")
