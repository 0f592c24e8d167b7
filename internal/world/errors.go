// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package world

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrNoSpawnPoint is returned when a map has no spawn point under the
// requested name.
var ErrNoSpawnPoint = errors.New("no spawn point")
