// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSpawns_EmbeddedContent(t *testing.T) {
	spawns, err := NewStaticSpawns()
	require.NoError(t, err, "embedded spawn content must parse")

	point, err := spawns.SpawnPoint(1, PlayerSpawnName)
	require.NoError(t, err)
	assert.Equal(t, float32(1264), point.X)
	assert.Equal(t, float32(816), point.Y)

	point, err = spawns.SpawnPoint(2, PlayerSpawnName)
	require.NoError(t, err)
	assert.Equal(t, float32(448), point.X)
	assert.Equal(t, float32(320), point.Y)
}

func TestStaticSpawns_UnknownLookups(t *testing.T) {
	spawns, err := NewStaticSpawns()
	require.NoError(t, err)

	_, err = spawns.SpawnPoint(99, PlayerSpawnName)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSpawnPoint)

	_, err = spawns.SpawnPoint(1, "Boss")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSpawnPoint)
}

func TestStaticSpawns_InvalidContent(t *testing.T) {
	_, err := newStaticSpawns([]byte("maps: [not a map"))
	require.Error(t, err)
}
