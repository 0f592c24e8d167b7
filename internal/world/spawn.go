// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package world

import (
	_ "embed"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// SpawnPoint is a named coordinate pair on a map.
type SpawnPoint struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// PlayerSpawnName is the spawn point new characters are seeded from.
const PlayerSpawnName = "Player"

// SpawnProvider resolves named spawn points on a map. The world content
// pipeline supplies the real implementation; StaticSpawns carries the
// shipped defaults.
type SpawnProvider interface {
	SpawnPoint(mapID int32, name string) (SpawnPoint, error)
}

//go:embed content/spawns.yaml
var spawnContent []byte

// spawnMap is one map entry in the spawn content file.
type spawnMap struct {
	ID     int32                 `yaml:"id"`
	Spawns map[string]SpawnPoint `yaml:"spawns"`
}

// StaticSpawns is a SpawnProvider backed by embedded content.
type StaticSpawns struct {
	maps map[int32]map[string]SpawnPoint
}

// NewStaticSpawns parses the embedded spawn content.
func NewStaticSpawns() (*StaticSpawns, error) {
	return newStaticSpawns(spawnContent)
}

func newStaticSpawns(content []byte) (*StaticSpawns, error) {
	var doc struct {
		Maps []spawnMap `yaml:"maps"`
	}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, oops.Code("SPAWN_CONTENT_INVALID").Wrap(err)
	}

	maps := make(map[int32]map[string]SpawnPoint, len(doc.Maps))
	for _, m := range doc.Maps {
		maps[m.ID] = m.Spawns
	}
	return &StaticSpawns{maps: maps}, nil
}

// SpawnPoint returns the named spawn point for the map.
func (s *StaticSpawns) SpawnPoint(mapID int32, name string) (SpawnPoint, error) {
	spawns, ok := s.maps[mapID]
	if !ok {
		return SpawnPoint{}, oops.Code("SPAWN_MAP_UNKNOWN").
			With("map_id", mapID).
			Wrap(ErrNoSpawnPoint)
	}
	point, ok := spawns[name]
	if !ok {
		return SpawnPoint{}, oops.Code("SPAWN_POINT_UNKNOWN").
			With("map_id", mapID).
			With("name", name).
			Wrap(ErrNoSpawnPoint)
	}
	return point, nil
}

// Compile-time interface check.
var _ SpawnProvider = (*StaticSpawns)(nil)
