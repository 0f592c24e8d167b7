// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package store

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMigrate stubs the golang-migrate surface.
type fakeMigrate struct {
	upErr      error
	downErr    error
	stepsErr   error
	versionErr error
	version    uint
	dirty      bool
	stepsGot   int
}

func (f *fakeMigrate) Up() error         { return f.upErr }
func (f *fakeMigrate) Down() error       { return f.downErr }
func (f *fakeMigrate) Steps(n int) error { f.stepsGot = n; return f.stepsErr }
func (f *fakeMigrate) Version() (uint, bool, error) {
	return f.version, f.dirty, f.versionErr
}
func (f *fakeMigrate) Close() (error, error) { return nil, nil }

func TestMigrator_Up(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{}}
		assert.NoError(t, m.Up())
	})

	t.Run("no change is not an error", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{upErr: migrate.ErrNoChange}}
		assert.NoError(t, m.Up())
	})

	t.Run("failure", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{upErr: errors.New("dirty database")}}
		err := m.Up()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dirty database")
	})
}

func TestMigrator_Down(t *testing.T) {
	t.Run("no change is not an error", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{downErr: migrate.ErrNoChange}}
		assert.NoError(t, m.Down())
	})

	t.Run("failure", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{downErr: errors.New("locked")}}
		assert.Error(t, m.Down())
	})
}

func TestMigrator_Steps(t *testing.T) {
	fake := &fakeMigrate{}
	m := &Migrator{m: fake}

	require.NoError(t, m.Steps(-2))
	assert.Equal(t, -2, fake.stepsGot)
}

func TestMigrator_Version(t *testing.T) {
	t.Run("reports version and dirty state", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{version: 3, dirty: true}}
		version, dirty, err := m.Version()
		require.NoError(t, err)
		assert.Equal(t, uint(3), version)
		assert.True(t, dirty)
	})

	t.Run("nil version means no migrations applied yet", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{versionErr: migrate.ErrNilVersion}}
		version, dirty, err := m.Version()
		require.NoError(t, err)
		assert.Equal(t, uint(0), version)
		assert.False(t, dirty)
	})
}

func TestNewMigrator_EmbeddedMigrations(t *testing.T) {
	// Both stores must have a complete, parseable embedded migration set.
	// The URL is never dialed at construction time by the source loader, so
	// a bad host is fine here; what this exercises is the embedded FS.
	for _, s := range []Store{AuthStore, CharacterStore} {
		t.Run(string(s), func(t *testing.T) {
			entries, err := migrationsFS.ReadDir("migrations/" + string(s))
			require.NoError(t, err)
			require.NotEmpty(t, entries)

			// Each up migration must have its down counterpart.
			ups, downs := 0, 0
			for _, e := range entries {
				switch {
				case len(e.Name()) > 7 && e.Name()[len(e.Name())-7:] == ".up.sql":
					ups++
				case len(e.Name()) > 9 && e.Name()[len(e.Name())-9:] == ".down.sql":
					downs++
				}
			}
			assert.Equal(t, ups, downs, "every up migration needs a down migration")
			assert.Positive(t, ups)
		})
	}
}
