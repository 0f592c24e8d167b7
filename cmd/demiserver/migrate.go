// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package main

import (
	"strconv"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/demigame/demiserver/internal/store"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	var storeName string

	cmd := &cobra.Command{
		Use:   "migrate [up|down|steps N|version]",
		Short: "Run database migrations",
		Long: `Run database migrations against one of the PostgreSQL stores.
With no direction argument, all pending migrations are applied.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, storeName, args)
		},
	}

	cmd.Flags().StringVar(&storeName, "store", "", "store to migrate (auth or character)")
	//nolint:errcheck // flag is statically known to exist
	cmd.MarkFlagRequired("store")

	return cmd
}

func runMigrate(cmd *cobra.Command, storeName string, args []string) error {
	cfg, err := loadConfig(configFile, nil)
	if err != nil {
		return err
	}

	var dsn string
	switch storeName {
	case string(store.AuthStore):
		dsn = cfg.AuthStore.DSN()
	case string(store.CharacterStore):
		dsn = cfg.CharacterStore.DSN()
	default:
		return oops.Code("CONFIG_INVALID").Errorf("unknown store %q: must be auth or character", storeName)
	}

	migrator, err := store.NewMigrator(store.Store(storeName), dsn)
	if err != nil {
		return oops.Code("MIGRATION_FAILED").With("store", storeName).Wrap(err)
	}
	defer func() {
		//nolint:errcheck // close errors after a completed run are not actionable
		migrator.Close()
	}()

	direction := "up"
	if len(args) > 0 {
		direction = args[0]
	}

	switch direction {
	case "up":
		cmd.Println("Running migrations...")
		if err := migrator.Up(); err != nil {
			return oops.Code("MIGRATION_FAILED").With("store", storeName).Wrap(err)
		}
		cmd.Println("Migrations completed successfully")
	case "down":
		cmd.Println("Reverting all migrations...")
		if err := migrator.Down(); err != nil {
			return oops.Code("MIGRATION_FAILED").With("store", storeName).Wrap(err)
		}
		cmd.Println("Migrations reverted")
	case "steps":
		if len(args) < 2 {
			return oops.Code("CONFIG_INVALID").Errorf("steps requires a count, e.g. 'steps -1'")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return oops.Code("CONFIG_INVALID").Errorf("invalid step count %q", args[1])
		}
		if err := migrator.Steps(n); err != nil {
			return oops.Code("MIGRATION_FAILED").With("store", storeName).Wrap(err)
		}
		cmd.Printf("Applied %d migration step(s)\n", n)
	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			return oops.Code("MIGRATION_FAILED").With("store", storeName).Wrap(err)
		}
		cmd.Printf("Version: %d (dirty: %v)\n", version, dirty)
	default:
		return oops.Code("CONFIG_INVALID").Errorf("unknown direction %q: must be up, down, steps, or version", direction)
	}

	return nil
}
