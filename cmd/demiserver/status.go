// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package main

import (
	"context"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/demigame/demiserver/internal/store"
)

const statusProbeTimeout = 10 * time.Second

// NewStatusCmd creates the status subcommand.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connectivity to the configured stores",
		Long:  `Probe both PostgreSQL stores and report whether each is reachable.`,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configFile, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), statusProbeTimeout)
	defer cancel()

	probe := func(name, dsn string) bool {
		pool, err := store.Open(ctx, dsn)
		if err != nil {
			cmd.Printf("%-16s unreachable: %v\n", name+":", err)
			return false
		}
		pool.Close()
		cmd.Printf("%-16s ok\n", name+":")
		return true
	}

	authOK := probe("auth store", cfg.AuthStore.DSN())
	characterOK := probe("character store", cfg.CharacterStore.DSN())

	if !authOK || !characterOK {
		return oops.Code("STORE_UNREACHABLE").Errorf("one or more stores are unreachable")
	}
	return nil
}
