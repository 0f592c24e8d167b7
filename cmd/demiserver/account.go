// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/demigame/demiserver/internal/auth"
	authpg "github.com/demigame/demiserver/internal/auth/postgres"
	"github.com/demigame/demiserver/internal/status"
	"github.com/demigame/demiserver/internal/store"
)

// NewAccountCmd creates the account subcommand group.
func NewAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage player accounts",
	}
	cmd.AddCommand(newAccountCreateCmd())
	return cmd
}

func newAccountCreateCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create a player account",
		Long: `Create a player account in the auth store. The password is hashed
before storage; the account starts at player security level.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile, nil)
			if err != nil {
				return err
			}

			pool, err := store.Open(cmd.Context(), cfg.AuthStore.DSN())
			if err != nil {
				return oops.Code("STORE_UNREACHABLE").Wrap(err)
			}
			defer pool.Close()

			authService := auth.NewService(
				authpg.NewAccountRepository(pool),
				authpg.NewPresenceRepository(pool),
				authpg.NewRealmRepository(pool),
				authpg.NewTransactor(pool),
				auth.NewArgon2Hasher(),
			)

			username := args[0]
			switch authService.CreateUser(cmd.Context(), username, password) {
			case status.OK:
				cmd.Printf("Account %q created\n", username)
				return nil
			case status.RowExists:
				return oops.Code("ACCOUNT_EXISTS").Errorf("account %q already exists", username)
			default:
				return oops.Code("ACCOUNT_CREATE_FAILED").Errorf("failed to create account %q", username)
			}
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "account password")
	//nolint:errcheck // flag is statically known to exist
	cmd.MarkFlagRequired("password")

	return cmd
}
