// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/demigame/demiserver/internal/auth"
	authpg "github.com/demigame/demiserver/internal/auth/postgres"
	"github.com/demigame/demiserver/internal/gateway"
	"github.com/demigame/demiserver/internal/observability"
	"github.com/demigame/demiserver/internal/status"
	"github.com/demigame/demiserver/internal/store"
	"github.com/demigame/demiserver/internal/world"
	worldpg "github.com/demigame/demiserver/internal/world/postgres"
)

const shutdownTimeout = 5 * time.Second

// NewServeCmd creates the serve subcommand with all flags configured.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the game account server",
		Long: `Start the game account server: the TCP gateway for the binary
packet protocol, backed by the auth and character PostgreSQL stores.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("gateway.addr", defaultGatewayAddr, "gateway TCP listen address")
	cmd.Flags().String("metrics.addr", defaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().String("log.format", defaultLogFormat, "log format (json or text)")

	return cmd
}

// runServe starts the server and blocks until a shutdown signal.
func runServe(ctx context.Context, cfg Config) error {
	if err := setupLogging(cfg.Log.Format); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	slog.Info("starting server",
		"gateway_addr", cfg.Gateway.Addr,
		"log_format", cfg.Log.Format,
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	authPool, err := store.Open(ctx, cfg.AuthStore.DSN())
	if err != nil {
		return fmt.Errorf("failed to open auth store: %w", err)
	}
	defer authPool.Close()

	characterPool, err := store.Open(ctx, cfg.CharacterStore.DSN())
	if err != nil {
		return fmt.Errorf("failed to open character store: %w", err)
	}
	defer characterPool.Close()

	slog.Info("connected to stores",
		"auth_db", cfg.AuthStore.Database,
		"character_db", cfg.CharacterStore.Database,
	)

	authService := auth.NewService(
		authpg.NewAccountRepository(authPool),
		authpg.NewPresenceRepository(authPool),
		authpg.NewRealmRepository(authPool),
		authpg.NewTransactor(authPool),
		auth.NewArgon2Hasher(),
	)

	spawns, err := world.NewStaticSpawns()
	if err != nil {
		return fmt.Errorf("failed to load spawn content: %w", err)
	}
	worldService := world.NewService(
		worldpg.NewCharacterRepository(characterPool),
		worldpg.NewSpawnRepository(characterPool),
		spawns,
		worldpg.NewTransactor(characterPool),
	)

	// Reconcile state left behind by an unclean shutdown: every session
	// token is revoked and every account marked offline.
	if authService.ResetSessions(ctx) != status.OK {
		return fmt.Errorf("failed to reset stale sessions")
	}
	if authService.ResetOnlineCharacters(ctx) != status.OK {
		return fmt.Errorf("failed to reset stale presence")
	}
	slog.Info("stale sessions and presence reset")

	// Start observability server if configured
	var (
		obsServer *observability.Server
		metrics   *observability.Metrics
	)
	if cfg.Metrics.Addr != "" {
		obsServer = observability.NewServer(cfg.Metrics.Addr, func() bool { return true })
		if _, err := obsServer.Start(); err != nil {
			return fmt.Errorf("failed to start observability server: %w", err)
		}
		metrics = obsServer.Metrics()
	}

	gatewayServer := gateway.NewServer(cfg.Gateway.Addr, authService, worldService, metrics)

	gatewayErrCh := make(chan error, 1)
	go func() {
		gatewayErrCh <- gatewayServer.Run(ctx)
	}()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	slog.Info("server ready")

	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig)
	case err := <-gatewayErrCh:
		if err != nil {
			slog.Error("gateway server failed", "error", err)
		}
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down")
	}

	// Graceful shutdown
	slog.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if obsServer != nil {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			slog.Warn("error stopping observability server", "error", err)
		}
	}

	slog.Info("shutdown complete")
	return nil
}
