// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

// Package gateway provides the TCP adapter for the game wire protocol.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/demigame/demiserver/internal/auth"
	"github.com/demigame/demiserver/internal/observability"
	"github.com/demigame/demiserver/internal/world"
)

// Server accepts game client connections and hands each one to a
// ConnectionHandler.
type Server struct {
	addr     string
	listener net.Listener
	auth     *auth.Service
	world    *world.Service
	metrics  *observability.Metrics
	mu       sync.RWMutex
}

// NewServer creates a new gateway server. metrics may be nil when the
// observability endpoint is disabled.
func NewServer(addr string, authService *auth.Service, worldService *world.Service, metrics *observability.Metrics) *Server {
	return &Server{
		addr:    addr,
		auth:    authService,
		world:   worldService,
		metrics: metrics,
	}
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run starts the server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	slog.Info("gateway server started", "addr", listener.Addr())

	go func() {
		<-ctx.Done()
		if err := listener.Close(); err != nil {
			slog.Debug("error closing listener", "error", err)
		}
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				slog.Error("Accept failed", "error", err)
				continue
			}
		}
		if s.metrics != nil {
			s.metrics.ConnectionsTotal.Inc()
		}
		handler := NewConnectionHandler(conn, s.auth, s.world, s.metrics)
		go handler.Handle(ctx)
	}
}
