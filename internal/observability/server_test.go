// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package observability

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func startTestServer(t *testing.T, checker ReadinessChecker) *Server {
	t.Helper()

	server := NewServer("127.0.0.1:0", checker)
	if _, err := server.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Stop(ctx)
	})
	return server
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("failed to GET %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestServer_Metrics(t *testing.T) {
	server := startTestServer(t, func() bool { return true })

	if server.Addr() == "" {
		t.Fatal("server address is empty")
	}

	code, body := get(t, "http://"+server.Addr()+"/metrics")
	if code != http.StatusOK {
		t.Errorf("expected status 200, got %d", code)
	}
	if !strings.Contains(body, "# HELP") || !strings.Contains(body, "# TYPE") {
		t.Error("expected Prometheus exposition format")
	}
	if !strings.Contains(body, "go_") {
		t.Error("expected go_* metrics")
	}
	if !strings.Contains(body, "process_") {
		t.Error("expected process_* metrics")
	}

	// Counters with labels appear only after first use
	metrics := server.Metrics()
	metrics.ConnectionsTotal.Inc()
	metrics.PacketsTotal.WithLabelValues("0x01").Inc()
	metrics.LoginsTotal.WithLabelValues("LoggedIn").Inc()
	metrics.CharacterOpsTotal.WithLabelValues("create", "success").Inc()

	_, body = get(t, "http://"+server.Addr()+"/metrics")
	for _, metric := range []string{
		"demiserver_connections_total",
		"demiserver_packets_total",
		"demiserver_logins_total",
		"demiserver_character_ops_total",
	} {
		if !strings.Contains(body, metric) {
			t.Errorf("expected %s metric", metric)
		}
	}
}

func TestServer_LivenessReturns200(t *testing.T) {
	server := startTestServer(t, nil)

	code, body := get(t, "http://"+server.Addr()+"/healthz/liveness")
	if code != http.StatusOK {
		t.Errorf("expected status 200, got %d", code)
	}
	if strings.TrimSpace(body) != "ok" {
		t.Errorf("expected body 'ok', got %q", body)
	}
}

func TestServer_Readiness(t *testing.T) {
	tests := []struct {
		name     string
		checker  ReadinessChecker
		wantCode int
		wantBody string
	}{
		{"ready", func() bool { return true }, http.StatusOK, "ok"},
		{"not ready", func() bool { return false }, http.StatusServiceUnavailable, "not ready"},
		{"nil checker defaults to ready", nil, http.StatusOK, "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := startTestServer(t, tt.checker)

			code, body := get(t, "http://"+server.Addr()+"/healthz/readiness")
			if code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, code)
			}
			if strings.TrimSpace(body) != tt.wantBody {
				t.Errorf("expected body %q, got %q", tt.wantBody, body)
			}
		})
	}
}

func TestServer_DoubleStartFails(t *testing.T) {
	server := startTestServer(t, nil)

	if _, err := server.Start(); err == nil {
		t.Error("expected second Start to fail")
	}
}

func TestServer_StopIsIdempotent(t *testing.T) {
	server := NewServer("127.0.0.1:0", nil)
	if _, err := server.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		t.Fatalf("first Stop failed: %v", err)
	}
	if err := server.Stop(ctx); err != nil {
		t.Errorf("second Stop failed: %v", err)
	}
}
