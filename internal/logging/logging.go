// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

// Package logging configures the process-wide structured logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// serverHandler decorates every record with the server identity and, when
// the context carries a span, its trace ids.
type serverHandler struct {
	inner   slog.Handler
	service string
	version string
}

func (h *serverHandler) Handle(ctx context.Context, r slog.Record) error {
	attrs := []slog.Attr{
		slog.String("service", h.service),
		slog.String("version", h.version),
	}

	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		attrs = append(attrs,
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}

	r.AddAttrs(attrs...)
	return h.inner.Handle(ctx, r)
}

func (h *serverHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *serverHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &serverHandler{inner: h.inner.WithAttrs(attrs), service: h.service, version: h.version}
}

func (h *serverHandler) WithGroup(name string) slog.Handler {
	return &serverHandler{inner: h.inner.WithGroup(name), service: h.service, version: h.version}
}

// New builds a logger writing to w in the given format, "json" or "text".
// A nil w writes to os.Stderr.
func New(service, version, format string, w io.Writer) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var base slog.Handler
	switch format {
	case "json":
		base = slog.NewJSONHandler(w, opts)
	case "text":
		base = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'json' or 'text'", format)
	}

	return slog.New(&serverHandler{inner: base, service: service, version: version}), nil
}

// SetDefault installs a logger built by New as the process default.
func SetDefault(service, version, format string) error {
	logger, err := New(service, version, format, nil)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}
