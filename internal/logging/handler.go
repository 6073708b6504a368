// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package logging provides structured logging that threads a per-parse
// correlation id (see internal/host.NewParseID) into every record.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type parseIDKey struct{}

// WithParseID returns a context carrying id, picked up by Handle.
func WithParseID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, parseIDKey{}, id)
}

// ParseIDFromContext returns the id stashed by WithParseID, if any.
func ParseIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(parseIDKey{}).(string)
	return id, ok
}

// idHandler wraps a slog.Handler to add the invocation's parse_id.
type idHandler struct {
	handler slog.Handler
	service string
	version string
}

// Handle adds parse_id context to the log record.
func (h *idHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(
		slog.String("service", h.service),
		slog.String("version", h.version),
	)

	if id, ok := ParseIDFromContext(ctx); ok {
		r.AddAttrs(slog.String("parse_id", id))
	}

	//nolint:wrapcheck // Handler interface requires unwrapped error passthrough
	return h.handler.Handle(ctx, r)
}

// Enabled returns true if the level is enabled.
func (h *idHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs returns a new handler with the given attributes.
func (h *idHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &idHandler{
		handler: h.handler.WithAttrs(attrs),
		service: h.service,
		version: h.version,
	}
}

// WithGroup returns a new handler with the given group.
func (h *idHandler) WithGroup(name string) slog.Handler {
	return &idHandler{
		handler: h.handler.WithGroup(name),
		service: h.service,
		version: h.version,
	}
}

// Setup creates a configured slog.Logger.
// format: "json" or "text" (defaults to "json" if empty)
// If w is nil, writes to os.Stderr.
func Setup(service, version, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	var baseHandler slog.Handler
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	if format == "text" {
		baseHandler = slog.NewTextHandler(w, opts)
	} else {
		baseHandler = slog.NewJSONHandler(w, opts)
	}

	handler := &idHandler{
		handler: baseHandler,
		service: service,
		version: version,
	}

	return slog.New(handler)
}

// SetDefault sets up and configures the default logger.
func SetDefault(service, version, format string) {
	logger := Setup(service, version, format, nil)
	slog.SetDefault(logger)
}
