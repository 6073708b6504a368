// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package host isolates the capabilities the parsing core borrows from its
// process: reading environment variables, reading a byte stream (for the
// version option's package.json resolution), probing terminal width/color,
// and minting a correlation id for a single parse invocation. Every seam
// follows a "nil means default implementation" shape so callers can
// override one capability without stubbing the rest.
package host

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/oklog/ulid/v2"
)

// Env reads environment variables. Parsing never mutates the host process
// environment; callers needing COMP_LINE/NAME=VALUE overlays build a MapEnv
// layered on top of an OSEnv.
type Env interface {
	Lookup(name string) (string, bool)
}

// OSEnv reads from the real process environment.
type OSEnv struct{}

func (OSEnv) Lookup(name string) (string, bool) { return os.LookupEnv(name) }

// MapEnv is an in-memory overlay, optionally falling back to a parent Env
// for names it doesn't define itself.
type MapEnv struct {
	Values map[string]string
	Parent Env
}

func (m MapEnv) Lookup(name string) (string, bool) {
	if v, ok := m.Values[name]; ok {
		return v, true
	}
	if m.Parent != nil {
		return m.Parent.Lookup(name)
	}
	return "", false
}

// FileReader opens a path for reading, used by the version option's
// package.json walk. It is the only filesystem seam the core exposes.
type FileReader interface {
	Open(path string) (io.ReadCloser, error)
}

// OSFileReader opens real files.
type OSFileReader struct{}

func (OSFileReader) Open(path string) (io.ReadCloser, error) { return os.Open(path) }

// WidthProbe returns the output column width to wrap to; 0 means "no wrap".
type WidthProbe interface {
	Width() int
}

// FixedWidth always reports the same width, useful for tests and for
// non-interactive hosts (pipes, log sinks).
type FixedWidth int

func (f FixedWidth) Width() int { return int(f) }

// OSWidthProbe honors FORCE_WIDTH, then falls back to a TTY-appropriate
// default. The example pack has no terminal-size syscall wrapper,
// so an interactive width query is approximated: a TTY gets the
// conventional 80-column default, a non-TTY gets 0 (no wrap), matching the
// convention that piped output shouldn't be hard-wrapped for a human.
type OSWidthProbe struct {
	Env    Env
	Output *os.File
}

func (p OSWidthProbe) Width() int {
	env := p.Env
	if env == nil {
		env = OSEnv{}
	}
	if v, ok := env.Lookup("FORCE_WIDTH"); ok {
		if n, ok := parsePositiveInt(v); ok {
			return n
		}
	}
	out := p.Output
	if out == nil {
		out = os.Stdout
	}
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		return 80
	}
	return 0
}

func parsePositiveInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// ColorPolicy resolves whether ANSI styling is enabled, honoring
// NO_COLOR / FORCE_COLOR before falling back to a TTY probe.
func ColorPolicy(env Env, out *os.File) bool {
	if env == nil {
		env = OSEnv{}
	}
	if _, ok := env.Lookup("NO_COLOR"); ok {
		return false
	}
	if _, ok := env.Lookup("FORCE_COLOR"); ok {
		return true
	}
	if out == nil {
		out = os.Stdout
	}
	return isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())
}

// NewParseID mints a correlation id for one Parse/ParseAsync invocation.
func NewParseID() string {
	return ulid.Make().String()
}
