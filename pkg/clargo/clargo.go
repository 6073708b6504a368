// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package clargo is the public surface of a schema-driven argument parser:
// declare a Catalog of OptionDefs, register it once with New, then Parse
// an argument vector (or Complete a partial command line) against it.
// Everything under internal/ is private to this module; this package
// re-exports the types a caller needs to build a Catalog without reaching
// into internal/schema directly.
package clargo

import (
	"context"

	"github.com/samber/oops"

	"github.com/clargo/clargo/internal/catalogdoc"
	"github.com/clargo/clargo/internal/clargoerr"
	"github.com/clargo/clargo/internal/host"
	"github.com/clargo/clargo/internal/message"
	"github.com/clargo/clargo/internal/parse"
	"github.com/clargo/clargo/internal/require"
	"github.com/clargo/clargo/internal/schema"
	"github.com/clargo/clargo/internal/tokenize"
)

// Catalog declares an option set: its options plus catalog-wide switches
// (short-letter clustering) and the static text help rendering uses.
type Catalog = schema.Catalog

// OptionDef is one catalog entry's full configuration.
type OptionDef = schema.OptionDef

// Kind tags an option's variant.
type Kind = schema.Kind

// Re-exported Kind values, one per variant OptionDef.Kind may hold.
const (
	KindFlag        = schema.KindFlag
	KindBoolean     = schema.KindBoolean
	KindString      = schema.KindString
	KindNumber      = schema.KindNumber
	KindStringArray = schema.KindStringArray
	KindNumberArray = schema.KindNumberArray
	KindFunction    = schema.KindFunction
	KindCommand     = schema.KindCommand
	KindHelp        = schema.KindHelp
	KindVersion     = schema.KindVersion
)

// CaseMode and RoundMode select string/number normalization.
type (
	CaseMode  = schema.CaseMode
	RoundMode = schema.RoundMode
)

const (
	CaseNone  = schema.CaseNone
	CaseLower = schema.CaseLower
	CaseUpper = schema.CaseUpper

	RoundNone    = schema.RoundNone
	RoundTrunc   = schema.RoundTrunc
	RoundCeil    = schema.RoundCeil
	RoundFloor   = schema.RoundFloor
	RoundNearest = schema.RoundNearest
)

// NumberRange, ParseFunc, CompleteFunc, DefaultFunc, FunctionExec,
// FunctionResult, ValueReader and VersionDef mirror their internal/schema
// counterparts; see there for field documentation.
type (
	NumberRange       = schema.NumberRange
	ParseFunc         = schema.ParseFunc
	CompleteFunc      = schema.CompleteFunc
	DefaultFunc       = schema.DefaultFunc
	AsyncParseFunc    = schema.AsyncParseFunc
	AsyncDefaultFunc  = schema.AsyncDefaultFunc
	AsyncCompleteFunc = schema.AsyncCompleteFunc
	FunctionExec      = schema.FunctionExec
	FunctionResult    = schema.FunctionResult
	ValueReader       = schema.ValueReader
	VersionDef        = schema.VersionDef
)

// DefaultPositionalMarker is the conventional "--" positional marker.
const DefaultPositionalMarker = schema.DefaultPositionalMarker

// Req is a requirement-tree node, built with NameOnly/ValueMap/All/One/Not
// or compiled from a textual RequiresExpr/RequiredIfExpr on the owning
// OptionDef.
type Req = require.Req

var (
	ReqNameOnly  = require.NameOnly
	ReqValueMap  = require.ValueMap
	ReqAll       = require.All
	ReqOne       = require.One
	ReqNot       = require.Not
	ReqPresent   = require.Present
	ReqAbsent    = require.Absent
	ReqEquals    = require.Equals
)

// Message is a rendered help/usage/error/completion payload.
type Message = message.Message

// Env and FileReader are the process capabilities a Parser borrows: env
// var lookups for EnvVar fallbacks, and file reads for version-option
// resolution. OSEnv{}/OSFileReader{} are the real-process defaults a
// Parser uses when no override is given.
type (
	Env        = host.Env
	FileReader = host.FileReader
)

var (
	OSEnv        = host.OSEnv{}
	OSFileReader = host.OSFileReader{}
)

// Opt configures a Parser at construction time.
type Opt = parse.Opt

func WithEnv(env Env) Opt               { return parse.WithEnv(env) }
func WithFileReader(r FileReader) Opt    { return parse.WithFileReader(r) }

// WithMaxConcurrentChecks bounds how many branches of an async requirement
// tree, or how many queued async Parse callbacks, run concurrently during
// ParseAsync; DefaultFn/DefaultFnAsync hooks are not bounded by it.
// Defaults to runtime.GOMAXPROCS(0).
func WithMaxConcurrentChecks(n int) Opt { return parse.WithMaxConcurrentChecks(n) }

// Outcome is a completed parse: the populated Values, plus a rendered
// Message when a help/version option (or any Break-marked option) ended
// the parse before reaching the end of the argument vector.
type Outcome = parse.Outcome

// Values is a parse's resolved option values, distinguishing values the
// user actually specified from materialized defaults.
type Values = parse.Values

// Parser validates a Catalog once and runs it against many argument
// vectors.
type Parser struct {
	inner *parse.Parser
}

// New validates catalog and returns a Parser for it. The returned error
// reports a defect in the catalog itself (duplicate names, a requirement
// referencing an unknown option, and so on), never anything about a
// specific argument vector.
func New(catalog *Catalog, opts ...Opt) (*Parser, error) {
	p, err := parse.New(catalog, opts...)
	if err != nil {
		return nil, err
	}
	return &Parser{inner: p}, nil
}

// LoadCatalog reads a catalog declared as a YAML or JSON document (see
// internal/catalogdoc) instead of Go struct literals, for a CLI whose
// option set is generated or shared with another tool. attachCallbacks, if
// non-nil, runs against the decoded Catalog before registration, letting
// the caller wire Parse/Complete/DefaultFn/Function hooks onto the options
// a document can't express — match them up by Catalog.Options index or by
// OptionDef.PreferredName/Names.
func LoadCatalog(path string, attachCallbacks func(*Catalog), opts ...Opt) (*Parser, error) {
	cat, err := catalogdoc.LoadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	if attachCallbacks != nil {
		attachCallbacks(cat)
	}
	return New(cat, opts...)
}

// Parse runs the parser over args (conventionally os.Args[1:]).
func (p *Parser) Parse(args []string) (*Outcome, error) {
	return p.inner.Parse(args)
}

// ParseAsync is Parse's concurrent-default-materialization counterpart,
// for catalogs with DefaultFn hooks that perform I/O.
func (p *Parser) ParseAsync(ctx context.Context, args []string) (*Outcome, error) {
	return p.inner.ParseAsync(ctx, args)
}

// ParseCommandLine tokenizes a raw command line (as a shell would present
// it, program name included) and parses the result. It is a convenience
// for callers that have a single string rather than an already-split
// argv, e.g. a REPL or a recorded audit line.
func (p *Parser) ParseCommandLine(line string) (*Outcome, error) {
	res := tokenize.Tokenize(line, nil)
	return p.Parse(res.Args)
}

// Complete returns shell-completion candidates for a raw command line and
// a cursor position (a rune offset into line, as shells report via
// COMP_POINT). Suitable for wiring directly into a completion script.
func (p *Parser) Complete(line string, cursor int) Message {
	res := tokenize.Tokenize(line, &cursor)
	idx := 0
	prefix := ""
	if res.CursorIndex != nil {
		idx = *res.CursorIndex
	}
	if res.CursorPrefix != nil {
		prefix = *res.CursorPrefix
	}
	return p.inner.Complete(res.Args, idx, prefix)
}

// CompleteAsync is Complete's awaitable counterpart, awaiting an option's
// CompleteAsync callback (e.g. one that queries a remote service for
// candidates) instead of skipping it.
func (p *Parser) CompleteAsync(ctx context.Context, line string, cursor int) Message {
	res := tokenize.Tokenize(line, &cursor)
	idx := 0
	prefix := ""
	if res.CursorIndex != nil {
		idx = *res.CursorIndex
	}
	if res.CursorPrefix != nil {
		prefix = *res.CursorPrefix
	}
	return p.inner.CompleteAsync(ctx, res.Args, idx, prefix)
}

// IsSchemaError reports whether err was raised while validating a Catalog
// (as opposed to while parsing an argument vector).
func IsSchemaError(err error) bool {
	oopsErr, ok := oops.AsOops(err)
	return ok && oopsErr.Code() == clargoerr.CodeSchemaError
}
