// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package schema normalizes a user-supplied option catalog into an indexed
// Registry: name and cluster-letter lookup tables plus a compiled
// requirement tree per option. It is the leaf component every later phase
// (tokenizer excepted) consumes.
package schema

import (
	"context"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/gobwas/glob"

	"github.com/clargo/clargo/internal/require"
)

// Kind tags an option's variant, dispatched on directly rather than via
// interface virtual calls: a small closed set of variants switched on
// by value, not an open hierarchy.
type Kind int

const (
	KindFlag Kind = iota
	KindBoolean
	KindString
	KindNumber
	KindStringArray
	KindNumberArray
	KindFunction
	KindCommand
	KindHelp
	KindVersion
)

// CaseMode normalizes a string value's case before constraint checking.
type CaseMode int

const (
	CaseNone CaseMode = iota
	CaseLower
	CaseUpper
)

// RoundMode normalizes a number value before range checking.
type RoundMode int

const (
	RoundNone RoundMode = iota
	RoundTrunc
	RoundCeil
	RoundFloor
	RoundNearest
)

// NumberRange bounds a number option's value; either end may be left at
// its zero value combined with HasMin/HasMax to mean unbounded.
type NumberRange struct {
	Min, Max       float64
	HasMin, HasMax bool
}

// ParseFunc replaces the normalized value of a single/array option; it
// receives the values gathered so far, the name the user typed, and the
// raw token, returning the final value. A non-nil error aborts the parse.
// Implementations that need to suspend (I/O, remote lookups) run it from
// ParseAsync instead of Parse; see internal/parse.
type ParseFunc func(values ValueReader, nameUsed, raw string) (any, error)

// CompleteFunc returns completion candidates for an option's parameter
// given the partial token typed so far.
type CompleteFunc func(values ValueReader, partial string) []string

// DefaultFunc computes a default value lazily, e.g. to read the current
// working directory or another option's resolved value.
type DefaultFunc func(values ValueReader) (any, error)

// AsyncParseFunc is ParseFunc's awaitable counterpart, for a parse/parseDelimited
// callback that performs I/O (a remote lookup, a file read). It only runs
// from ParseAsync; Parse statically rejects a catalog that declares one.
type AsyncParseFunc func(ctx context.Context, values ValueReader, nameUsed, raw string) (any, error)

// AsyncDefaultFunc is DefaultFunc's awaitable counterpart.
type AsyncDefaultFunc func(ctx context.Context, values ValueReader) (any, error)

// AsyncCompleteFunc is CompleteFunc's awaitable counterpart, for a
// completion source that queries a remote service (e.g. listing live
// cluster names) rather than a fixed or locally derived candidate list.
type AsyncCompleteFunc func(ctx context.Context, values ValueReader, partial string) ([]string, error)

// FunctionExec is the callback behind a function-kind option.
type FunctionExec struct {
	// Invoke runs the callback; Param is the collected parameter slice per
	// paramCount, Index is the position of the option's token in the
	// argument vector, Comp reports whether this invocation happens during
	// completion (side effects should be suppressed).
	Invoke func(values ValueReader, name string, param []string, index int, comp bool) (FunctionResult, error)
}

// FunctionResult is what a function option's callback returns: its value
// plus how many further tokens it consumed beyond its declared paramCount.
type FunctionResult struct {
	Value     any
	SkipCount int
}

// ValueReader is the read-only view of values-so-far handed to parse,
// default, and complete callbacks. internal/parse's Values type satisfies
// it; kept as an interface here so schema has no dependency on parse.
type ValueReader interface {
	Value(id string) (val any, specified bool)
}

// VersionDef configures a version-kind option: either a fixed literal or a
// resolve hook that reads package.json-equivalent metadata through the
// host's file reader.
type VersionDef struct {
	// Value is a fixed, non-empty version string (validated with semver).
	Value string
	// Resolve, when set, is invoked instead of Value; it returns a path
	// for the host to read and parse for a version field.
	Resolve func() (path string, parse func(contents []byte) (string, error))
}

// Validate checks VersionDef's own constraints (non-empty, valid semver
// when Value is used).
func (v VersionDef) Validate() error {
	if v.Resolve != nil {
		return nil
	}
	if v.Value == "" {
		return errVersionEmpty
	}
	if _, err := semver.NewVersion(v.Value); err != nil {
		return errVersionInvalid(v.Value, err)
	}
	return nil
}

// OptionDef is the user-facing configuration for one catalog entry. Only
// the fields relevant to Kind are consulted; register does not reject
// fields that are set for a Kind that ignores them.
type OptionDef struct {
	Kind Kind

	// Naming.
	Names          []string // ordered; may contain "" placeholders for column alignment
	PreferredName  string   // used in error text; defaults to first non-empty Name
	NegationNames  []string // flag only
	ClusterLetters []string // single-rune strings, short-option aliases

	// Positional marks this option as the owner of the positional marker
	// when non-nil. *Positional == "" is a schema error (an explicit but
	// empty marker); a nil Positional means the option is not positional.
	// Use DefaultPositionalMarker for the conventional "--" marker.
	Positional *string

	// Parameter shape.
	Separator  *regexp.Regexp // splits one token into many (array kinds)
	Append     bool           // array: concatenate across occurrences instead of replacing
	Unique     bool           // array: dedupe preserving first-seen order
	Limit      int            // array: max values, 0 = unbounded
	ParamCount [2]int         // function: [min,max]; max=-1 means unbounded

	// Value constraints (single/array of string/number).
	Regex   *regexp.Regexp
	Range   *NumberRange
	Glob    glob.Glob         // additional constraint: shell-style glob match
	Choices []string          // literal enumeration
	ChoiceMap map[string]any  // input literal -> substituted value

	// Normalization.
	Trim  bool
	Case  CaseMode
	Round RoundMode

	// Boolean-specific parsing.
	TruthNames    []string
	FalsityNames  []string
	CaseSensitive bool

	// Defaults & fallbacks.
	Default  any
	DefaultFn DefaultFunc
	Fallback any // value when given as bare "name=" with empty inline value
	EnvVar   string

	// Callbacks.
	Parse          ParseFunc
	ParseDelimited ParseFunc // applied per-element after Separator splits a token
	Complete       CompleteFunc
	Function       *FunctionExec

	// Awaitable counterparts of Parse/DefaultFn/Complete, run only from
	// ParseAsync/Complete's async path. Setting one of these marks the
	// owning catalog async-only; see Registry.HasAsync.
	ParseAsync     AsyncParseFunc
	DefaultFnAsync AsyncDefaultFunc
	CompleteAsync  AsyncCompleteFunc

	// Requirement tree, built programmatically (Requires/RequiredIf) or
	// compiled from a reqexpr string (RequiresExpr/RequiredIfExpr) at
	// register time. When both forms are set, the programmatic tree is
	// used and the string is ignored.
	Required      bool
	Requires      *require.Req
	RequiresExpr  string
	RequiredIf    *require.Req
	RequiredIfExpr string

	// Command sub-catalog (command kind only). Thunk form supports
	// self-referential catalogs (a command nested under itself); register
	// breaks cycles with a visited-by-identity set.
	SubCatalog      *Catalog
	SubCatalogThunk func() *Catalog

	// OnCommand runs once a command's sub-catalog has parsed successfully
	// (requirements satisfied, defaults materialized), receiving the
	// sub-parse's values; a non-nil error aborts the parse as if it had
	// occurred during sub-parsing itself. Optional: SubCatalog/
	// SubCatalogThunk alone is enough to collect sub-values under
	// Values.Sub(id) without a callback.
	OnCommand func(sub ValueReader) error

	// Help-option behaviors.
	UseNested bool
	UseFilter bool
	UseFormat bool
	Version   *VersionDef

	// Misc.
	Break      bool
	Deprecated bool
	Hide       bool
	Group      string
	Desc       string
	Link       string
}

// AcceptsValue reports whether the kind consumes at least one parameter.
func (k Kind) AcceptsValue() bool {
	switch k {
	case KindBoolean, KindString, KindNumber, KindStringArray, KindNumberArray:
		return true
	case KindFunction:
		return true // paramCount may still be 0; inline form still checked per def
	default:
		return false
	}
}

// IsArray reports whether the kind is variadic.
func (k Kind) IsArray() bool {
	return k == KindStringArray || k == KindNumberArray
}
