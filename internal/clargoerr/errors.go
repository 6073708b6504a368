// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package clargoerr defines the error taxonomy shared by the schema
// registry, parser, and requirement evaluator: every failure is tagged
// with a stable oops.Code rather than relying on sentinel values or type
// switches, so callers can branch on Code() instead of string-matching.
package clargoerr

import "github.com/samber/oops"

// Error codes, one per error kind the parser can surface. Callers that need
// to branch on kind use oops.AsOops(err).Code() rather than errors.Is.
const (
	CodeSchemaError          = "SCHEMA_ERROR"
	CodeUnknownName          = "UNKNOWN_NAME"
	CodeMissingParam         = "MISSING_PARAM"
	CodeNoInlineAllowed      = "NO_INLINE_ALLOWED"
	CodeInvalidParam         = "INVALID_PARAM"
	CodeTooManyValues        = "TOO_MANY_VALUES"
	CodeRequiredAbsent       = "REQUIRED_ABSENT"
	CodeRequiresUnsatisfied  = "REQUIRES_UNSATISFIED"
	CodeVersionResolveError  = "VERSION_RESOLVE_ERROR"
	CodeClusterPositionError = "CLUSTER_POSITION_ERROR"
	CodeAsyncRequired        = "ASYNC_REQUIRED"
)

// SchemaError reports a defect in the catalog itself, detected during
// registration rather than during parsing.
func SchemaError(format string, args ...any) error {
	return oops.Code(CodeSchemaError).Errorf(format, args...)
}

// UnknownName reports a token that resolved to no registered option.
func UnknownName(token string, suggestions []string) error {
	b := oops.Code(CodeUnknownName)
	if len(suggestions) > 0 {
		b = b.With("suggestions", suggestions)
	}
	return b.With("token", token).Errorf("Unknown option: %s", token)
}

// MissingParam reports a value-taking option with no following token.
func MissingParam(name string) error {
	return oops.Code(CodeMissingParam).With("name", name).Errorf("Option %s expects a parameter.", name)
}

// NoInlineAllowed reports an inline name=value form on a niladic option.
func NoInlineAllowed(name string) error {
	return oops.Code(CodeNoInlineAllowed).With("name", name).Errorf("Option %s does not accept an inline value.", name)
}

// InvalidParam reports a value that failed a constraint (regex, range,
// choices, or boolean truth/falsity names).
func InvalidParam(name, raw, reason string) error {
	return oops.Code(CodeInvalidParam).
		With("name", name).
		With("raw", raw).
		Errorf("Invalid parameter to %s: %s. %s", name, raw, reason)
}

// TooManyValues reports an array option that collected more values than its
// limit allows.
func TooManyValues(name string, got, limit int) error {
	return oops.Code(CodeTooManyValues).
		With("name", name).
		With("count", got).
		With("limit", limit).
		Errorf("Option %s has too many values (%d). Should have at most %d.", name, got, limit)
}

// RequiredAbsent reports a required (or conditionally required) option that
// was never specified.
func RequiredAbsent(name string) error {
	return oops.Code(CodeRequiredAbsent).With("name", name).Errorf("Option %s is required.", name)
}

// RequiresUnsatisfied reports a specified option whose requires expression
// did not hold against the parsed values, rendered is the canonical textual
// form of the requirement (e.g. "-s = 'abc'").
func RequiresUnsatisfied(name, rendered string) error {
	return oops.Code(CodeRequiresUnsatisfied).
		With("name", name).
		With("requirement", rendered).
		Errorf("Option %s requires %s.", name, rendered)
}

// VersionResolveError reports a version option unable to resolve its
// package.json via the injected file reader.
func VersionResolveError(path string) error {
	return oops.Code(CodeVersionResolveError).With("path", path).Errorf("Unable to resolve version from %s.", path)
}

// AsyncRequired reports that Parse was called against a catalog declaring
// an awaitable parse/default/complete callback or predicate; ParseAsync
// must be used instead.
func AsyncRequired() error {
	return oops.Code(CodeAsyncRequired).
		Errorf("This catalog declares an async callback or predicate; use ParseAsync instead of Parse.")
}

// WithParseID stamps err's oops context with the invocation's correlation
// id, so a caller logging it (e.g. pkg/errutil.LogError) or rendering it to
// a user sees the same id the parse's Values carries. A nil err passes
// through unchanged.
func WithParseID(err error, id string) error {
	if err == nil || id == "" {
		return err
	}
	return oops.With("parse_id", id).Wrap(err)
}

// ClusterPositionError reports a variadic-capable option letter used
// non-terminally inside a short-option cluster.
func ClusterPositionError(letter rune, cluster string) error {
	return oops.Code(CodeClusterPositionError).
		With("letter", string(letter)).
		With("cluster", cluster).
		Errorf("Option -%c in cluster -%s must be last; it accepts a parameter.", letter, cluster)
}
