// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package parse implements the argument-vector state machine: name
// resolution, per-kind dispatch, inline values, clusters, positional
// capture, requirement evaluation, default materialization, and
// shell-completion word enumeration.
package parse

// Values is the output of a parse: the populated record plus bookkeeping
// the requirement evaluator and callbacks need to distinguish an
// explicitly specified value from a materialized default.
type Values struct {
	specified map[string]any
	defaults  map[string]any
	unique    map[string]bool
	sub       map[string]*Values
	parseID   string

	warnings         []string
	warnedDeprecated map[string]bool
}

func newValues() *Values {
	return &Values{
		specified:        map[string]any{},
		defaults:         map[string]any{},
		unique:           map[string]bool{},
		sub:              map[string]*Values{},
		warnedDeprecated: map[string]bool{},
	}
}

// ParseID returns the correlation id (a ULID, see internal/host.NewParseID)
// minted for the invocation that produced these values, or reused from the
// context passed to ParseAsync when the caller had already minted one (see
// internal/logging.WithParseID).
func (v *Values) ParseID() string {
	return v.parseID
}

// Value implements require.Values and schema.ValueReader: it reports only
// explicitly specified values (by token, inline form, or env fallback),
// never a materialized default, so the requirement evaluator can tell
// "user gave it" apart from "fell back to its default".
func (v *Values) Value(id string) (any, bool) {
	val, ok := v.specified[id]
	return val, ok
}

// Unique implements require.Values.
func (v *Values) Unique(id string) bool {
	return v.unique[id]
}

// Get returns an option's final value: its specified value if one exists,
// else its materialized default, else (nil, false).
func (v *Values) Get(id string) (any, bool) {
	if val, ok := v.specified[id]; ok {
		return val, true
	}
	if val, ok := v.defaults[id]; ok {
		return val, true
	}
	return nil, false
}

// Sub returns the sub-values produced by a command option's nested parse.
func (v *Values) Sub(id string) (*Values, bool) {
	s, ok := v.sub[id]
	return s, ok
}

// Warnings returns deprecation warning lines accumulated during parsing,
// one per option name on first use of that name, in first-occurrence
// order; an option used under two of its names yields two lines.
func (v *Values) Warnings() []string {
	return v.warnings
}

func (v *Values) set(id string, val any) {
	v.specified[id] = val
}

func (v *Values) appendArray(id string, vals []any, unique bool) {
	v.unique[id] = unique
	existing, _ := v.specified[id].([]any)
	combined := append(existing, vals...)
	if unique {
		combined = dedupePreserveOrder(combined)
	}
	v.specified[id] = combined
}

func (v *Values) replaceArray(id string, vals []any, unique bool) {
	v.unique[id] = unique
	if unique {
		vals = dedupePreserveOrder(vals)
	}
	v.specified[id] = vals
}

func dedupePreserveOrder(vals []any) []any {
	seen := map[any]bool{}
	out := make([]any, 0, len(vals))
	for _, v := range vals {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func (v *Values) warnDeprecated(name string) {
	if v.warnedDeprecated[name] {
		return
	}
	v.warnedDeprecated[name] = true
	v.warnings = append(v.warnings, name+" is deprecated.")
}
