// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package require implements the requirement tree: the small boolean
// expression language (over other options' presence and values) used by an
// option's requires/requiredIf constraints. The evaluator walks the tree
// directly against a Values reader rather than compiling it, since trees
// are small and built once per catalog.
package require

import (
	"context"
	"fmt"
)

// Kind tags a Req node's variant.
type Kind int

const (
	KindNameOnly Kind = iota
	KindValueMap
	KindAll
	KindOne
	KindNot
	KindPredicate
)

// ValueKind tags what a ValueMap entry demands of an option's value.
type ValueKind int

const (
	// ValuePresent demands the option was specified, with any value.
	ValuePresent ValueKind = iota
	// ValueAbsent demands the option was not specified.
	ValueAbsent
	// ValueEquals demands the option's value matches Wanted.
	ValueEquals
)

// RequiredValue is one entry of a ValueMap: what a referenced option's
// value must be for the requirement to hold.
type RequiredValue struct {
	Kind   ValueKind
	Wanted any
}

// Present requires the option to have been specified, with any value.
func Present() RequiredValue { return RequiredValue{Kind: ValuePresent} }

// Absent requires the option to have not been specified.
func Absent() RequiredValue { return RequiredValue{Kind: ValueAbsent} }

// Equals requires the option's value to equal v.
func Equals(v any) RequiredValue { return RequiredValue{Kind: ValueEquals, Wanted: v} }

// PredicateFunc is an opaque, user-supplied condition evaluated against the
// parsed values. Render, if non-empty, supplies the text used when the
// predicate participates in an error message; an empty Render falls back to
// a generic placeholder. EvalAsync is Eval's awaitable counterpart, for a
// condition that itself needs to suspend (a remote entitlement check); when
// set, EvalAsync is used instead of Eval and marks the owning Req (and any
// catalog referencing it) async-only.
type PredicateFunc struct {
	Eval      func(Values) bool
	EvalAsync func(ctx context.Context, v Values) (bool, error)
	Render    string
}

// Req is a node of the requirement tree: a boolean expression over other
// options' presence and values.
type Req struct {
	kind Kind

	// KindNameOnly / KindValueMap
	id    string
	value RequiredValue // only meaningful for KindValueMap

	// KindAll / KindOne
	children []*Req

	// KindNot
	child *Req

	// KindPredicate
	predicate PredicateFunc
}

// NameOnly builds a requirement that option id was specified, with any
// value.
func NameOnly(id string) *Req {
	return &Req{kind: KindNameOnly, id: id}
}

// ValueMap builds a requirement that option id's value matches v.
func ValueMap(id string, v RequiredValue) *Req {
	return &Req{kind: KindValueMap, id: id, value: v}
}

// All builds a conjunction; an empty All is vacuously true.
func All(children ...*Req) *Req {
	return &Req{kind: KindAll, children: children}
}

// One builds a disjunction; an empty One is vacuously false.
func One(children ...*Req) *Req {
	return &Req{kind: KindOne, children: children}
}

// Not builds a negation.
func Not(child *Req) *Req {
	return &Req{kind: KindNot, child: child}
}

// Predicate builds an opaque condition.
func Predicate(p PredicateFunc) *Req {
	return &Req{kind: KindPredicate, predicate: p}
}

// Kind reports the node's variant.
func (r *Req) Kind() Kind { return r.kind }

// ID reports the referenced option id for NameOnly/ValueMap nodes.
func (r *Req) ID() string { return r.id }

// Value reports the required value for a ValueMap node.
func (r *Req) Value() RequiredValue { return r.value }

// Children reports the operands of an All/One node.
func (r *Req) Children() []*Req { return r.children }

// Child reports the operand of a Not node.
func (r *Req) Child() *Req { return r.child }

// ReferencedIDs returns every option id this requirement reads, including
// those nested under All/One/Not, in a deterministic (first-seen) order.
// Predicate nodes contribute nothing: their reads are opaque.
func (r *Req) ReferencedIDs() []string {
	seen := map[string]bool{}
	var out []string
	var walk func(*Req)
	walk = func(n *Req) {
		if n == nil {
			return
		}
		switch n.kind {
		case KindNameOnly, KindValueMap:
			if !seen[n.id] {
				seen[n.id] = true
				out = append(out, n.id)
			}
		case KindAll, KindOne:
			for _, c := range n.children {
				walk(c)
			}
		case KindNot:
			walk(n.child)
		}
	}
	walk(r)
	return out
}

// IsAsync reports whether r (or any descendant) is a predicate needing
// EvalAsync rather than Eval, precomputed by Registry.HasAsync at register
// time so a synchronous Parse can reject before evaluation is attempted.
func (r *Req) IsAsync() bool {
	if r == nil {
		return false
	}
	switch r.kind {
	case KindPredicate:
		return r.predicate.EvalAsync != nil
	case KindAll, KindOne:
		for _, c := range r.children {
			if c.IsAsync() {
				return true
			}
		}
	case KindNot:
		return r.child.IsAsync()
	}
	return false
}

// String renders a Req using raw option ids, for debugging; error-message
// rendering uses Render with a NameResolver to substitute preferred names.
func (r *Req) String() string {
	return Render(r, identityResolver{})
}

type identityResolver struct{}

func (identityResolver) PreferredName(id string) string { return id }

var _ fmt.Stringer = (*Req)(nil)
