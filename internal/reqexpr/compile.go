// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package reqexpr

import (
	"strconv"

	"github.com/clargo/clargo/internal/clargoerr"
	"github.com/clargo/clargo/internal/require"
)

// ValueKind tags the declared type of an option referenced by a
// requirement expression, used to decide how a bare (unquoted,
// non-numeric) literal token is interpreted.
type ValueKind int

const (
	KindString ValueKind = iota
	KindNumber
	KindBool
	KindOther
)

// Resolver looks up option ids and their declared value kind by name,
// implemented by schema.Registry; kept as a narrow interface here so this
// package doesn't import schema (schema imports reqexpr to compile
// declarative requires/requiredIf strings, so the dependency must run the
// other way).
type Resolver interface {
	ResolveID(name string) (id string, ok bool)
	ValueKind(id string) ValueKind
}

// Compile resolves every name referenced by expr through r and builds the
// equivalent require.Req tree.
func Compile(expr *Expr, r Resolver) (*require.Req, error) {
	return compileExpr(expr, r)
}

func compileExpr(e *Expr, r Resolver) (*require.Req, error) {
	parts := make([]*require.Req, len(e.Ands))
	for i, and := range e.Ands {
		p, err := compileAnd(and, r)
		if err != nil {
			return nil, err
		}
		parts[i] = p
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return require.One(parts...), nil
}

func compileAnd(a *AndExpr, r Resolver) (*require.Req, error) {
	parts := make([]*require.Req, len(a.Units))
	for i, u := range a.Units {
		p, err := compileUnary(u, r)
		if err != nil {
			return nil, err
		}
		parts[i] = p
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return require.All(parts...), nil
}

func compileUnary(u *Unary, r Resolver) (*require.Req, error) {
	atom, err := compileAtom(u.Atom, r)
	if err != nil {
		return nil, err
	}
	if u.Negated {
		return require.Not(atom), nil
	}
	return atom, nil
}

func compileAtom(a *Atom, r Resolver) (*require.Req, error) {
	if a.Group != nil {
		return compileExpr(a.Group, r)
	}
	return compileComparison(a.Comparison, r)
}

func compileComparison(c *Comparison, r Resolver) (*require.Req, error) {
	id, ok := r.ResolveID(c.Name)
	if !ok {
		return nil, clargoerr.SchemaError("requirement expression references unknown option %q", c.Name)
	}
	if c.Literal == nil {
		return require.NameOnly(id), nil
	}
	val, err := compileLiteral(c.Literal, r.ValueKind(id))
	if err != nil {
		return nil, err
	}
	return require.ValueMap(id, require.Equals(val)), nil
}

func compileLiteral(lit *Literal, kind ValueKind) (any, error) {
	if lit.Quoted != nil {
		return *lit.Quoted, nil
	}
	raw := *lit.Bare
	switch kind {
	case KindBool:
		switch raw {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, clargoerr.SchemaError("requirement literal %q is not a valid boolean", raw)
		}
	case KindNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, clargoerr.SchemaError("requirement literal %q is not a valid number", raw)
		}
		return n, nil
	default:
		return raw, nil
	}
}
