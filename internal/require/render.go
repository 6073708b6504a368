// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package require

import (
	"fmt"
	"strings"
)

// NameResolver maps an option id to the preferred name used in error text
// (e.g. "-f" rather than an internal id like "opt_3").
type NameResolver interface {
	PreferredName(id string) string
}

// Render produces the canonical textual form of req used in
// RequiresUnsatisfied/RequiredAbsent messages, e.g.:
//
//	NameOnly("s")                    -> "-s"
//	ValueMap("s", Equals("abc"))     -> "-s = 'abc'"
//	All(NameOnly("a"), NameOnly("b")) -> "-a and -b"
//	One(NameOnly("f1"), NameOnly("f2")) -> "(-f1 or -f2)"
//	Not(NameOnly("f2"))               -> "no -f2"
func Render(req *Req, names NameResolver) string {
	if req == nil {
		return ""
	}
	switch req.kind {
	case KindNameOnly:
		return names.PreferredName(req.id)

	case KindValueMap:
		return renderValueMap(req, names)

	case KindAll:
		return strings.Join(renderAll(req.children, names), " and ")

	case KindOne:
		parts := renderAll(req.children, names)
		if len(parts) == 1 {
			return parts[0]
		}
		return "(" + strings.Join(parts, " or ") + ")"

	case KindNot:
		return renderNot(req.child, names)

	case KindPredicate:
		if req.predicate.Render != "" {
			return req.predicate.Render
		}
		return "a custom condition"

	default:
		return ""
	}
}

func renderAll(children []*Req, names NameResolver) []string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = Render(c, names)
	}
	return parts
}

func renderValueMap(req *Req, names NameResolver) string {
	name := names.PreferredName(req.id)
	switch req.value.Kind {
	case ValuePresent:
		return name
	case ValueAbsent:
		return "no " + name
	case ValueEquals:
		return fmt.Sprintf("%s = %s", name, renderLiteral(req.value.Wanted))
	default:
		return name
	}
}

// renderNot special-cases negating a plain presence check as "no <name>"
// (spec example: "Option -f requires no -f2."); any other negated form
// falls back to a generic "not (...)".
func renderNot(child *Req, names NameResolver) string {
	if child != nil && child.kind == KindNameOnly {
		return "no " + names.PreferredName(child.id)
	}
	return "not (" + Render(child, names) + ")"
}

func renderLiteral(v any) string {
	switch s := v.(type) {
	case string:
		return "'" + s + "'"
	case bool, int, int64, float64, nil:
		return fmt.Sprint(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}
