// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package reqexpr parses the textual requirement-expression form accepted
// by a catalog's requires/requiredIf fields as an alternative to building a
// require.Req programmatically, e.g. "-s = 'abc'", "-a and -b",
// "(-f1 or -f2)", "no -f2". Grammar and lexer use an ordered-rule lexer
// plus a disjunction-of-conjunctions participle grammar, specialized to
// option-presence/value expressions.
package reqexpr

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// exprLexer tokenizes a requirement expression. Order matters: keywords
// must be matched with word boundaries before the catch-all Name pattern,
// or a name like "android" would lex as "and" + "roid".
var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `'[^']*'`},
	{Name: "Number", Pattern: `-?[0-9]+(\.[0-9]+)?`},
	{Name: "KwAnd", Pattern: `\band\b`},
	{Name: "KwOr", Pattern: `\bor\b`},
	{Name: "KwNo", Pattern: `\bno\b`},
	{Name: "Punct", Pattern: `[()=]`},
	{Name: "Name", Pattern: `[^\s()='"]+`},
	{Name: "whitespace", Pattern: `\s+`},
})

// Expr is the root of a parsed requirement expression: a disjunction of
// conjunctions of (possibly negated) atoms.
type Expr struct {
	Pos  lexer.Position `parser:""`
	Ands []*AndExpr     `parser:"@@ (KwOr @@)*"`
}

// AndExpr is a conjunction of unary terms.
type AndExpr struct {
	Pos   lexer.Position `parser:""`
	Units []*Unary       `parser:"@@ (KwAnd @@)*"`
}

// Unary is an atom, optionally negated with the "no" keyword.
type Unary struct {
	Pos     lexer.Position `parser:""`
	Negated bool           `parser:"@KwNo?"`
	Atom    *Atom          `parser:"@@"`
}

// Atom is a parenthesized sub-expression or a name/name=literal comparison.
type Atom struct {
	Pos        lexer.Position `parser:"" `
	Group      *Expr          `parser:"  '(' @@ ')'"`
	Comparison *Comparison    `parser:"| @@"`
}

// Comparison is an option name, optionally followed by "= literal".
type Comparison struct {
	Pos     lexer.Position `parser:""`
	Name    string         `parser:"@Name"`
	Literal *Literal       `parser:"('=' @@)?"`
}

// Literal is a quoted string or a bare token (number, true/false, or an
// unquoted string), disambiguated at compile time by the target option's
// declared type.
type Literal struct {
	Pos    lexer.Position `parser:""`
	Quoted *string        `parser:"  @String"`
	Bare   *string        `parser:"| @(Number | Name)"`
}
