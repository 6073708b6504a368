// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package reqexpr

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/samber/oops"

	"github.com/clargo/clargo/internal/clargoerr"
)

var parser *participle.Parser[Expr]

func init() {
	var err error
	parser, err = NewParser()
	if err != nil {
		panic(fmt.Sprintf("failed to build requirement-expression parser: %v", err))
	}
}

// NewParser builds the participle parser instance; exported so callers that
// need a fresh parser (e.g. to vary lexer options in tests) don't have to
// reach into the package-level singleton.
func NewParser() (*participle.Parser[Expr], error) {
	return participle.Build[Expr](
		participle.Lexer(exprLexer),
		participle.Unquote("String"),
		participle.UseLookahead(participle.MaxLookahead),
	)
}

// Parse parses a requirement expression into its AST. Syntax errors are
// wrapped as SchemaError, since an unparsable requires/requiredIf string is
// a catalog defect rather than a runtime parse failure.
func Parse(text string) (*Expr, error) {
	expr, err := parser.ParseString("", text)
	if err != nil {
		return nil, oops.Code(clargoerr.CodeSchemaError).Wrapf(err, "parsing requirement expression %q", text)
	}
	return expr, nil
}
