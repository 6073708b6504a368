// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parse

import (
	"github.com/clargo/clargo/internal/clargoerr"
	"github.com/clargo/clargo/internal/schema"
)

// collectFunctionParams gathers def.ParamCount[0..1] tokens (min,max; max
// -1 means unbounded) starting at idx for a function-kind option, stopping
// early at a boundary token once the minimum has been met. It returns the
// raw parameter strings and how many tokens were consumed.
func collectFunctionParams(reg *schema.Registry, def *schema.OptionDef, name string, args []string, idx int) ([]string, int, error) {
	min, max := def.ParamCount[0], def.ParamCount[1]
	var params []string
	consumed := 0
	for idx+consumed < len(args) {
		if consumed >= min && max >= 0 && consumed >= max {
			break
		}
		tok := args[idx+consumed]
		if consumed >= min && isBoundaryToken(reg, tok) {
			break
		}
		params = append(params, tok)
		consumed++
	}
	if len(params) < min {
		return nil, 0, clargoerr.MissingParam(name)
	}
	return params, consumed, nil
}

// runFunction invokes def's callback with the collected parameters and
// returns its result; the caller adds the reported SkipCount to the tokens
// collectFunctionParams already consumed.
func runFunction(vals *Values, def *schema.OptionDef, name string, params []string, index int, comp bool) (schema.FunctionResult, error) {
	return def.Function.Invoke(vals, name, params, index, comp)
}

// registerSubCatalog resolves a command option's sub-catalog (direct or
// thunk form) and registers it, for parsing the remainder of the argument
// vector after the command token.
func registerSubCatalog(def *schema.OptionDef) (*schema.Registry, error) {
	sub := def.SubCatalog
	if sub == nil && def.SubCatalogThunk != nil {
		sub = def.SubCatalogThunk()
	}
	if sub == nil {
		return nil, nil
	}
	return schema.Register(sub)
}
