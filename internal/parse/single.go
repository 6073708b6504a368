// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parse

import (
	"context"

	"github.com/clargo/clargo/internal/clargoerr"
	"github.com/clargo/clargo/internal/schema"
)

// collectSingleValue resolves the one raw parameter a boolean/string/number
// option needs: its inline value if given, else the next token, provided
// that token isn't itself a boundary (another option or the positional
// marker). It returns the raw text and how many extra tokens (beyond the
// option's own name token) were consumed.
func collectSingleValue(reg *schema.Registry, name string, args []string, idx int, inline string, hasInline bool) (string, int, error) {
	if hasInline {
		return inline, 0, nil
	}
	if idx >= len(args) {
		return "", 0, clargoerr.MissingParam(name)
	}
	tok := args[idx]
	if isBoundaryToken(reg, tok) {
		return "", 0, clargoerr.MissingParam(name)
	}
	if marker, _, ok := reg.PositionalMarker(); ok && tok == marker {
		return "", 0, clargoerr.MissingParam(name)
	}
	return tok, 1, nil
}

// normalizeSingle dispatches to the kind-appropriate normalizer, then
// applies a ParseFunc override if one is declared.
func normalizeSingle(values *Values, def *schema.OptionDef, name, raw string) (any, error) {
	var (
		v   any
		err error
	)
	switch def.Kind {
	case schema.KindBoolean:
		v, err = normalizeBool(name, raw, def)
	case schema.KindNumber:
		v, err = normalizeNumber(name, raw, def)
	default:
		v, err = normalizeString(name, raw, def)
	}
	if err != nil {
		return nil, err
	}
	if def.Parse != nil {
		return def.Parse(values, name, raw)
	}
	return v, nil
}

// normalizeSingleAsync is normalizeSingle's async-aware counterpart. When
// def.ParseAsync is set it returns a pending job instead of invoking the
// callback inline, so dispatchNamed can batch it with other options'
// awaited work and commit results after the token loop completes, rather
// than blocking the loop on each option's own I/O in turn.
func normalizeSingleAsync(values *Values, def *schema.OptionDef, name, raw string) (any, *asyncJob, error) {
	var (
		v   any
		err error
	)
	switch def.Kind {
	case schema.KindBoolean:
		v, err = normalizeBool(name, raw, def)
	case schema.KindNumber:
		v, err = normalizeNumber(name, raw, def)
	default:
		v, err = normalizeString(name, raw, def)
	}
	if err != nil {
		return nil, nil, err
	}
	if def.ParseAsync != nil {
		fn := def.ParseAsync
		job := &asyncJob{run: func(ctx context.Context) (any, error) {
			return fn(ctx, values, name, raw)
		}}
		return v, job, nil
	}
	if def.Parse != nil {
		v2, err := def.Parse(values, name, raw)
		return v2, nil, err
	}
	return v, nil, nil
}
