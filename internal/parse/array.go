// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parse

import (
	"github.com/clargo/clargo/internal/clargoerr"
	"github.com/clargo/clargo/internal/schema"
)

// collectArray gathers one occurrence's worth of values for an array
// option: the inline value if one was given, else free tokens from args
// starting at idx, stopping at the next token that resolves to a known
// option name/cluster, the positional marker, or Limit, whichever comes
// first. It returns the normalized values and how many tokens (beyond the
// option's own name token) were consumed.
func collectArray(reg *schema.Registry, values *Values, def *schema.OptionDef, name string, args []string, idx int, inline string, hasInline bool) ([]any, int, error) {
	var raws []string
	consumed := 0

	if hasInline {
		raws = splitBySeparator(def, inline)
	} else {
		limit := def.Limit
		for idx+consumed < len(args) {
			tok := args[idx+consumed]
			if isBoundaryToken(reg, tok) {
				break
			}
			raws = append(raws, splitBySeparator(def, tok)...)
			consumed++
			if limit > 0 && len(raws) >= limit {
				break
			}
		}
	}

	if def.Limit > 0 && len(raws) > def.Limit {
		return nil, 0, clargoerr.TooManyValues(name, len(raws), def.Limit)
	}

	vals := make([]any, 0, len(raws))
	for _, raw := range raws {
		v, err := normalizeArrayElement(values, def, name, raw)
		if err != nil {
			return nil, 0, err
		}
		vals = append(vals, v)
	}
	return vals, consumed, nil
}

// splitBySeparator splits tok on def.Separator when set, else returns it
// as a single-element slice.
func splitBySeparator(def *schema.OptionDef, tok string) []string {
	if def.Separator == nil {
		return []string{tok}
	}
	return def.Separator.Split(tok, -1)
}

func normalizeArrayElement(values *Values, def *schema.OptionDef, name, raw string) (any, error) {
	var v any
	var err error
	switch def.Kind {
	case schema.KindNumberArray:
		v, err = normalizeNumber(name, raw, def)
	default:
		v, err = normalizeString(name, raw, def)
	}
	if err != nil {
		return nil, err
	}
	if def.ParseDelimited != nil {
		return def.ParseDelimited(values, name, raw)
	}
	return v, nil
}

// isBoundaryToken reports whether tok would be interpreted as the start
// of another option (a registered name, negation name, or short cluster)
// rather than a free value, so variadic collection knows where to stop.
func isBoundaryToken(reg *schema.Registry, tok string) bool {
	head, _, _ := splitInline(tok)
	if _, ok := reg.Lookup(head); ok {
		return true
	}
	if reg.IsNegationName(head) {
		return true
	}
	if reg.ShortClusterEnabled() && looksLikeClusterCandidate(tok) {
		if _, _, ok := resolveCluster(reg, tok); ok {
			return true
		}
	}
	return false
}
