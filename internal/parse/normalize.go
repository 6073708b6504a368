// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parse

import (
	"math"
	"strconv"
	"strings"

	"github.com/clargo/clargo/internal/clargoerr"
	"github.com/clargo/clargo/internal/schema"
)

// normalizeString applies trim/case, then the regex, glob and choices
// constraints, in that order, then ChoiceMap substitution, to a single
// string parameter.
func normalizeString(name, raw string, def *schema.OptionDef) (any, error) {
	s := raw
	if def.Trim {
		s = strings.TrimSpace(s)
	}
	switch def.Case {
	case schema.CaseLower:
		s = strings.ToLower(s)
	case schema.CaseUpper:
		s = strings.ToUpper(s)
	}

	if def.Regex != nil && !def.Regex.MatchString(s) {
		return nil, clargoerr.InvalidParam(name, raw, "Value does not match the required pattern.")
	}
	if def.Glob != nil && !def.Glob.Match(s) {
		return nil, clargoerr.InvalidParam(name, raw, "Value does not match the required pattern.")
	}
	if len(def.Choices) > 0 && !containsString(def.Choices, s) {
		return nil, clargoerr.InvalidParam(name, raw, "Possible values are "+choiceSet(def.Choices)+".")
	}
	if def.ChoiceMap != nil {
		mapped, ok := def.ChoiceMap[s]
		if !ok {
			return nil, clargoerr.InvalidParam(name, raw, "Possible values are "+choiceMapSet(def.ChoiceMap)+".")
		}
		return mapped, nil
	}
	return s, nil
}

// normalizeNumber parses raw as a float64, applies rounding, then the
// range constraint; Choices are not checked for numbers.
func normalizeNumber(name, raw string, def *schema.OptionDef) (any, error) {
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, clargoerr.InvalidParam(name, raw, "Value must be a number.")
	}
	n = applyRound(n, def.Round)

	if def.Range != nil {
		if def.Range.HasMin && n < def.Range.Min {
			return nil, clargoerr.InvalidParam(name, raw, "Value must be in the range "+rangeText(def.Range)+".")
		}
		if def.Range.HasMax && n > def.Range.Max {
			return nil, clargoerr.InvalidParam(name, raw, "Value must be in the range "+rangeText(def.Range)+".")
		}
	}
	return n, nil
}

func applyRound(n float64, mode schema.RoundMode) float64 {
	switch mode {
	case schema.RoundTrunc:
		return math.Trunc(n)
	case schema.RoundCeil:
		return math.Ceil(n)
	case schema.RoundFloor:
		return math.Floor(n)
	case schema.RoundNearest:
		return math.Round(n)
	default:
		return n
	}
}

func rangeText(r *schema.NumberRange) string {
	lo := "-Infinity"
	if r.HasMin {
		lo = strconv.FormatFloat(r.Min, 'g', -1, 64)
	}
	hi := "Infinity"
	if r.HasMax {
		hi = strconv.FormatFloat(r.Max, 'g', -1, 64)
	}
	return "[" + lo + ", " + hi + "]"
}

// normalizeBool parses raw against def's truthNames/falsityNames (defaults
// "true"/"false" when neither is set), honoring caseSensitive.
//
// Per the catalog's documented open question, a value matching neither
// list under caseSensitive:true is an InvalidParam rather than a
// best-effort truthy/falsy guess: guessing silently accepts typos as
// false, which is worse for a boolean flag than failing loudly.
func normalizeBool(name, raw string, def *schema.OptionDef) (any, error) {
	truth := def.TruthNames
	falsity := def.FalsityNames
	if len(truth) == 0 && len(falsity) == 0 {
		truth = []string{"true"}
		falsity = []string{"false"}
	}

	cmp := raw
	match := func(list []string) bool {
		for _, v := range list {
			candidate := v
			probe := cmp
			if !def.CaseSensitive {
				candidate = strings.ToLower(candidate)
				probe = strings.ToLower(probe)
			}
			if candidate == probe {
				return true
			}
		}
		return false
	}

	if match(truth) {
		return true, nil
	}
	if match(falsity) {
		return false, nil
	}
	return nil, clargoerr.InvalidParam(name, raw, "Possible values are "+choiceSet(append(append([]string{}, truth...), falsity...))+".")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func choiceSet(choices []string) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range choices {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		b.WriteString(c)
		b.WriteByte('\'')
	}
	b.WriteByte('}')
	return b.String()
}

func choiceMapSet(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return choiceSet(keys)
}
