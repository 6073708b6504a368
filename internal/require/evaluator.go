// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package require

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Eval evaluates req against vals. Dispatch mirrors the ABAC DSL
// evaluator's switch-on-variant shape: each Kind has its own short-circuit
// rule, with All/One short-circuiting on the first failing/succeeding
// child respectively.
func Eval(req *Req, vals Values) bool {
	if req == nil {
		return true
	}
	switch req.kind {
	case KindNameOnly:
		_, specified := vals.Value(req.id)
		return specified

	case KindValueMap:
		return evalValueMap(req, vals)

	case KindAll:
		for _, c := range req.children {
			if !Eval(c, vals) {
				return false
			}
		}
		return true

	case KindOne:
		for _, c := range req.children {
			if Eval(c, vals) {
				return true
			}
		}
		return false

	case KindNot:
		return !Eval(req.child, vals)

	case KindPredicate:
		if req.predicate.Eval == nil {
			return false
		}
		return req.predicate.Eval(vals)

	default:
		return false
	}
}

// EvalAsync is Eval's awaitable counterpart, for a tree containing a
// predicate that needs EvalAsync (see Req.IsAsync). All/One fan their
// children out concurrently via errgroup, bounded by maxConcurrent (the
// catalog's MaxConcurrentChecks, default runtime.GOMAXPROCS(0)); this
// trades All/One's short-circuit evaluation for parallelism, since every
// branch may itself suspend.
func EvalAsync(ctx context.Context, req *Req, vals Values, maxConcurrent int) (bool, error) {
	if req == nil {
		return true, nil
	}
	switch req.kind {
	case KindNameOnly, KindValueMap:
		return Eval(req, vals), nil

	case KindAll:
		results, err := evalChildrenAsync(ctx, req.children, vals, maxConcurrent)
		if err != nil {
			return false, err
		}
		for _, ok := range results {
			if !ok {
				return false, nil
			}
		}
		return true, nil

	case KindOne:
		results, err := evalChildrenAsync(ctx, req.children, vals, maxConcurrent)
		if err != nil {
			return false, err
		}
		for _, ok := range results {
			if ok {
				return true, nil
			}
		}
		return false, nil

	case KindNot:
		ok, err := EvalAsync(ctx, req.child, vals, maxConcurrent)
		return !ok, err

	case KindPredicate:
		switch {
		case req.predicate.EvalAsync != nil:
			return req.predicate.EvalAsync(ctx, vals)
		case req.predicate.Eval != nil:
			return req.predicate.Eval(vals), nil
		default:
			return false, nil
		}

	default:
		return false, nil
	}
}

func evalChildrenAsync(ctx context.Context, children []*Req, vals Values, maxConcurrent int) ([]bool, error) {
	g, ctx := errgroup.WithContext(ctx)
	if maxConcurrent > 0 {
		g.SetLimit(maxConcurrent)
	}
	results := make([]bool, len(children))
	for i, c := range children {
		i, c := i, c
		g.Go(func() error {
			ok, err := EvalAsync(ctx, c, vals, maxConcurrent)
			results[i] = ok
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func evalValueMap(req *Req, vals Values) bool {
	val, specified := vals.Value(req.id)
	switch req.value.Kind {
	case ValuePresent:
		return specified
	case ValueAbsent:
		return !specified
	case ValueEquals:
		if !specified {
			return false
		}
		return valuesEqual(val, req.value.Wanted, vals.Unique(req.id))
	default:
		return false
	}
}

// valuesEqual compares a parsed value against a requirement's wanted value.
// Scalars compare by equality; []string/[]any compare element-wise unless
// unique is set, in which case they compare as multisets (order-independent,
// counting duplicates).
func valuesEqual(got, want any, unique bool) bool {
	gotSlice, gotIsSlice := toAnySlice(got)
	wantSlice, wantIsSlice := toAnySlice(want)
	if gotIsSlice || wantIsSlice {
		if !gotIsSlice || !wantIsSlice {
			return false
		}
		if unique {
			return multisetEqual(gotSlice, wantSlice)
		}
		return orderedEqual(gotSlice, wantSlice)
	}
	return got == want
}

func toAnySlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []int:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []float64:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []any:
		return s, true
	default:
		return nil, false
	}
}

func orderedEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func multisetEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	toStrs := func(s []any) []string {
		out := make([]string, len(s))
		for i, v := range s {
			out[i] = fmt.Sprint(v)
		}
		sort.Strings(out)
		return out
	}
	as, bs := toStrs(a), toStrs(b)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
