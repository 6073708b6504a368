// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parse

import (
	"context"

	"github.com/clargo/clargo/internal/clargoerr"
	"github.com/clargo/clargo/internal/require"
	"github.com/clargo/clargo/internal/schema"
)

// checkRequirements runs after every token has been consumed and before
// defaults are materialized: Required, Requires and RequiredIf are all
// checked against specified values only (typed, or from an env fallback),
// so a default neither satisfies nor triggers a requirement.
func checkRequirements(reg *schema.Registry, vals *Values) error {
	for _, e := range reg.Entries() {
		if e.Def.Required {
			if _, ok := vals.Value(e.ID); !ok {
				return clargoerr.RequiredAbsent(reg.PreferredName(e.ID))
			}
		}
		if req, ok := reg.Requires(e.ID); ok {
			if _, specified := vals.Value(e.ID); specified {
				if !require.Eval(req, vals) {
					return clargoerr.RequiresUnsatisfied(reg.PreferredName(e.ID), require.Render(req, reg))
				}
			}
		}
		if reqIf, ok := reg.RequiredIf(e.ID); ok {
			if require.Eval(reqIf, vals) {
				if _, present := vals.Get(e.ID); !present {
					return clargoerr.RequiredAbsent(reg.PreferredName(e.ID))
				}
			}
		}
	}
	return nil
}

// checkRequirementsAsync is checkRequirements' awaitable counterpart, used
// by ParseAsync: identical rules, but a Requires/RequiredIf tree containing
// an async predicate is evaluated with require.EvalAsync, bounded by
// maxConcurrent, instead of require.Eval.
func checkRequirementsAsync(ctx context.Context, reg *schema.Registry, vals *Values, maxConcurrent int) error {
	evalReq := func(req *require.Req) (bool, error) {
		if req.IsAsync() {
			return require.EvalAsync(ctx, req, vals, maxConcurrent)
		}
		return require.Eval(req, vals), nil
	}

	for _, e := range reg.Entries() {
		if e.Def.Required {
			if _, ok := vals.Value(e.ID); !ok {
				return clargoerr.RequiredAbsent(reg.PreferredName(e.ID))
			}
		}
		if req, ok := reg.Requires(e.ID); ok {
			if _, specified := vals.Value(e.ID); specified {
				ok, err := evalReq(req)
				if err != nil {
					return err
				}
				if !ok {
					return clargoerr.RequiresUnsatisfied(reg.PreferredName(e.ID), require.Render(req, reg))
				}
			}
		}
		if reqIf, ok := reg.RequiredIf(e.ID); ok {
			ok, err := evalReq(reqIf)
			if err != nil {
				return err
			}
			if ok {
				if _, present := vals.Get(e.ID); !present {
					return clargoerr.RequiredAbsent(reg.PreferredName(e.ID))
				}
			}
		}
	}
	return nil
}
