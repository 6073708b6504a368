// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parse

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/clargo/clargo/internal/schema"
)

// materializeDefaults fills vals.defaults for every registered option that
// was not specified and declares a Default or DefaultFn, synchronously in
// declaration order. Used by the synchronous parse path (Parse and its
// command sub-parses); ParseAsync uses materializeDefaultsAsync instead.
func materializeDefaults(reg *schema.Registry, vals *Values) error {
	for _, e := range reg.Entries() {
		if _, ok := vals.Value(e.ID); ok {
			continue
		}
		def := e.Def
		switch {
		case def.DefaultFn != nil:
			v, err := def.DefaultFn(vals)
			if err != nil {
				return err
			}
			vals.defaults[e.ID] = v
		case def.Default != nil:
			vals.defaults[e.ID] = def.Default
		}
	}
	return nil
}

// materializeDefaultsAsync is materializeDefaults' concurrent counterpart:
// every DefaultFn runs in its own goroutine, since such hooks commonly do
// I/O (reading a config file, resolving an environment default) and
// independent options' defaults have no ordering dependency on each other.
// A plain Default literal is still applied inline since it can't block.
func materializeDefaultsAsync(ctx context.Context, reg *schema.Registry, vals *Values) error {
	g, ctx := errgroup.WithContext(ctx)
	type result struct {
		id  string
		val any
	}
	results := make(chan result, len(reg.Entries()))

	for _, e := range reg.Entries() {
		if _, ok := vals.Value(e.ID); ok {
			continue
		}
		def := e.Def
		switch {
		case def.DefaultFnAsync != nil:
			id, fn := e.ID, def.DefaultFnAsync
			g.Go(func() error {
				v, err := fn(ctx, vals)
				if err != nil {
					return err
				}
				select {
				case results <- result{id: id, val: v}:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			})
		case def.DefaultFn != nil:
			id, fn := e.ID, def.DefaultFn
			g.Go(func() error {
				v, err := fn(vals)
				if err != nil {
					return err
				}
				select {
				case results <- result{id: id, val: v}:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			})
		case def.Default != nil:
			vals.defaults[e.ID] = def.Default
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}
	close(results)
	for r := range results {
		vals.defaults[r.id] = r.val
	}
	return nil
}
