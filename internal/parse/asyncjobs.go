// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parse

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// asyncJob is one option's pending ParseAsync resolution: queued during the
// (always synchronous, left-to-right) token loop and run concurrently
// afterward, so independent options' awaited parse callbacks don't block
// each other or the loop itself.
type asyncJob struct {
	id  string
	run func(ctx context.Context) (any, error)
}

// commitAsyncJobs runs every queued job concurrently, bounded by
// maxConcurrent, then commits each result into vals only once every job has
// resolved — preserving left-to-right value assignment even though
// resolution itself runs out of order.
func commitAsyncJobs(ctx context.Context, vals *Values, jobs []asyncJob, maxConcurrent int) error {
	if len(jobs) == 0 {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	if maxConcurrent > 0 {
		g.SetLimit(maxConcurrent)
	}
	results := make([]any, len(jobs))
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			v, err := j.run(ctx)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, j := range jobs {
		vals.set(j.id, results[i])
	}
	return nil
}
