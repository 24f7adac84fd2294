package population

import (
	"context"

	"golang.org/x/sync/errgroup"

	"marketplace-datagen/internal/generator/random"
)

// fanOut runs n independent units and concatenates their results in unit
// order. Every unit gets its own picker forked from parent before any unit
// starts, so the output does not depend on the worker count or on
// scheduling. Only record IDs, which come from a shared sequencer, may
// differ between worker counts.
func fanOut[T any](ctx context.Context, parent *random.Picker, workers, n int, unit func(i int, p *random.Picker) ([]T, error)) ([]T, error) {
	pickers := make([]*random.Picker, n)
	for i := range pickers {
		pickers[i] = parent.Fork()
	}
	results := make([][]T, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := unit(i, pickers[i])
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	merged := make([]T, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged, nil
}
