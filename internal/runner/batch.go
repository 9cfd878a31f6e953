package runner

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// RunBatch executes repeats independent runs of spec, run i seeded with
// spec.Config.Seed+i, on up to workers goroutines. Each run owns its own
// engine. Jobs not started before ctx is done are marked cancelled. The
// returned jobs are in seed order; the error joins every failure.
func (m *Manager) RunBatch(ctx context.Context, spec JobSpec, repeats, workers int) ([]Job, error) {
	if repeats <= 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > repeats {
		workers = repeats
	}

	ids := make([]string, repeats)
	for i := range ids {
		s := spec
		s.Config.Seed = spec.Config.Seed + int64(i)
		ids[i] = m.CreateJob(s).ID
	}

	slog.Info("Starting batch", "problem", spec.Problem, "repeats", repeats, "workers", workers)

	queue := make(chan string)
	errs := make(chan error, repeats)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range queue {
				if err := m.Execute(ctx, id); err != nil {
					errs <- err
				}
			}
		}()
	}

	for _, id := range ids {
		queue <- id
	}
	close(queue)
	wg.Wait()
	close(errs)

	var all []error
	for err := range errs {
		all = append(all, err)
	}

	jobs := make([]Job, len(ids))
	for i, id := range ids {
		jobs[i], _ = m.GetJob(id)
	}
	return jobs, errors.Join(all...)
}
