package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cwbudde/cuckoofit/internal/benchmark"
	"github.com/cwbudde/cuckoofit/internal/cuckoo"
	"github.com/cwbudde/cuckoofit/internal/opt"
	"github.com/cwbudde/cuckoofit/internal/store"
	"github.com/cwbudde/cuckoofit/internal/telemetry"
)

// Execute runs a pending job to completion. The optimizer itself cannot be
// interrupted, so ctx is only checked before the run starts.
func (m *Manager) Execute(ctx context.Context, jobID string) error {
	job, start, err := m.claim(ctx, jobID)
	if err != nil {
		return err
	}

	problem, err := benchmark.Lookup(job.Spec.Problem)
	if err != nil {
		m.markFailed(jobID, err)
		return err
	}

	trace, err := m.openTrace(job)
	if err != nil {
		m.markFailed(jobID, err)
		return err
	}
	if trace != nil {
		defer func() {
			if err := trace.Close(); err != nil {
				slog.Warn("Failed to close trace", "job_id", jobID, "error", err)
			}
		}()
	}

	optimizer, err := opt.New(job.Spec.Algorithm, opt.Params{
		Config:       job.Spec.EngineConfig(),
		Seed:         job.Spec.Config.Seed,
		OnGeneration: m.progressFunc(jobID, trace),
	})
	if err != nil {
		m.markFailed(jobID, err)
		return err
	}

	slog.Info("Starting job",
		"job_id", jobID,
		"problem", problem.Name,
		"algorithm", optimizer.Name(),
		"seed", job.Spec.Config.Seed,
	)

	result, err := optimizer.Run(cuckoo.Total(problem.Fitness), problem.Bounds)
	elapsed := time.Since(start)
	if err != nil {
		m.markFailed(jobID, err)
		m.recordOutcome(ctx, job, StateFailed, cuckoo.Result{}, elapsed)
		return err
	}

	endTime := start.Add(elapsed)
	m.update(jobID, func(j *Job) {
		j.State = StateCompleted
		j.BestPosition = slices.Clone(result.Position)
		j.BestFitness = result.Fitness
		j.Generations = result.Generations
		j.Evaluations = result.Evaluations
		j.EndTime = &endTime
	})
	m.recordOutcome(ctx, job, StateCompleted, result, elapsed)

	slog.Info("Job completed",
		"job_id", jobID,
		"elapsed", elapsed,
		"generations", result.Generations,
		"best_fitness", result.Fitness,
		"expected", problem.Expected,
	)

	if m.opts.Store != nil {
		record := newRunRecord(jobID, job.Spec, optimizer.Name(), problem, result, elapsed, endTime)
		if err := m.opts.Store.Save(ctx, record); err != nil {
			slog.Error("Failed to save run", "job_id", jobID, "error", err)
			return fmt.Errorf("failed to save run: %w", err)
		}
	}
	return nil
}

// progressFunc mirrors generation statistics into the job and the trace.
func (m *Manager) progressFunc(jobID string, trace *store.TraceWriter) func(cuckoo.GenerationStats) {
	return func(s cuckoo.GenerationStats) {
		m.update(jobID, func(j *Job) {
			j.Generations = s.Generation
			j.Evaluations = s.Evaluations
			j.BestFitness = s.BestFitness
		})
		if trace == nil {
			return
		}
		err := trace.Write(store.TraceEntry{
			Generation:   s.Generation,
			BestFitness:  s.BestFitness,
			WorstFitness: s.WorstFitness,
			Evaluations:  s.Evaluations,
			Timestamp:    time.Now(),
		})
		if err != nil {
			slog.Warn("Failed to write trace entry", "job_id", jobID, "generation", s.Generation, "error", err)
		}
	}
}

// claim moves a pending job to running, or to cancelled when ctx is already
// done, in a single update so a job is never executed twice.
func (m *Manager) claim(ctx context.Context, jobID string) (Job, time.Time, error) {
	var (
		job      Job
		start    = time.Now()
		claimErr error
	)
	err := m.UpdateJob(jobID, func(j *Job) {
		if j.State != StatePending {
			claimErr = fmt.Errorf("job %s is %s, expected %s", jobID, j.State, StatePending)
			return
		}
		if err := ctx.Err(); err != nil {
			j.State = StateCancelled
			j.EndTime = &start
			claimErr = err
			return
		}
		j.State = StateRunning
		j.StartTime = &start
		job = j.clone()
	})
	if err != nil {
		return Job{}, start, err
	}
	if errors.Is(claimErr, context.Canceled) || errors.Is(claimErr, context.DeadlineExceeded) {
		slog.Info("Job cancelled", "job_id", jobID)
	}
	return job, start, claimErr
}

// update applies fn to the job and logs when the job has disappeared.
func (m *Manager) update(jobID string, fn func(*Job)) {
	if err := m.UpdateJob(jobID, fn); err != nil {
		slog.Warn("Failed to update job", "job_id", jobID, "error", err)
	}
}

// openTrace opens the trace of a job that asked for one. Algorithms that
// report no generations get no trace file.
func (m *Manager) openTrace(job Job) (*store.TraceWriter, error) {
	if !job.Spec.Trace || m.opts.TraceDir == "" {
		return nil, nil
	}
	if !opt.ReportsGenerations(job.Spec.Algorithm) {
		slog.Warn("Algorithm reports no generations, no trace will be written",
			"job_id", job.ID,
			"algorithm", job.Spec.Algorithm,
		)
		return nil, nil
	}
	trace, err := store.NewTraceWriter(m.opts.TraceDir, job.ID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	return trace, nil
}

func (m *Manager) recordOutcome(ctx context.Context, job Job, state JobState, result cuckoo.Result, elapsed time.Duration) {
	if m.opts.Recorder == nil {
		return
	}
	m.opts.Recorder.RunFinished(ctx, telemetry.Outcome{
		Problem:     job.Spec.Problem,
		Algorithm:   job.Spec.Algorithm,
		Status:      string(state),
		Generations: result.Generations,
		Evaluations: result.Evaluations,
		Elapsed:     elapsed,
	})
}

func newRunRecord(id string, spec JobSpec, algorithm string, problem benchmark.Problem, result cuckoo.Result, elapsed time.Duration, ts time.Time) *store.RunRecord {
	cfg := spec.Config
	cfg.Dimension = problem.Dimension
	return &store.RunRecord{
		ID:           id,
		Problem:      problem.Name,
		Algorithm:    algorithm,
		Config:       cfg,
		BestPosition: slices.Clone(result.Position),
		BestFitness:  result.Fitness,
		Expected:     problem.Expected,
		Generations:  result.Generations,
		Evaluations:  result.Evaluations,
		Elapsed:      elapsed,
		Timestamp:    ts,
	}
}

// markFailed marks a job as failed with an error message
func (m *Manager) markFailed(jobID string, err error) {
	endTime := time.Now()
	m.update(jobID, func(j *Job) {
		j.State = StateFailed
		j.Error = err.Error()
		j.EndTime = &endTime
	})
	slog.Error("Job failed", "job_id", jobID, "error", err)
}
