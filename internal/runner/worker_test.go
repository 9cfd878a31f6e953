package runner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cwbudde/cuckoofit/internal/benchmark"
	"github.com/cwbudde/cuckoofit/internal/store"
	"github.com/cwbudde/cuckoofit/internal/telemetry"
)

func quickSpec(problem benchmark.Problem) JobSpec {
	spec := DefaultSpec(problem)
	spec.Config.Generations = 50
	return spec
}

func TestExecute_Success(t *testing.T) {
	m := NewManager(Options{})
	job := m.CreateJob(quickSpec(benchmark.SineSum()))

	if err := m.Execute(context.Background(), job.ID); err != nil {
		t.Fatalf("Execute should succeed: %v", err)
	}

	updated, _ := m.GetJob(job.ID)
	if updated.State != StateCompleted {
		t.Errorf("Job should be completed, got %s", updated.State)
	}
	if len(updated.BestPosition) != 2 {
		t.Errorf("Expected 2 coordinates, got %d", len(updated.BestPosition))
	}
	if updated.Generations == 0 || updated.Generations > 50 {
		t.Errorf("Generations = %d, want 1..50", updated.Generations)
	}
	if updated.StartTime == nil || updated.EndTime == nil {
		t.Error("Start and end time should be set")
	}
}

func TestExecute_UnknownProblem(t *testing.T) {
	m := NewManager(Options{})
	spec := quickSpec(benchmark.Paraboloid())
	spec.Problem = "unknown"
	job := m.CreateJob(spec)

	if err := m.Execute(context.Background(), job.ID); err == nil {
		t.Fatal("Expected error for unknown problem")
	}

	updated, _ := m.GetJob(job.ID)
	if updated.State != StateFailed {
		t.Errorf("Job should be failed, got %s", updated.State)
	}
	if updated.Error == "" {
		t.Error("Error message should be set")
	}
}

func TestExecute_InvalidConfig(t *testing.T) {
	m := NewManager(Options{})
	spec := quickSpec(benchmark.Paraboloid())
	spec.Config.DeadFraction = 2
	job := m.CreateJob(spec)

	if err := m.Execute(context.Background(), job.ID); err == nil {
		t.Fatal("Expected configuration error")
	}
	updated, _ := m.GetJob(job.ID)
	if updated.State != StateFailed {
		t.Errorf("Job should be failed, got %s", updated.State)
	}
}

func TestExecute_Cancelled(t *testing.T) {
	m := NewManager(Options{})
	job := m.CreateJob(quickSpec(benchmark.Paraboloid()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Execute(ctx, job.ID)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}

	updated, _ := m.GetJob(job.ID)
	if updated.State != StateCancelled {
		t.Errorf("Job should be cancelled, got %s", updated.State)
	}
}

func TestExecute_NotPending(t *testing.T) {
	m := NewManager(Options{})
	job := m.CreateJob(quickSpec(benchmark.Paraboloid()))

	if err := m.Execute(context.Background(), job.ID); err != nil {
		t.Fatalf("First execute failed: %v", err)
	}
	if err := m.Execute(context.Background(), job.ID); err == nil {
		t.Error("Executing a completed job should fail")
	}
	if err := m.Execute(context.Background(), "nonexistent"); err == nil {
		t.Error("Executing a nonexistent job should fail")
	}
}

func TestExecute_PersistsRecordAndTrace(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fsStore, err := store.NewFSStore(dir)
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}
	rec, err := telemetry.NewRecorder()
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}

	m := NewManager(Options{Store: fsStore, TraceDir: dir, Recorder: rec})
	spec := quickSpec(benchmark.Paraboloid())
	spec.Trace = true
	job := m.CreateJob(spec)

	if err := m.Execute(ctx, job.ID); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	record, err := fsStore.Load(ctx, job.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	updated, _ := m.GetJob(job.ID)
	if record.BestFitness != updated.BestFitness {
		t.Errorf("Stored fitness %f differs from job %f", record.BestFitness, updated.BestFitness)
	}
	if record.Problem != "paraboloid" || record.Algorithm != "cuckoo" || record.Expected != 10 {
		t.Errorf("Unexpected record: %+v", record)
	}

	reader, err := store.NewTraceReader(dir, job.ID)
	if err != nil {
		t.Fatalf("NewTraceReader failed: %v", err)
	}
	defer reader.Close()

	entries, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(entries) != record.Generations {
		t.Fatalf("Expected %d trace entries, got %d", record.Generations, len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].BestFitness < entries[i-1].BestFitness {
			t.Errorf("Trace best fitness regressed at generation %d", entries[i].Generation)
		}
	}
}

func TestExecute_Mayfly(t *testing.T) {
	m := NewManager(Options{})
	spec := quickSpec(benchmark.Paraboloid())
	spec.Algorithm = "mayfly"
	job := m.CreateJob(spec)

	if err := m.Execute(context.Background(), job.ID); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	updated, _ := m.GetJob(job.ID)
	if updated.State != StateCompleted {
		t.Errorf("Job should be completed, got %s", updated.State)
	}
}

func TestExecute_ConcurrentCallsRunOnce(t *testing.T) {
	m := NewManager(Options{})
	job := m.CreateJob(quickSpec(benchmark.SineSum()))

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := m.Execute(context.Background(), job.ID); err == nil {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := succeeded.Load(); got != 1 {
		t.Errorf("Job executed %d times, want 1", got)
	}
	updated, _ := m.GetJob(job.ID)
	if updated.State != StateCompleted {
		t.Errorf("Job should be completed, got %s", updated.State)
	}
}

func TestExecute_MayflySkipsTrace(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(Options{TraceDir: dir})
	spec := quickSpec(benchmark.Paraboloid())
	spec.Algorithm = "mayfly"
	spec.Trace = true
	job := m.CreateJob(spec)

	if err := m.Execute(context.Background(), job.ID); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if _, err := store.NewTraceReader(dir, job.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected no trace for mayfly, got %v", err)
	}
}
