package runner

import (
	"testing"

	"github.com/cwbudde/cuckoofit/internal/benchmark"
)

func TestManager_CreateJob(t *testing.T) {
	m := NewManager(Options{})

	spec := DefaultSpec(benchmark.Paraboloid())
	job := m.CreateJob(spec)

	if job.ID == "" {
		t.Error("Job ID should not be empty")
	}
	if job.State != StatePending {
		t.Errorf("Initial state should be pending, got %s", job.State)
	}
	if job.Spec.Problem != "paraboloid" {
		t.Errorf("Spec not set correctly: %+v", job.Spec)
	}
}

func TestManager_GetJob(t *testing.T) {
	m := NewManager(Options{})
	job := m.CreateJob(DefaultSpec(benchmark.SineSum()))

	retrieved, exists := m.GetJob(job.ID)
	if !exists {
		t.Fatal("Job should exist")
	}
	if retrieved.ID != job.ID {
		t.Error("Retrieved wrong job")
	}

	if _, exists := m.GetJob("nonexistent"); exists {
		t.Error("Should not find nonexistent job")
	}
}

func TestManager_GetJobReturnsSnapshot(t *testing.T) {
	m := NewManager(Options{})
	job := m.CreateJob(DefaultSpec(benchmark.Paraboloid()))

	m.UpdateJob(job.ID, func(j *Job) { j.BestPosition = []float64{1, 2} })

	snap, _ := m.GetJob(job.ID)
	snap.BestPosition[0] = 99

	again, _ := m.GetJob(job.ID)
	if again.BestPosition[0] != 1 {
		t.Error("Snapshot shares storage with the managed job")
	}
}

func TestManager_ListJobs(t *testing.T) {
	m := NewManager(Options{})

	if len(m.ListJobs()) != 0 {
		t.Error("Should start with no jobs")
	}

	first := m.CreateJob(DefaultSpec(benchmark.Paraboloid()))
	m.CreateJob(DefaultSpec(benchmark.SineSum()))

	jobs := m.ListJobs()
	if len(jobs) != 2 {
		t.Fatalf("Expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].ID != first.ID {
		t.Error("Jobs should be listed oldest first")
	}
}

func TestManager_UpdateJob(t *testing.T) {
	m := NewManager(Options{})
	job := m.CreateJob(DefaultSpec(benchmark.Paraboloid()))

	err := m.UpdateJob(job.ID, func(j *Job) {
		j.State = StateRunning
		j.BestFitness = 9.9
	})
	if err != nil {
		t.Fatalf("UpdateJob failed: %v", err)
	}

	updated, _ := m.GetJob(job.ID)
	if updated.State != StateRunning || updated.BestFitness != 9.9 {
		t.Errorf("Update not applied: %+v", updated)
	}

	if err := m.UpdateJob("nonexistent", func(*Job) {}); err == nil {
		t.Error("Expected error for nonexistent job")
	}

	if running := m.JobsInState(StateRunning); len(running) != 1 {
		t.Errorf("Expected 1 running job, got %d", len(running))
	}
}

func TestDefaultSpec(t *testing.T) {
	spec := DefaultSpec(benchmark.SineSum())
	cfg := spec.EngineConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default spec should be valid: %v", err)
	}
	if cfg.TargetFitness != 20 {
		t.Errorf("TargetFitness = %f, want 20", cfg.TargetFitness)
	}
	if cfg.PopulationSize != 50 || cfg.DeadFraction != 0.25 || cfg.Generations != 2000 || cfg.Lambda != 1.5 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}
