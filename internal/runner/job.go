package runner

import (
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/cwbudde/cuckoofit/internal/benchmark"
	"github.com/cwbudde/cuckoofit/internal/cuckoo"
	"github.com/cwbudde/cuckoofit/internal/store"
	"github.com/cwbudde/cuckoofit/internal/telemetry"
	"github.com/google/uuid"
)

// JobState represents the current state of a job
type JobState string

const (
	StatePending   JobState = "pending"
	StateRunning   JobState = "running"
	StateCompleted JobState = "completed"
	StateFailed    JobState = "failed"
	StateCancelled JobState = "cancelled"
)

// JobConfig is the persisted form of the run parameters.
type JobConfig = store.RunConfig

// JobSpec describes one optimization run.
type JobSpec struct {
	Problem   string    `json:"problem"`
	Algorithm string    `json:"algorithm"`
	Config    JobConfig `json:"config"`
	// Trace writes per-generation progress when the manager has a trace directory.
	Trace bool `json:"trace"`
}

// DefaultSpec returns the parameters of the bundled scenarios for problem,
// targeting its known optimum.
func DefaultSpec(problem benchmark.Problem) JobSpec {
	cfg := cuckoo.DefaultConfig(problem.Dimension)
	return JobSpec{
		Problem:   problem.Name,
		Algorithm: "cuckoo",
		Config: JobConfig{
			PopulationSize: cfg.PopulationSize,
			Dimension:      problem.Dimension,
			DeadFraction:   cfg.DeadFraction,
			Generations:    cfg.Generations,
			TargetFitness:  problem.Expected,
			StepScale:      cfg.StepScale,
			Lambda:         cfg.Lambda,
			Seed:           1,
		},
	}
}

// EngineConfig converts the persisted parameters into an engine configuration.
func (s JobSpec) EngineConfig() cuckoo.Config {
	return cuckoo.Config{
		PopulationSize: s.Config.PopulationSize,
		Dimension:      s.Config.Dimension,
		DeadFraction:   s.Config.DeadFraction,
		Generations:    s.Config.Generations,
		TargetFitness:  s.Config.TargetFitness,
		StepScale:      s.Config.StepScale,
		Lambda:         s.Config.Lambda,
	}
}

// Job represents an optimization run tracked by a Manager
type Job struct {
	ID           string     `json:"id"`
	State        JobState   `json:"state"`
	Spec         JobSpec    `json:"spec"`
	BestPosition []float64  `json:"bestPosition,omitempty"`
	BestFitness  float64    `json:"bestFitness"`
	Generations  int        `json:"generations"`
	Evaluations  int        `json:"evaluations"`
	CreatedAt    time.Time  `json:"createdAt"`
	StartTime    *time.Time `json:"startTime,omitempty"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	Error        string     `json:"error,omitempty"`
}

// Elapsed returns the run time so far, or the total once finished.
func (j Job) Elapsed() time.Duration {
	if j.StartTime == nil {
		return 0
	}
	if j.EndTime != nil {
		return j.EndTime.Sub(*j.StartTime)
	}
	return time.Since(*j.StartTime)
}

func (j *Job) clone() Job {
	c := *j
	c.BestPosition = slices.Clone(j.BestPosition)
	return c
}

// Options configures optional Manager collaborators. Zero values disable them.
type Options struct {
	// Store persists every completed run.
	Store store.Store
	// TraceDir receives <TraceDir>/runs/<id>/trace.jsonl for jobs with Trace set.
	TraceDir string
	// Recorder receives run metrics.
	Recorder *telemetry.Recorder
}

// Manager manages the lifecycle of jobs
type Manager struct {
	mu   sync.RWMutex
	jobs map[string]*Job
	opts Options
}

// NewManager creates a new Manager
func NewManager(opts Options) *Manager {
	return &Manager{
		jobs: make(map[string]*Job),
		opts: opts,
	}
}

// CreateJob registers a pending job for spec.
func (m *Manager) CreateJob(spec JobSpec) Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &Job{
		ID:        uuid.New().String(),
		State:     StatePending,
		Spec:      spec,
		CreatedAt: time.Now(),
	}

	m.jobs[job.ID] = job
	return job.clone()
}

// GetJob returns a snapshot of the job.
func (m *Manager) GetJob(id string) (Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[id]
	if !exists {
		return Job{}, false
	}
	return job.clone(), true
}

// ListJobs returns snapshots of all jobs, oldest first.
func (m *Manager) ListJobs() []Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	jobs := make([]Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		jobs = append(jobs, job.clone())
	}
	sort.Slice(jobs, func(i, k int) bool {
		return jobs[i].CreatedAt.Before(jobs[k].CreatedAt)
	})
	return jobs
}

// UpdateJob atomically updates a job using the provided function
func (m *Manager) UpdateJob(id string, updateFn func(*Job)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[id]
	if !exists {
		return fmt.Errorf("job not found: %s", id)
	}

	updateFn(job)
	return nil
}

// JobsInState returns all jobs currently in state.
func (m *Manager) JobsInState(state JobState) []Job {
	var out []Job
	for _, job := range m.ListJobs() {
		if job.State == state {
			out = append(out, job)
		}
	}
	return out
}
