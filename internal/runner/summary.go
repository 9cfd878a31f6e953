package runner

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the best fitness of completed jobs.
type Summary struct {
	Runs      int
	Completed int
	Mean      float64
	StdDev    float64
	Min       float64
	Max       float64
	// BestJobID is the completed job with the highest fitness.
	BestJobID string
}

// Summarize computes statistics over the completed jobs. With fewer than two
// completed jobs StdDev is zero.
func Summarize(jobs []Job) Summary {
	s := Summary{Runs: len(jobs)}

	var (
		fitness []float64
		ids     []string
	)
	for _, j := range jobs {
		if j.State != StateCompleted {
			continue
		}
		fitness = append(fitness, j.BestFitness)
		ids = append(ids, j.ID)
	}
	s.Completed = len(fitness)
	if s.Completed == 0 {
		return s
	}

	s.Mean = stat.Mean(fitness, nil)
	if s.Completed > 1 {
		s.StdDev = stat.StdDev(fitness, nil)
	}
	s.Min = floats.Min(fitness)
	s.Max = floats.Max(fitness)
	s.BestJobID = ids[floats.MaxIdx(fitness)]
	return s
}
