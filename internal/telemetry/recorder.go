package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of every instrument created here.
const MeterName = "github.com/cwbudde/cuckoofit"

// Outcome summarizes a finished run for metrics.
type Outcome struct {
	Problem     string
	Algorithm   string
	Status      string // completed, failed or cancelled
	Generations int
	Evaluations int
	Elapsed     time.Duration
}

// Recorder records optimizer activity through OpenTelemetry instruments.
// Without an installed MeterProvider the global no-op provider discards
// everything.
type Recorder struct {
	runs        metric.Int64Counter
	generations metric.Int64Counter
	evaluations metric.Int64Counter
	duration    metric.Float64Histogram
}

// NewRecorder creates the instruments on the global meter provider.
func NewRecorder() (*Recorder, error) {
	return NewRecorderWithMeter(otel.Meter(MeterName))
}

// NewRecorderWithMeter creates the instruments on meter.
func NewRecorderWithMeter(meter metric.Meter) (*Recorder, error) {
	runs, err := meter.Int64Counter(
		"cuckoofit.runs",
		metric.WithDescription("Finished optimization runs"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create runs counter: %w", err)
	}

	generations, err := meter.Int64Counter(
		"cuckoofit.generations",
		metric.WithDescription("Completed generations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generations counter: %w", err)
	}

	evaluations, err := meter.Int64Counter(
		"cuckoofit.evaluations",
		metric.WithDescription("Fitness function evaluations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluations counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		"cuckoofit.run.duration",
		metric.WithDescription("Wall-clock time of a run"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &Recorder{
		runs:        runs,
		generations: generations,
		evaluations: evaluations,
		duration:    duration,
	}, nil
}

// RunFinished records one run.
func (r *Recorder) RunFinished(ctx context.Context, o Outcome) {
	attrs := metric.WithAttributes(
		attribute.String("problem", o.Problem),
		attribute.String("algorithm", o.Algorithm),
		attribute.String("status", o.Status),
	)

	r.runs.Add(ctx, 1, attrs)
	r.generations.Add(ctx, int64(o.Generations), attrs)
	r.evaluations.Add(ctx, int64(o.Evaluations), attrs)
	r.duration.Record(ctx, o.Elapsed.Seconds(), attrs)
}
