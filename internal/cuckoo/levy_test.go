package cuckoo

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func TestLevySigma(t *testing.T) {
	// Γ(2.5)·sin(0.75π) / (Γ(1.25)·2^0.25), raised to 1/1.5
	want := math.Pow(math.Gamma(2.5)*math.Sin(0.75*math.Pi)/(math.Gamma(1.25)*math.Pow(2, 0.25)), 1/1.5)
	got := LevySigma(1.5)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("LevySigma(1.5) = %f, want %f", got, want)
	}

	// λ=1 reduces to Γ(2)·sin(π/2) / (Γ(1)·1) = 1
	if got := LevySigma(1); math.Abs(got-1) > 1e-12 {
		t.Errorf("LevySigma(1) = %f, want 1", got)
	}
}

func TestNewLevyRejectsInvalidLambda(t *testing.T) {
	for _, lambda := range []float64{0, -1, 2.0001, math.NaN()} {
		if _, err := NewLevy(lambda); err == nil {
			t.Errorf("NewLevy(%g) should fail", lambda)
		}
	}
}

func TestLevyStepLength(t *testing.T) {
	levy, err := NewLevy(1.5)
	if err != nil {
		t.Fatalf("NewLevy failed: %v", err)
	}
	step := levy.Step(NewSource(3), 7)
	if len(step) != 7 {
		t.Fatalf("Expected 7 components, got %d", len(step))
	}
}

func TestLevyStepHeavyTails(t *testing.T) {
	levy, err := NewLevy(1.5)
	if err != nil {
		t.Fatalf("NewLevy failed: %v", err)
	}
	src := NewSource(42)

	steps := levy.Step(src, 1000)

	normal := make([]float64, len(steps))
	sd := stat.StdDev(steps, nil)
	for i := range normal {
		normal[i] = src.NormFloat64() * sd
	}

	// ExKurtosis is kurtosis minus 3; a normal sample sits near 0.
	levyKurtosis := stat.ExKurtosis(steps, nil) + 3
	normalKurtosis := stat.ExKurtosis(normal, nil) + 3

	if levyKurtosis <= 6 {
		t.Errorf("Lévy steps should be heavy-tailed, kurtosis = %f", levyKurtosis)
	}
	if levyKurtosis <= normalKurtosis {
		t.Errorf("Lévy kurtosis %f should exceed normal kurtosis %f", levyKurtosis, normalKurtosis)
	}
}

func TestLevyStepDeterministic(t *testing.T) {
	levy, _ := NewLevy(1.5)
	a := levy.Step(NewSource(9), 5)
	b := levy.Step(NewSource(9), 5)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Step differs at %d: %f vs %f", i, a[i], b[i])
		}
	}
}
