package benchmark

import (
	"math"
	"testing"
)

func TestProblemsPeakAtExpected(t *testing.T) {
	tests := []struct {
		name string
		at   []float64
	}{
		{"paraboloid", []float64{0, 0}},
		{"sine", []float64{5 * math.Pi, 5 * math.Pi}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Lookup(tt.name)
			if err != nil {
				t.Fatalf("Lookup failed: %v", err)
			}
			if got := p.Fitness(tt.at); math.Abs(got-p.Expected) > 1e-9 {
				t.Errorf("Fitness at optimum = %f, want %f", got, p.Expected)
			}
			if err := p.Bounds.Validate(p.Dimension); err != nil {
				t.Errorf("Invalid bounds: %v", err)
			}
			if !p.Bounds.Contains(tt.at) {
				t.Errorf("Optimum %v lies outside bounds", tt.at)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("rosenbrock"); err == nil {
		t.Error("Expected error for unknown problem")
	}
}

func TestAllOrder(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != "paraboloid" || names[1] != "sine" {
		t.Errorf("Unexpected problem order: %v", names)
	}
}
