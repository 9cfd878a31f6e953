package cuckoo

import (
	"fmt"
	"math"
)

// Bounds is the axis-aligned search box. Lower[i] <= Upper[i] for every dimension.
type Bounds struct {
	Lower []float64
	Upper []float64
}

// NewBounds creates bounds with the same [lower, upper] range in every dimension.
func NewBounds(dim int, lower, upper float64) Bounds {
	b := Bounds{
		Lower: make([]float64, dim),
		Upper: make([]float64, dim),
	}
	for i := 0; i < dim; i++ {
		b.Lower[i] = lower
		b.Upper[i] = upper
	}
	return b
}

// Dim returns the number of dimensions covered by the bounds.
func (b Bounds) Dim() int {
	return len(b.Lower)
}

// Validate checks that the bounds describe a non-empty box of dimension dim.
func (b Bounds) Validate(dim int) error {
	if len(b.Lower) != dim || len(b.Upper) != dim {
		return &ConfigError{
			Field:  "Bounds",
			Reason: fmt.Sprintf("length mismatch: lower=%d upper=%d, expected %d", len(b.Lower), len(b.Upper), dim),
		}
	}
	for i := range b.Lower {
		lo, hi := b.Lower[i], b.Upper[i]
		if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
			return &ConfigError{Field: "Bounds", Reason: fmt.Sprintf("dimension %d is not finite", i)}
		}
		if lo > hi {
			return &ConfigError{Field: "Bounds", Reason: fmt.Sprintf("dimension %d has lower %g > upper %g", i, lo, hi)}
		}
	}
	return nil
}

// Clamp returns a copy of position with every coordinate projected into the box.
func (b Bounds) Clamp(position []float64) []float64 {
	out := make([]float64, len(position))
	for i, x := range position {
		switch {
		case x < b.Lower[i]:
			out[i] = b.Lower[i]
		case x > b.Upper[i]:
			out[i] = b.Upper[i]
		default:
			out[i] = x
		}
	}
	return out
}

// Contains reports whether every coordinate lies inside the box, edges included.
func (b Bounds) Contains(position []float64) bool {
	if len(position) != len(b.Lower) {
		return false
	}
	for i, x := range position {
		if x < b.Lower[i] || x > b.Upper[i] {
			return false
		}
	}
	return true
}

// Sample draws a position uniformly from the box, one independent draw per dimension.
func (b Bounds) Sample(src Source) []float64 {
	out := make([]float64, len(b.Lower))
	for i := range out {
		out[i] = b.Lower[i] + src.Float64()*(b.Upper[i]-b.Lower[i])
	}
	return out
}
