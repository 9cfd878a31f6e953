package cuckoo

import (
	"fmt"
	"math"
)

// Levy draws heavy-tailed step vectors with Mantegna's method.
type Levy struct {
	lambda    float64
	invLambda float64
	sigmaU    float64
}

// NewLevy prepares a step generator for the stability exponent lambda in (0, 2].
func NewLevy(lambda float64) (*Levy, error) {
	if math.IsNaN(lambda) || lambda <= 0 || lambda > 2 {
		return nil, &ConfigError{Field: "Lambda", Reason: fmt.Sprintf("%g is outside (0, 2]", lambda)}
	}
	return &Levy{
		lambda:    lambda,
		invLambda: 1 / lambda,
		sigmaU:    LevySigma(lambda),
	}, nil
}

// LevySigma is the standard deviation of the numerator draw u:
//
//	( Γ(1+λ)·sin(πλ/2) / (Γ((1+λ)/2)·2^((λ-1)/2)) )^(1/λ)
func LevySigma(lambda float64) float64 {
	num := math.Gamma(1+lambda) * math.Sin(math.Pi*lambda/2)
	den := math.Gamma((1+lambda)/2) * math.Pow(2, (lambda-1)/2)
	return math.Pow(num/den, 1/lambda)
}

// Lambda returns the stability exponent.
func (l *Levy) Lambda() float64 {
	return l.lambda
}

// Sigma returns the cached numerator standard deviation.
func (l *Levy) Sigma() float64 {
	return l.sigmaU
}

// Step returns a dim-length vector with step_i = u_i / |v_i|^(1/λ),
// u_i ~ N(0, σu²) and v_i ~ N(0, 1).
func (l *Levy) Step(src Source, dim int) []float64 {
	u := make([]float64, dim)
	for i := range u {
		u[i] = src.NormFloat64() * l.sigmaU
	}
	step := make([]float64, dim)
	for i := range step {
		v := src.NormFloat64()
		step[i] = u[i] / math.Pow(math.Abs(v), l.invLambda)
	}
	return step
}
