package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// Entry is one run in the text report.
type Entry struct {
	Problem  string
	Position []float64
	Fitness  float64
	Expected float64
	Elapsed  time.Duration
}

// Write renders entries as numbered blocks:
//
//	#1 paraboloid
//	Best result: 9.99
//	Expected answer: 10
//	Coefficients: 0.01, -0.02
//	Elapsed: 0 min 1.23 sec
func Write(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for i, e := range entries {
		fmt.Fprintf(bw, "#%d %s\n", i+1, e.Problem)
		fmt.Fprintf(bw, "Best result: %.2f\n", e.Fitness)
		fmt.Fprintf(bw, "Expected answer: %g\n", e.Expected)
		fmt.Fprintf(bw, "Coefficients: %s\n", Coefficients(e.Position))
		fmt.Fprintf(bw, "Elapsed: %s\n", Elapsed(e.Elapsed))
		fmt.Fprintln(bw)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Coefficients formats a position with two decimals per coordinate.
func Coefficients(position []float64) string {
	parts := make([]string, len(position))
	for i, c := range position {
		parts[i] = fmt.Sprintf("%.2f", c)
	}
	return strings.Join(parts, ", ")
}

// Elapsed formats d as whole minutes and the remaining seconds.
func Elapsed(d time.Duration) string {
	minutes := int(d / time.Minute)
	seconds := (d - time.Duration(minutes)*time.Minute).Seconds()
	return fmt.Sprintf("%d min %.2f sec", minutes, seconds)
}
