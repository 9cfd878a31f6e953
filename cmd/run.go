package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cwbudde/cuckoofit/internal/report"
	"github.com/spf13/cobra"
)

var outPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark problems once",
	Long: `Runs the optimizer on each selected benchmark problem and writes a text
report with the best result, expected answer, coefficients and elapsed time.`,
	RunE: runOptimization,
}

func init() {
	addOptimizerFlags(runCmd)
	runCmd.Flags().StringVar(&outPath, "out", "results.txt", "Report output path")

	rootCmd.AddCommand(runCmd)
}

func runOptimization(cmd *cobra.Command, args []string) error {
	problems, err := selectedProblems()
	if err != nil {
		return err
	}

	manager, cleanup, err := newManager(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	entries := make([]report.Entry, 0, len(problems))
	for _, problem := range problems {
		job := manager.CreateJob(buildSpec(cmd, problem))
		slog.Info("Starting optimization",
			"problem", problem.Name,
			"algorithm", job.Spec.Algorithm,
			"generations", job.Spec.Config.Generations,
			"target", job.Spec.Config.TargetFitness,
		)

		if err := manager.Execute(ctx, job.ID); err != nil {
			return fmt.Errorf("failed to optimize %s: %w", problem.Name, err)
		}

		done, _ := manager.GetJob(job.ID)
		entries = append(entries, report.Entry{
			Problem:  problem.Name,
			Position: done.BestPosition,
			Fitness:  done.BestFitness,
			Expected: problem.Expected,
			Elapsed:  done.Elapsed(),
		})
	}

	if err := writeReportFile(outPath, entries); err != nil {
		return err
	}
	if err := report.Write(cmd.OutOrStdout(), entries); err != nil {
		return err
	}

	slog.Info("Optimization complete", "problems", len(entries), "out", outPath)
	return nil
}

// writeReportFile writes the report to path. A failed close is an error since
// it may be the write that reaches disk.
func writeReportFile(path string, entries []report.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}

	if err := report.Write(f, entries); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	return nil
}
