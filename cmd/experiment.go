package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/cwbudde/cuckoofit/internal/runner"
	"github.com/spf13/cobra"
)

var (
	repeats int
	workers int
)

var experimentCmd = &cobra.Command{
	Use:   "experiment",
	Short: "Repeat runs with consecutive seeds and summarize",
	Long: `Runs the optimizer --repeats times per problem, seeding run i with --seed+i,
on up to --workers goroutines. Prints mean, standard deviation, min and max of
the best fitness per problem.`,
	RunE: runExperiment,
}

func init() {
	addOptimizerFlags(experimentCmd)
	experimentCmd.Flags().IntVar(&repeats, "repeats", 10, "Runs per problem")
	experimentCmd.Flags().IntVar(&workers, "workers", 4, "Concurrent runs")

	rootCmd.AddCommand(experimentCmd)
}

func runExperiment(cmd *cobra.Command, args []string) error {
	if repeats <= 0 {
		return fmt.Errorf("--repeats must be positive, got %d", repeats)
	}
	problems, err := selectedProblems()
	if err != nil {
		return err
	}

	manager, cleanup, err := newManager(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	summaries := make([]runner.Summary, len(problems))
	var failed error
	for i, problem := range problems {
		jobs, err := manager.RunBatch(cmd.Context(), buildSpec(cmd, problem), repeats, workers)
		if err != nil {
			slog.Error("Batch finished with failures", "problem", problem.Name, "error", err)
			failed = err
		}
		summaries[i] = runner.Summarize(jobs)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROBLEM\tEXPECTED\tRUNS\tMEAN\tSTDDEV\tMIN\tMAX")
	fmt.Fprintln(w, "-------\t--------\t----\t----\t------\t---\t---")
	for i, problem := range problems {
		s := summaries[i]
		fmt.Fprintf(w, "%s\t%g\t%d/%d\t%.4f\t%.4f\t%.4f\t%.4f\n",
			problem.Name,
			problem.Expected,
			s.Completed,
			s.Runs,
			s.Mean,
			s.StdDev,
			s.Min,
			s.Max,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if failed != nil {
		return fmt.Errorf("experiment had failed runs: %w", failed)
	}
	return nil
}
