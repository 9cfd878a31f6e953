package main

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/cuckoofit/internal/report"
	"github.com/cwbudde/cuckoofit/internal/store"
	"github.com/spf13/cobra"
)

var (
	keepLast      int
	olderThanDays int
	forceClean    bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Manage stored run results",
}

var listResultsCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs, newest first",
	RunE:  runListResults,
}

var showResultCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowResult,
}

var deleteResultCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a stored run and its trace",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteResult,
}

var cleanResultsCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete old runs",
	Long: `Delete stored runs based on a retention policy: keep only the newest N runs,
delete runs older than N days, or both.`,
	RunE: runCleanResults,
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.AddCommand(listResultsCmd, showResultCmd, deleteResultCmd, cleanResultsCmd)

	cleanResultsCmd.Flags().IntVar(&keepLast, "keep-last", 0, "Keep only the newest N runs (0 = keep all)")
	cleanResultsCmd.Flags().IntVar(&olderThanDays, "older-than", 0, "Delete runs older than N days (0 = no age limit)")
	cleanResultsCmd.Flags().BoolVarP(&forceClean, "force", "f", false, "Skip confirmation prompt")
}

func runListResults(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.CloseIfSupported(s)

	infos, err := s.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(infos) == 0 {
		fmt.Fprintln(out, "No runs found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tTIMESTAMP\tPROBLEM\tALGORITHM\tGENERATIONS\tBEST FITNESS")
	fmt.Fprintln(w, "------\t---------\t-------\t---------\t-----------\t------------")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.6f\n",
			shortID(info.ID),
			info.Timestamp.Format("2006-01-02 15:04:05"),
			info.Problem,
			info.Algorithm,
			info.Generations,
			info.BestFitness,
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\nTotal runs: %d\n", len(infos))
	return nil
}

func runShowResult(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.CloseIfSupported(s)

	record, err := s.Load(cmd.Context(), args[0])
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("run %s not found", args[0])
	} else if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	c := record.Config
	fmt.Fprintf(out, "Run:          %s\n", record.ID)
	fmt.Fprintf(out, "Timestamp:    %s\n", record.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(out, "Problem:      %s\n", record.Problem)
	fmt.Fprintf(out, "Algorithm:    %s\n", record.Algorithm)
	fmt.Fprintf(out, "Parameters:   pop=%d dead=%g generations=%d step=%g lambda=%g seed=%d target=%g\n",
		c.PopulationSize, c.DeadFraction, c.Generations, c.StepScale, c.Lambda, c.Seed, c.TargetFitness)
	fmt.Fprintf(out, "Best result:  %.6f (expected %g)\n", record.BestFitness, record.Expected)
	fmt.Fprintf(out, "Coefficients: %s\n", report.Coefficients(record.BestPosition))
	fmt.Fprintf(out, "Generations:  %d\n", record.Generations)
	fmt.Fprintf(out, "Evaluations:  %d\n", record.Evaluations)
	fmt.Fprintf(out, "Elapsed:      %s\n", report.Elapsed(record.Elapsed))
	return nil
}

func runDeleteResult(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.CloseIfSupported(s)

	if err := deleteRun(cmd, s, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
	return nil
}

func runCleanResults(cmd *cobra.Command, args []string) error {
	if keepLast == 0 && olderThanDays == 0 {
		return fmt.Errorf("must specify either --keep-last or --older-than")
	}

	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.CloseIfSupported(s)

	infos, err := s.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	out := cmd.OutOrStdout()
	toDelete := selectRunsForDeletion(infos, keepLast, olderThanDays, time.Now())
	if len(toDelete) == 0 {
		fmt.Fprintln(out, "No runs match deletion criteria.")
		return nil
	}

	fmt.Fprintf(out, "Found %d run(s) to delete:\n", len(toDelete))
	for _, info := range toDelete {
		fmt.Fprintf(out, "  - %s (%s, %s)\n",
			shortID(info.ID),
			info.Problem,
			info.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}

	if !forceClean {
		fmt.Fprint(out, "\nProceed with deletion? [y/N]: ")
		var response string
		fmt.Fscanln(cmd.InOrStdin(), &response)
		if response != "y" && response != "Y" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	deleted, failed := 0, 0
	for _, info := range toDelete {
		if err := deleteRun(cmd, s, info.ID); err != nil {
			slog.Error("Failed to delete run", "run_id", info.ID, "error", err)
			failed++
			continue
		}
		deleted++
	}

	fmt.Fprintf(out, "\nDeleted %d run(s), %d failed.\n", deleted, failed)
	return nil
}

// deleteRun removes the record and any trace left beside it.
func deleteRun(cmd *cobra.Command, s store.Store, runID string) error {
	if err := s.Delete(cmd.Context(), runID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("run %s not found", runID)
		}
		return err
	}
	if err := store.DeleteTrace(dataDir, runID); err != nil {
		return err
	}
	slog.Info("Deleted run", "run_id", runID)
	return nil
}

// selectRunsForDeletion applies the retention policy. A run is selected when
// it is older than olderThanDays or outside the keepLast newest runs.
func selectRunsForDeletion(infos []store.RunInfo, keepLast, olderThanDays int, now time.Time) []store.RunInfo {
	sorted := slices.Clone(infos)
	slices.SortStableFunc(sorted, func(a, b store.RunInfo) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	var cutoff time.Time
	if olderThanDays > 0 {
		cutoff = now.AddDate(0, 0, -olderThanDays)
	}

	var toDelete []store.RunInfo
	for i, info := range sorted {
		expired := olderThanDays > 0 && info.Timestamp.Before(cutoff)
		surplus := keepLast > 0 && i >= keepLast
		if expired || surplus {
			toDelete = append(toDelete, info)
		}
	}
	return toDelete
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12] + "..."
	}
	return id
}
