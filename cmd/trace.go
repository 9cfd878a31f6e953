package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/cwbudde/cuckoofit/internal/store"
	"github.com/spf13/cobra"
)

var traceTail int

var traceCmd = &cobra.Command{
	Use:   "trace <run-id>",
	Short: "Print the per-generation trace of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrace,
}

func init() {
	traceCmd.Flags().IntVar(&traceTail, "tail", 0, "Print only the last N generations (0 = all)")
	rootCmd.AddCommand(traceCmd)
}

func runTrace(cmd *cobra.Command, args []string) error {
	reader, err := store.NewTraceReader(dataDir, args[0])
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no trace for run %s (was it run with --trace?)", args[0])
	} else if err != nil {
		return err
	}
	defer reader.Close()

	entries, err := reader.ReadAll()
	if err != nil {
		return err
	}
	if traceTail > 0 && len(entries) > traceTail {
		entries = entries[len(entries)-traceTail:]
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GENERATION\tBEST\tWORST\tEVALUATIONS")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%d\n", e.Generation, e.BestFitness, e.WorstFitness, e.Evaluations)
	}
	return w.Flush()
}
