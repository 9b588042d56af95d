package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var batchesCmd = &cobra.Command{
	Use:   "batches",
	Short: "Show recent bulk operations from the batch journal",
	RunE:  runBatches,
}

func init() {
	rootCmd.AddCommand(batchesCmd)
	batchesCmd.Flags().Int("limit", 20, "Number of batches to show")
}

func runBatches(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.journal == nil {
		return errors.New("batch journal is disabled; set database.enabled")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	reports, err := a.journal.RecentBatches(ctx, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputJSON(cmd) {
		return writeJSON(out, reports)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tOPERATION\tSTARTED\tOUTCOME\tOK\tFAILED\tSKIPPED\tTOTAL")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.ID, r.Operation, r.StartedAt.Format("2006-01-02 15:04"), r.Outcome,
			r.Processed, r.Errored, r.Skipped, r.Total.StringFixed(2))
	}
	return tw.Flush()
}
