package main

import (
	"context"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List receivables grouped by status",
	Example: `  # Everything overdue for one client
  arledger list --status overdue -q "Maria"

  # Received in March
  arledger list --status received --date-field last_payment_date --from 2024-03-01 --to 2024-03-31`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("summary", false, "Print a payment summary of the filtered list")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.load(ctx, cmd); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sections := a.engine.GetSections()
	if outputJSON(cmd) {
		return writeJSON(out, sections)
	}

	if err := printSections(out, sections, a.engine.Today()); err != nil {
		return err
	}
	if summary, _ := cmd.Flags().GetBool("summary"); summary {
		printSummary(out, a.engine.PaymentSummary())
	}
	return nil
}
