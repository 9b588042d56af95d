package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/spf13/cobra"
)

var receiveCmd = &cobra.Command{
	Use:   "receive [id...]",
	Short: "Settle selected receivables in full",
	Long: `Records a full payment for every selected receivable that still owes
something. Receivables that are already paid are reported as not eligible.
Accounts are settled one at a time; interrupting stops before the next one.`,
	Example: `  # Settle two receivables by pix
  arledger receive 7f9c2e 81ab04 --method pix

  # Settle everything overdue for a client
  arledger receive --section overdue -q "Maria" --method cash`,
	RunE: runReceive,
}

func init() {
	rootCmd.AddCommand(receiveCmd)

	receiveCmd.Flags().String("section", "", "Select every visible receivable with this status (or all)")
	receiveCmd.Flags().String("method", string(models.PaymentMethodCash), "Payment method")
	receiveCmd.Flags().String("notes", "", "Notes recorded on every payment")
}

func runReceive(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.load(ctx, cmd); err != nil {
		return err
	}
	if err := selectTargets(cmd, a.engine, args); err != nil {
		return err
	}

	method, _ := cmd.Flags().GetString("method")
	notes, _ := cmd.Flags().GetString("notes")

	report, err := a.engine.RunBulkReceive(ctx, models.BulkReceiveConfig{
		Method: models.PaymentMethod(method),
		Notes:  notes,
	})
	if err != nil {
		return err
	}

	if outputJSON(cmd) {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	return printReport(cmd.OutOrStdout(), report)
}
