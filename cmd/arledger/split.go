package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/spf13/cobra"
)

var splitCmd = &cobra.Command{
	Use:   "split [id...]",
	Short: "Split selected receivables into installments",
	Long: `Moves the pending balance of every selected receivable into equal
installments. The last installment absorbs the rounding remainder. Splits run
concurrently and every account is attempted even when others fail.`,
	Example: `  # Preview a 3-way monthly split
  arledger split 7f9c2e --installments 3 --interval 30 --first-due 2024-02-01 --preview

  # Split everything pending into 2 installments
  arledger split --section pending --installments 2 --interval 15 --first-due 2024-02-01`,
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().String("section", "", "Select every visible receivable with this status (or all)")
	splitCmd.Flags().Int("installments", 2, "Number of installments")
	splitCmd.Flags().Int("interval", 30, "Days between installments")
	splitCmd.Flags().String("first-due", "", "First due date (YYYY-MM-DD, default: interval days from today)")
	splitCmd.Flags().String("method", "", "Expected payment method")
	splitCmd.Flags().String("notes", "", "Notes on the created installments")
	splitCmd.Flags().Bool("preview", false, "Print the plans without calling the ledger")
}

func runSplit(cmd *cobra.Command, args []string) error {
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

	flags := cmd.Flags()
	n, _ := flags.GetInt("installments")
	interval, _ := flags.GetInt("interval")
	firstDueStr, _ := flags.GetString("first-due")
	method, _ := flags.GetString("method")
	notes, _ := flags.GetString("notes")

	firstDue := models.AddDays(a.engine.Today(), interval)
	if firstDueStr != "" {
		firstDue, err = models.ParseDate(firstDueStr)
		if err != nil {
			return fmt.Errorf("invalid --first-due: %w", err)
		}
	}

	planCfg := models.InstallmentPlanConfig{
		NumInstallments: n,
		IntervalDays:    interval,
		FirstDueDate:    firstDue,
		PaymentMethod:   models.PaymentMethod(method),
		Notes:           notes,
	}

	out := cmd.OutOrStdout()
	if preview, _ := flags.GetBool("preview"); preview {
		for _, id := range a.engine.Selection() {
			plan, err := a.engine.PreviewSplit(id, planCfg)
			if err != nil {
				fmt.Fprintf(out, "%s: %v\n", id, err)
				continue
			}
			if err := printPlan(out, plan); err != nil {
				return err
			}
		}
		return nil
	}

	report, err := a.engine.RunBulkSplit(ctx, planCfg)
	if err != nil {
		return err
	}

	if outputJSON(cmd) {
		return writeJSON(out, report)
	}
	return printReport(out, report)
}
