package main

import (
	"context"
	"fmt"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var payCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Record a payment on one receivable",
	Example: `  # Partial payment by card
  arledger pay 7f9c2e --value 150.00 --method credit_card`,
	Args: cobra.ExactArgs(1),
	RunE: runPay,
}

var interestCmd = &cobra.Command{
	Use:   "interest <id>",
	Short: "Apply one-off interest to a receivable",
	Example: `  # 2% of the pending amount
  arledger interest 7f9c2e --type percent --value 2

  # Fixed late fee
  arledger interest 7f9c2e --type fixed --value 15.00`,
	Args: cobra.ExactArgs(1),
	RunE: runInterest,
}

func init() {
	rootCmd.AddCommand(payCmd)
	rootCmd.AddCommand(interestCmd)

	payCmd.Flags().String("value", "", "Amount paid")
	payCmd.Flags().String("method", string(models.PaymentMethodCash), "Payment method")
	payCmd.Flags().String("notes", "", "Payment notes")
	_ = payCmd.MarkFlagRequired("value")

	interestCmd.Flags().String("type", string(models.InterestTypePercent), "Interest type: percent or fixed")
	interestCmd.Flags().String("value", "", "Percentage or fixed amount")
	_ = interestCmd.MarkFlagRequired("value")
}

func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return value, nil
}

func runPay(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	value, err := decimalFlag(cmd, "value")
	if err != nil {
		return err
	}
	method, _ := cmd.Flags().GetString("method")
	notes, _ := cmd.Flags().GetString("notes")

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.engine.Load(ctx); err != nil {
		return err
	}

	result, err := a.engine.ReceivePayment(ctx, args[0], models.PaymentRequest{
		Value:  value,
		Method: models.PaymentMethod(method),
		Notes:  notes,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputJSON(cmd) {
		return writeJSON(out, result)
	}
	fmt.Fprintf(out, "Payment recorded: %s -> %s\n", result.PreviousStatus, result.NewStatus)
	printReceivable(out, &result.Receivable, a.engine.Today())
	return nil
}

func runInterest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	value, err := decimalFlag(cmd, "value")
	if err != nil {
		return err
	}
	kind, _ := cmd.Flags().GetString("type")

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.engine.Load(ctx); err != nil {
		return err
	}

	updated, err := a.engine.ApplyManualInterest(ctx, args[0], models.InterestRequest{
		Type:  models.InterestType(kind),
		Value: value,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputJSON(cmd) {
		return writeJSON(out, updated)
	}
	fmt.Fprintln(out, "Interest applied")
	printReceivable(out, updated, a.engine.Today())
	return nil
}
