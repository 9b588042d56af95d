package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/livefire2015/ez-receivables/src/services"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFilterCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.Flags().AddFlagSet(rootCmd.PersistentFlags())
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestFilterFromFlags(t *testing.T) {
	cmd := newFilterCommand(t, "--status", "overdue", "-q", "maria", "--from", "2024-01-01", "--to", "2024-01-31")

	filter, err := filterFromFlags(cmd)
	require.NoError(t, err)
	require.NoError(t, filter.Normalize())

	assert.Equal(t, "overdue", filter.Status)
	assert.Equal(t, "maria", filter.Query)
	assert.Equal(t, models.DateFilterDueDate, filter.DateMode)
	assert.Equal(t, "2024-01-01", models.FormatDate(*filter.From))
	assert.Equal(t, "2024-01-31", models.FormatDate(*filter.To))
}

func TestFilterFromFlagsRejectsBadDate(t *testing.T) {
	cmd := newFilterCommand(t, "--from", "01/02/2024")

	_, err := filterFromFlags(cmd)
	assert.Error(t, err)
}

func TestPrintReport(t *testing.T) {
	report := models.NewBatchReport(models.BatchBulkReceive, time.Now())
	report.Items = []models.BatchItem{
		{ReceivableID: "r1", ReferenceCode: "PDV-12", Amount: decimal.NewFromInt(100), Result: models.ItemSucceeded},
		{ReceivableID: "r2", ReferenceCode: "OS-7", Amount: decimal.NewFromInt(50), Result: models.ItemFailed, Error: "timeout", Ambiguous: true},
	}
	report.Ineligible = []string{"r3"}
	report.Tally()

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "partially_succeeded")
	assert.Contains(t, out, "Processed 1, errored 1, skipped 0, total 100.00")
	assert.Contains(t, out, "Not eligible: r3")
	assert.Contains(t, out, "outcome unknown")
}

func TestPrintSectionsSkipsEmpty(t *testing.T) {
	today := time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)
	list := []models.Receivable{
		{
			ID:             "r1",
			ClientName:     "Maria",
			OriginalAmount: decimal.NewFromInt(80),
			PendingAmount:  decimal.NewFromInt(80),
			DueDate:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
			StoredStatus:   models.StatusPending,
			Origin:         models.Origin{Kind: models.OriginSale, ID: "12"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, printSections(&buf, services.PartitionSections(list, today), today))

	out := buf.String()
	assert.Contains(t, out, "Overdue (1)")
	assert.Contains(t, out, "PDV-12")
	assert.NotContains(t, out, "Pending (")
}
