package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/livefire2015/ez-receivables/src/services"
)

var sectionTitles = map[models.ReceivableStatus]string{
	models.StatusOverdue:         "Overdue",
	models.StatusPending:         "Pending",
	models.StatusPartiallyPaid:   "Partially paid",
	models.StatusInstallmentPlan: "Installment plan",
	models.StatusPaid:            "Received",
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSections(w io.Writer, sections []services.Section, today time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, section := range sections {
		if section.Count() == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s (%d)\t\t\t\t\t%s\n", sectionTitles[section.Status], section.Count(), section.Total.StringFixed(2))
		fmt.Fprintln(tw, "  ID\tREF\tCLIENT\tORIGIN\tDUE\tAMOUNT")
		for i := range section.Receivables {
			r := &section.Receivables[i]
			due := "-"
			if !r.DueDate.IsZero() {
				due = models.FormatDate(r.DueDate)
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.ReferenceCode(), r.ClientName, r.Origin.Badge(), due,
				r.SelectionAmount(today).StringFixed(2))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func printSummary(w io.Writer, summary models.PaymentSummary) {
	fmt.Fprintf(w, "Payments: %d over %d receivables, total %s, average %s\n",
		summary.TotalPayments, summary.Receivables,
		summary.TotalAmount.StringFixed(2), summary.AveragePayment.StringFixed(2))
	if summary.LastPaymentDate != nil {
		fmt.Fprintf(w, "Last payment: %s on %s\n",
			summary.LastPaymentAmount.StringFixed(2), models.FormatDate(*summary.LastPaymentDate))
	}
}

func printReport(w io.Writer, report *models.BatchReport) error {
	fmt.Fprintf(w, "Batch %s (%s): %s\n", report.ID, report.Operation, report.Outcome)
	fmt.Fprintf(w, "Processed %d, errored %d, skipped %d, total %s\n",
		report.Processed, report.Errored, report.Skipped, report.Total.StringFixed(2))
	if len(report.Ineligible) > 0 {
		fmt.Fprintf(w, "Not eligible: %s\n", strings.Join(report.Ineligible, ", "))
	}
	if report.ReloadError != "" {
		fmt.Fprintf(w, "Warning: list could not be refreshed: %s\n", report.ReloadError)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, item := range report.Items {
		note := item.Error
		if item.Ambiguous {
			note += " (outcome unknown, re-check before retrying)"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
			item.ReceivableID, item.ReferenceCode, item.Amount.StringFixed(2), item.Result, note)
	}
	return tw.Flush()
}

func printReceivable(w io.Writer, r *models.Receivable, today time.Time) {
	fmt.Fprintf(w, "%s %s  %s\n", r.ReferenceCode(), r.ClientName, r.Status(today))
	fmt.Fprintf(w, "  original %s  pending %s  interest %s\n",
		r.OriginalAmount.StringFixed(2), r.PendingAmount.StringFixed(2), r.InterestAccrued.StringFixed(2))
	if !r.DueDate.IsZero() {
		fmt.Fprintf(w, "  due %s\n", models.FormatDate(r.DueDate))
	}
}

func printPlan(w io.Writer, plan *models.InstallmentPlan) error {
	fmt.Fprintf(w, "Split of %s for %s\n", plan.SplitAmount.StringFixed(2), plan.ParentID)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, inst := range plan.Installments {
		fmt.Fprintf(tw, "  %d/%d\t%s\t%s\n",
			inst.Number, len(plan.Installments), models.FormatDate(inst.DueDate), inst.Amount.StringFixed(2))
	}
	return tw.Flush()
}
