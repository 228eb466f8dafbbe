package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kudastat/kudastat/internal/analysis"
	"github.com/kudastat/kudastat/internal/report"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeRow(tw *tabwriter.Writer, cells ...string) {
	fmt.Fprintf(tw, "  %s\n", strings.Join(cells, "\t"))
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "not available"
	}
	return *s
}

func renderSummary(w io.Writer, res *analysis.Result, symbol string) {
	s := res.Summary

	fmt.Fprintln(w, "Account Information")
	tw := newTable(w)
	writeRow(tw, "Account Number:", orNA(s.Account.AccountNumber))
	writeRow(tw, "Closing Balance:", orNA(s.Account.ClosingBalance))
	writeRow(tw, "Summary Money In:", orNA(s.Account.SummaryMoneyIn))
	writeRow(tw, "Summary Money Out:", orNA(s.Account.SummaryMoneyOut))
	tw.Flush()

	m := s.Metrics
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Key Financial Metrics (%d of %d transactions)\n", m.Transactions, res.Parsed.Len())
	tw = newTable(w)
	writeRow(tw, "Total Money In", report.FormatAmount(m.TotalIn, symbol))
	writeRow(tw, "Total Money Out", report.FormatAmount(m.TotalOut, symbol))
	writeRow(tw, "Net Change", report.FormatAmount(m.Net, symbol), report.FormatPercent(m.NetPercent))
	writeRow(tw, "Current Balance", report.FormatAmount(m.CurrentBalance, symbol))
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Top Recipients")
	if len(s.TopRecipients) == 0 {
		fmt.Fprintln(w, "  none")
	} else {
		tw = newTable(w)
		writeRow(tw, "RECIPIENT", "TOTAL", "PAYMENTS", "CATEGORY")
		for _, r := range s.TopRecipients {
			writeRow(tw, r.Name, report.FormatAmount(r.Total, symbol), strconv.Itoa(r.Count), r.Category)
		}
		tw.Flush()
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Monthly Financial Patterns")
	tw = newTable(w)
	writeRow(tw, "MONTH", "MONEY IN", "MONEY OUT")
	for _, mo := range s.Monthly {
		writeRow(tw, mo.Label, report.FormatAmount(mo.In, symbol), report.FormatAmount(mo.Out, symbol))
	}
	tw.Flush()

	renderCategories(w, "Spending by Category", s.Categories.Spending, symbol)
	renderCategories(w, "Income by Category", s.Categories.Income, symbol)
}

func renderCategories(w io.Writer, title string, totals []report.CategoryTotal, symbol string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	if len(totals) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}
	tw := newTable(w)
	for _, c := range totals {
		writeRow(tw, c.Category, report.FormatAmount(c.Total, symbol))
	}
	tw.Flush()
}
