package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kudastat/kudastat/internal/diaglog"
	"github.com/kudastat/kudastat/internal/statement"
)

func newAnalyzeCommand(a *app) *cobra.Command {
	var (
		filters     filterFlags
		top         int
		showDiag    bool
		diagOutPath string
	)

	cmd := &cobra.Command{
		Use:   "analyze <statement.xlsx>",
		Short: "Summarize a statement export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := filters.options(a.cfg)
			if err != nil {
				return err
			}
			if top > 0 {
				opts.TopRecipients = top
			}

			out := cmd.OutOrStdout()
			log := diaglog.New()
			res, err := a.service().AnalyzeFile(args[0], opts, log)

			if diagOutPath != "" {
				if werr := diaglog.Append(diagOutPath, log.Entries()); werr != nil {
					a.logger.Warn("failed to write diagnostics", "path", diagOutPath, "error", werr)
				}
			}
			if showDiag {
				defer printDiagnostics(out, log)
			}

			if err != nil {
				var hnf *statement.HeaderNotFoundError
				if errors.As(err, &hnf) {
					printHeaderHelp(out, hnf)
				}
				return err
			}

			if res.Plain {
				fmt.Fprintln(out, "No statement header found; read the file as a plain table.")
				fmt.Fprintln(out)
			}
			renderSummary(out, res, a.cfg.Report.CurrencySymbol)
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().IntVar(&top, "top", 0, "number of recipients to list (default from config)")
	cmd.Flags().BoolVar(&showDiag, "diagnostics", false, "print the parser's diagnostic log")
	cmd.Flags().StringVar(&diagOutPath, "diag-out", "", "append the diagnostic log to this CSV file")

	return cmd
}

func printDiagnostics(w io.Writer, log *diaglog.Log) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Diagnostics")
	for _, e := range log.Entries() {
		fmt.Fprintf(w, "  %s\n", e)
	}
}

// printHeaderHelp shows what the file looked like next to what was
// expected, so a format mismatch can be diagnosed. The error itself is
// reported by cobra.
func printHeaderHelp(w io.Writer, hnf *statement.HeaderNotFoundError) {
	fmt.Fprintln(w, "Rows found in the file:")
	for _, r := range hnf.Rows {
		fmt.Fprintf(w, "  %s\n", r)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Expected a header row like:")
	tw := newTable(w)
	writeRow(tw, statement.ExpectedHeaders()...)
	for _, row := range statement.ExpectedSample() {
		writeRow(tw, row...)
	}
	tw.Flush()
}
