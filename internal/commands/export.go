package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kudastat/kudastat/internal/diaglog"
	"github.com/kudastat/kudastat/internal/export"
)

func newExportCommand(a *app) *cobra.Command {
	var (
		filters    filterFlags
		columns    string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "export <statement.xlsx>",
		Short: "Write the cleaned transactions as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := filters.options(a.cfg)
			if err != nil {
				return err
			}
			cols, err := export.ParseColumns(columns)
			if err != nil {
				return err
			}

			res, err := a.service().AnalyzeFile(args[0], opts, diaglog.New())
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("creating output: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := export.WriteCSV(w, res.Table, cols); err != nil {
				return fmt.Errorf("writing CSV: %w", err)
			}
			if outputPath != "" {
				a.logger.Info("exported transactions", "rows", res.Table.Len(), "path", outputPath)
			}
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVar(&columns, "columns", "", "comma-separated columns to include (default all)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")

	return cmd
}
