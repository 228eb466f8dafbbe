package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kudastat/kudastat/internal/analysis"
	"github.com/kudastat/kudastat/internal/config"
)

const flagDateLayout = "2006-01-02"

// filterFlags are the row selection flags shared by analyze and export.
type filterFlags struct {
	includeSavings bool
	from, to       string
	category       string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.includeSavings, "include-savings", false, "keep rows whose description mentions savings")
	cmd.Flags().StringVar(&f.from, "from", "", "first day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "last day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.category, "category", "", "only include this category")
}

func (f *filterFlags) options(cfg *config.Config) (analysis.Options, error) {
	opts := analysis.Options{
		IncludeSavings: f.includeSavings,
		SavingsKeyword: cfg.Report.SavingsKeyword,
		Category:       f.category,
		TopRecipients:  cfg.Report.TopRecipients,
	}
	var err error
	if opts.From, err = parseFlagDate("from", f.from); err != nil {
		return opts, err
	}
	if opts.To, err = parseFlagDate("to", f.to); err != nil {
		return opts, err
	}
	if !opts.From.IsZero() && !opts.To.IsZero() && opts.To.Before(opts.From) {
		return opts, fmt.Errorf("--to %s is before --from %s", f.to, f.from)
	}
	return opts, nil
}

func parseFlagDate(name, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(flagDateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: want YYYY-MM-DD", name, v)
	}
	return t, nil
}
