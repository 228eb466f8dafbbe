// Package analysis runs one uploaded statement through the reader, the
// parser and the report filters.
package analysis

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/kudastat/kudastat/internal/diaglog"
	"github.com/kudastat/kudastat/internal/importer"
	"github.com/kudastat/kudastat/internal/model"
	"github.com/kudastat/kudastat/internal/report"
	"github.com/kudastat/kudastat/internal/statement"
)

// Service parses and summarizes statements. It keeps no state between
// calls, so one Service can serve concurrent uploads.
type Service struct {
	readers *importer.Registry
	logger  *slog.Logger
}

// NewService creates an analysis Service. A nil registry means
// importer.DefaultRegistry.
func NewService(readers *importer.Registry, logger *slog.Logger) *Service {
	if readers == nil {
		readers = importer.DefaultRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{readers: readers, logger: logger.With("component", "analysis")}
}

// Options selects the rows that are summarized.
type Options struct {
	IncludeSavings bool
	SavingsKeyword string
	From, To       time.Time // zero is open
	Category       string    // empty or report.AllCategories for every category
	TopRecipients  int
}

// Result is a parsed statement and its summary.
type Result struct {
	// Parsed is the full cleaned table, before any filter.
	Parsed *model.StatementTable
	// Table is Parsed after the savings, date and category filters.
	Table *model.StatementTable
	// Categories lists every category in Parsed, for choosing a filter.
	Categories []string
	Summary    report.Summary
	// Plain is set when the file had no statement header and was read as an
	// ordinary table instead.
	Plain bool
}

// Parse reads src and extracts its transaction table. When no header row
// can be found it falls back to reading the first row as column labels; if
// that fails too the error wraps both the *statement.HeaderNotFoundError and
// the *statement.MissingColumnsError.
func (s *Service) Parse(src io.ReadSeeker, log *diaglog.Log) (table *model.StatementTable, plain bool, err error) {
	grid, err := s.readers.Open(src, log)
	if err != nil {
		return nil, false, fmt.Errorf("reading statement: %w", err)
	}

	table, err = statement.Parse(grid, log)
	if err == nil {
		s.logger.Debug("parsed statement", "rows", table.Len(), "account", deref(table.Metadata.AccountNumber))
		return table, false, nil
	}
	if !errors.Is(err, statement.ErrHeaderNotFound) {
		return nil, false, fmt.Errorf("parsing statement: %w", err)
	}

	s.logger.Info("no statement header found, trying plain table", "rows", len(grid))
	table, plainErr := statement.ParsePlain(grid, log)
	if plainErr != nil {
		return nil, false, fmt.Errorf("parsing statement: %w", errors.Join(err, plainErr))
	}
	return table, true, nil
}

// Analyze parses src and summarizes the rows selected by opts.
func (s *Service) Analyze(src io.ReadSeeker, opts Options, log *diaglog.Log) (*Result, error) {
	parsed, plain, err := s.Parse(src, log)
	if err != nil {
		return nil, err
	}

	filtered := Apply(parsed, opts, log)
	s.logger.Debug("filtered statement", "rows", parsed.Len(), "kept", filtered.Len())

	return &Result{
		Parsed:     parsed,
		Table:      filtered,
		Categories: report.Categories(parsed),
		Summary:    report.Summarize(filtered, opts.TopRecipients),
		Plain:      plain,
	}, nil
}

// AnalyzeFile is Analyze on the file at path.
func (s *Service) AnalyzeFile(path string, opts Options, log *diaglog.Log) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	return s.Analyze(f, opts, log)
}

// Apply runs the savings, date range and category filters over t.
func Apply(t *model.StatementTable, opts Options, log *diaglog.Log) *model.StatementTable {
	out := t
	if !opts.IncludeSavings {
		out = statement.FilterOutSavings(out, opts.SavingsKeyword)
		log.Addf(diaglog.StageFilter, "savings", "dropped %d rows", t.Len()-out.Len())
	}
	if !opts.From.IsZero() || !opts.To.IsZero() {
		n := out.Len()
		out = report.FilterDateRange(out, opts.From, opts.To)
		log.Addf(diaglog.StageFilter, "date_range", "dropped %d rows", n-out.Len())
	}
	if opts.Category != "" && opts.Category != report.AllCategories {
		n := out.Len()
		out = report.FilterCategory(out, opts.Category)
		log.Addf(diaglog.StageFilter, "category", "kept %d of %d rows in %q", out.Len(), n, opts.Category)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
