package analysis

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kudastat/kudastat/internal/diaglog"
	"github.com/kudastat/kudastat/internal/importer"
	"github.com/kudastat/kudastat/internal/importer/importertest"
	"github.com/kudastat/kudastat/internal/logging"
	"github.com/kudastat/kudastat/internal/statement"
)

func newService() *Service {
	return NewService(nil, logging.Discard())
}

func TestAnalyze(t *testing.T) {
	log := diaglog.New()
	res, err := newService().Analyze(bytes.NewReader(importertest.KudaWorkbook(t)), Options{}, log)
	require.NoError(t, err)

	assert.False(t, res.Plain)
	assert.Equal(t, 5, res.Parsed.Len())
	assert.Equal(t, 4, res.Table.Len(), "savings row is dropped by default")
	require.NotNil(t, res.Summary.Account.AccountNumber)
	assert.Equal(t, "1100050449", *res.Summary.Account.AccountNumber)
	assert.Equal(t, []string{"airtime", "inward transfer", "outward transfer", "spend+save"}, res.Categories)

	m := res.Summary.Metrics
	assert.Equal(t, "2000", m.TotalIn.String())
	assert.Equal(t, "800", m.TotalOut.String())
	assert.Equal(t, "1000", m.CurrentBalance.String())

	require.Len(t, res.Summary.Monthly, 2)
	assert.Equal(t, "Jan 2020", res.Summary.Monthly[0].Label)

	assert.NotEmpty(t, log.Find(diaglog.StageRead, "opened"))
	assert.NotEmpty(t, log.Find(diaglog.StageFilter, "savings"))
}

func TestAnalyze_TypedCells(t *testing.T) {
	wb := importertest.Workbook(t, importertest.KudaTypedRows())
	res, err := newService().Analyze(bytes.NewReader(wb), Options{IncludeSavings: true}, nil)
	require.NoError(t, err)
	require.Equal(t, 5, res.Table.Len())

	for i, want := range []time.Time{
		time.Date(2020, 1, 10, 21, 12, 38, 0, time.UTC),
		time.Date(2020, 1, 16, 9, 22, 35, 0, time.UTC),
		time.Date(2020, 1, 17, 10, 0, 0, 0, time.UTC),
		time.Date(2020, 2, 2, 8, 0, 0, 0, time.UTC),
		time.Date(2020, 2, 5, 18, 30, 0, 0, time.UTC),
	} {
		got := res.Table.Rows[i].DateTime
		require.NotNil(t, got, "row %d", i)
		assert.True(t, want.Equal(*got), "row %d: got %s want %s", i, got, want)
	}

	m := res.Summary.Metrics
	assert.Equal(t, "2000", m.TotalIn.String())
	assert.Equal(t, "2250.75", m.TotalOut.String())
	assert.Equal(t, "-250.75", m.CurrentBalance.String())

	require.Len(t, res.Summary.Monthly, 2)
	assert.Equal(t, "Jan 2020", res.Summary.Monthly[0].Label)
	assert.Equal(t, "Feb 2020", res.Summary.Monthly[1].Label)
}

func TestAnalyze_Options(t *testing.T) {
	opts := Options{
		IncludeSavings: true,
		From:           time.Date(2020, 1, 16, 0, 0, 0, 0, time.UTC),
		To:             time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC),
		Category:       "spend+save",
	}
	res, err := newService().Analyze(bytes.NewReader(importertest.KudaWorkbook(t)), opts, nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.Table.Len())
	assert.Equal(t, "Savings top-up", res.Table.Rows[0].Description)
}

func TestAnalyze_SavingsKeyword(t *testing.T) {
	res, err := newService().Analyze(bytes.NewReader(importertest.KudaWorkbook(t)), Options{SavingsKeyword: "airtime"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Table.Len())
	for _, tx := range res.Table.Rows {
		assert.NotEqual(t, "airtime", tx.Description)
	}
}

func TestAnalyze_HeaderNotFound(t *testing.T) {
	wb := importertest.Workbook(t, [][]any{{"hello"}, {"just", "words"}})
	log := diaglog.New()
	_, err := newService().Analyze(bytes.NewReader(wb), Options{}, log)
	require.Error(t, err)

	var hnf *statement.HeaderNotFoundError
	require.True(t, errors.As(err, &hnf))
	assert.Len(t, hnf.Rows, 2)
	assert.ErrorIs(t, err, statement.ErrMissingColumns)
	assert.NotEmpty(t, log.Find(diaglog.StageColumns, "plain_missing"))
}

func TestAnalyze_Unreadable(t *testing.T) {
	_, err := newService().Analyze(bytes.NewReader([]byte("definitely not a spreadsheet")), Options{}, nil)
	assert.ErrorIs(t, err, importer.ErrUnreadableFile)
	assert.ErrorContains(t, err, "reading statement")
}

func TestAnalyzeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.xlsx")
	require.NoError(t, os.WriteFile(path, importertest.KudaWorkbook(t), 0o644))

	res, err := newService().AnalyzeFile(path, Options{TopRecipients: 1}, nil)
	require.NoError(t, err)
	require.Len(t, res.Summary.TopRecipients, 1)
	assert.Equal(t, "MTN", res.Summary.TopRecipients[0].Name)

	_, err = newService().AnalyzeFile(filepath.Join(t.TempDir(), "missing.xlsx"), Options{}, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
