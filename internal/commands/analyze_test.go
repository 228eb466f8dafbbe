package commands_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kudastat/kudastat/internal/diaglog"
	"github.com/kudastat/kudastat/internal/importer/importertest"
)

func TestAnalyze_PrintsSummary(t *testing.T) {
	dir := t.TempDir()
	path := writeStatement(t, dir, importertest.KudaRows())

	out, err := runKudastat(t, dir, "analyze", path)
	require.NoError(t, err, out)

	assert.Contains(t, out, "Account Number:")
	assert.Contains(t, out, "1100050449")
	assert.Contains(t, out, "Total Money In")
	assert.Contains(t, out, "₦2,000.00")
	assert.Contains(t, out, "Top Recipients")
	assert.Contains(t, out, "Jan 2020")
	assert.Contains(t, out, "Spending by Category")
	assert.NotContains(t, out, "spend+save", "savings rows are excluded by default")
}

func TestAnalyze_Filters(t *testing.T) {
	dir := t.TempDir()
	path := writeStatement(t, dir, importertest.KudaRows())

	out, err := runKudastat(t, dir, "analyze", path, "--include-savings", "--category", "spend+save")
	require.NoError(t, err, out)
	assert.Contains(t, out, "(1 of 5 transactions)")

	out, err = runKudastat(t, dir, "analyze", path, "--from", "2020-02-01")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Feb 2020")
	assert.NotContains(t, out, "Jan 2020")
}

func TestAnalyze_BadDate(t *testing.T) {
	dir := t.TempDir()
	path := writeStatement(t, dir, importertest.KudaRows())

	out, err := runKudastat(t, dir, "analyze", path, "--from", "01/02/2020")
	require.Error(t, err)
	assert.Contains(t, out, "want YYYY-MM-DD")

	out, err = runKudastat(t, dir, "analyze", path, "--from", "2020-02-01", "--to", "2020-01-01")
	require.Error(t, err)
	assert.Contains(t, out, "is before")
}

func TestAnalyze_Diagnostics(t *testing.T) {
	dir := t.TempDir()
	path := writeStatement(t, dir, importertest.KudaRows())
	diagPath := filepath.Join(dir, "logs", "diagnostics.csv")

	out, err := runKudastat(t, dir, "analyze", path, "--diagnostics", "--diag-out", diagPath)
	require.NoError(t, err, out)
	assert.Contains(t, out, "[header] matched row 15: strategy=positional")

	entries, err := diaglog.Read(diagPath)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestAnalyze_HeaderNotFound(t *testing.T) {
	dir := t.TempDir()
	path := writeStatement(t, dir, [][]any{{"Kuda MFB"}, {"nothing", "useful"}})

	out, err := runKudastat(t, dir, "analyze", path)
	require.Error(t, err)
	assert.Contains(t, out, "Rows found in the file:")
	assert.Contains(t, out, `Row 1 (non-empty cells: 2): ["nothing", "useful"]`)
	assert.Contains(t, out, "Expected a header row like:")
	assert.Contains(t, out, "To / From")
	assert.Contains(t, out, "missing expected columns")
	assert.Equal(t, 1, strings.Count(out, "Error:"), out)
}

func TestAnalyze_Unreadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a spreadsheet"), 0o644))

	out, err := runKudastat(t, dir, "analyze", path)
	require.Error(t, err)
	assert.Contains(t, out, "unreadable spreadsheet")
}

func TestAnalyze_ExplicitConfigMustExist(t *testing.T) {
	dir := t.TempDir()
	path := writeStatement(t, dir, importertest.KudaRows())

	out, err := runKudastat(t, dir, "--config", filepath.Join(dir, "missing.yaml"), "analyze", path)
	require.Error(t, err)
	assert.Contains(t, out, "loading config")
}

func TestAnalyze_ConfigCurrency(t *testing.T) {
	dir := t.TempDir()
	path := writeStatement(t, dir, importertest.KudaRows())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kudastat.yaml"), []byte("report:\n  currency_symbol: \"NGN \"\n"), 0o644))

	out, err := runKudastat(t, dir, "analyze", path)
	require.NoError(t, err, out)
	assert.Contains(t, out, "NGN 2,000.00")
}

func TestExport_WritesCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeStatement(t, dir, importertest.KudaRows())
	outPath := filepath.Join(dir, "out.csv")

	out, err := runKudastat(t, dir, "export", path, "--columns", "DateTime,Description", "-o", outPath)
	require.NoError(t, err, out)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"Date/Time", "Description"}, records[0])
	assert.Equal(t, []string{"2020-01-10 21:12:38", "kip:zenith/ada"}, records[1])
}

func TestExport_Stdout(t *testing.T) {
	dir := t.TempDir()
	path := writeStatement(t, dir, importertest.KudaRows())

	out, err := runKudastat(t, dir, "export", path, "--include-savings", "--columns", "description")
	require.NoError(t, err, out)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "Description", lines[0])
	assert.Contains(t, lines, "Savings top-up")
}

func TestExport_UnknownColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeStatement(t, dir, importertest.KudaRows())

	out, err := runKudastat(t, dir, "export", path, "--columns", "Amount")
	require.Error(t, err)
	assert.Contains(t, out, `unknown column "Amount"`)
}
