// Package importertest builds spreadsheet fixtures for tests.
package importertest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Workbook returns the bytes of an .xlsx file whose first sheet holds rows.
// nil values leave the cell empty.
func Workbook(tb testing.TB, rows [][]any) []byte {
	tb.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(tb, err)
			require.NoError(tb, f.SetCellValue(sheet, cell, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(tb, err)
	return buf.Bytes()
}

// KudaRows is a statement export: account details and a summary block in
// rows 0-14, the header at row 15 starting in column C, then five
// transactions, one of them a savings transfer.
func KudaRows() [][]any {
	rows := make([][]any, 21)
	rows[0] = []any{nil, "Kuda MFB"}
	rows[1] = []any{nil, "Account Statement"}
	rows[3] = []any{nil, "Account", nil, int64(1100050449)}
	rows[6] = []any{nil, "Closing Balance", nil, "₦1,000.00"}
	rows[8] = []any{nil, "Summary"}
	rows[9] = []any{nil, "Money In", "₦2,000.00"}
	rows[10] = []any{nil, "Money Out", "₦1,000.00"}
	rows[15] = []any{nil, nil, "Date/Time", "Money In", "Money out", "Category", "To / From", "Description", "Balance"}
	rows[16] = []any{nil, nil, "10/01/20 21:12:38", "₦1,500.00", nil, "inward transfer", "Ada Obi", "kip:zenith/ada", "₦1,500.00"}
	rows[17] = []any{nil, nil, "16/01/20 09:22:35", nil, "₦300.00", "outward transfer", "Shoprite", "groceries", "₦1,200.00"}
	rows[18] = []any{nil, nil, "17/01/20 10:00:00", nil, "₦200.00", "spend+save", "Kuda", "Savings top-up", "₦1,000.00"}
	rows[19] = []any{nil, nil, "02/02/20 08:00:00", "₦500.00", nil, "inward transfer", "Ada Obi", "refund", "₦1,500.00"}
	rows[20] = []any{nil, nil, "05/02/20 18:30:00", nil, "₦500.00", "airtime", "MTN", "airtime", "₦1,000.00"}
	return rows
}

// KudaTypedRows is KudaRows with real date cells and numeric amounts, as
// exports saved from a spreadsheet application look. The account ends
// overdrawn.
func KudaTypedRows() [][]any {
	at := func(mo time.Month, d, h, mi, s int) time.Time {
		return time.Date(2020, mo, d, h, mi, s, 0, time.UTC)
	}
	rows := KudaRows()
	rows[16] = []any{nil, nil, at(time.January, 10, 21, 12, 38), 1500.0, nil, "inward transfer", "Ada Obi", "kip:zenith/ada", 1500.0}
	rows[17] = []any{nil, nil, at(time.January, 16, 9, 22, 35), nil, 300.0, "outward transfer", "Shoprite", "groceries", 1200.0}
	rows[18] = []any{nil, nil, at(time.January, 17, 10, 0, 0), nil, 200.0, "spend+save", "Kuda", "Savings top-up", 1000.0}
	rows[19] = []any{nil, nil, at(time.February, 2, 8, 0, 0), 500.0, nil, "inward transfer", "Ada Obi", "refund", 1500.0}
	rows[20] = []any{nil, nil, at(time.February, 5, 18, 30, 0), nil, 1750.75, "airtime", "MTN", "airtime", -250.75}
	return rows
}

// KudaWorkbook is Workbook(tb, KudaRows()).
func KudaWorkbook(tb testing.TB) []byte {
	tb.Helper()
	return Workbook(tb, KudaRows())
}
