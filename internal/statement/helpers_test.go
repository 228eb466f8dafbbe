package statement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kudastat/kudastat/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func at(y, mo, d, h, mi, s int) time.Time {
	return time.Date(y, time.Month(mo), d, h, mi, s, 0, time.UTC)
}

// padRow returns a row with the given cells placed from column offset.
func padRow(offset int, cells ...model.Cell) []model.Cell {
	row := make([]model.Cell, offset, offset+len(cells))
	return append(row, cells...)
}

func blankGrid(n int) model.RawGrid {
	g := make(model.RawGrid, n)
	for i := range g {
		g[i] = []model.Cell{}
	}
	return g
}

var canonicalHeader = []model.Cell{"Date/Time", "Money In", "Money out", "Category", "To / From", "Description", "Balance"}

// kudaGrid is a 20-row export: metadata in rows 0-14, the header at row 15
// starting at column 2, and four transactions.
func kudaGrid() model.RawGrid {
	g := blankGrid(20)
	g[0] = padRow(1, "Kuda MFB")
	g[1] = padRow(1, "Account Statement")
	g[3] = padRow(1, "Account", nil, int64(1100050449))
	g[5] = padRow(1, "Opening Balance", nil, "₦0.00")
	g[6] = padRow(1, "Closing Balance", nil, "₦1,000.00")
	g[8] = padRow(1, "Summary")
	g[9] = padRow(1, "Money In", "₦1,500.00")
	g[10] = padRow(1, "Money Out", "₦500.00")
	g[15] = padRow(2, canonicalHeader...)
	g[16] = padRow(2, "10/01/20 21:12:38", "₦1,500.00", nil, "inward transfer", "Ada Obi", "kip:zenith/ada", "₦1,500.00")
	g[17] = padRow(2, "16/01/20 09:22:35", nil, "₦300.00", "outward transfer", "Shoprite", "groceries", "₦1,200.00")
	g[18] = padRow(2, "17/01/20 10:00:00", nil, "₦200.00", nil, "Kuda", "Savings top-up", "₦1,000.00")
	g[19] = padRow(2, "bad date", nil, nil, "airtime", "MTN", "airtime", "₦1,000.00")
	return g
}
