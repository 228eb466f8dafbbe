package statement

import (
	"strings"

	"github.com/kudastat/kudastat/internal/diaglog"
	"github.com/kudastat/kudastat/internal/model"
)

const (
	// accountLookahead is how far past the "Account" label the number may sit.
	accountLookahead = 2
	balanceLookahead = 2
	// summaryDepth is how many rows below "Summary" are searched for totals.
	summaryDepth = 4
)

// window is a position within a row with bounded lookahead and lookbehind.
type window struct {
	cells []model.Cell
	pos   int
}

// next returns the first non-blank cell within n positions after pos.
func (w window) next(n int) (model.Cell, bool) {
	for _, c := range w.ahead(n) {
		if !IsBlank(c) {
			return c, true
		}
	}
	return nil, false
}

// prev returns the cell just before pos if it is non-blank.
func (w window) prev() (model.Cell, bool) {
	if w.pos <= 0 || w.pos-1 >= len(w.cells) {
		return nil, false
	}
	c := w.cells[w.pos-1]
	return c, !IsBlank(c)
}

// ahead returns up to n cells following pos.
func (w window) ahead(n int) []model.Cell {
	start := w.pos + 1
	if start >= len(w.cells) {
		return nil
	}
	return w.cells[start:min(start+n, len(w.cells))]
}

// ExtractMetadata scans the rows above headerIdx for the account number,
// closing balance and summary totals. Each field is independent and absent
// when nothing matches. Later matches replace earlier ones.
func ExtractMetadata(grid model.RawGrid, headerIdx int, log *diaglog.Log) model.StatementMetadata {
	var md model.StatementMetadata
	limit := min(headerIdx, len(grid))

	for i := 0; i < limit; i++ {
		row := grid[i]
		text := joinedText(row)

		if strings.Contains(text, "account") {
			if v, ok := accountNumber(row); ok {
				md.AccountNumber = &v
				log.AddRow(diaglog.StageMetadata, "account_number", i, v)
			}
		}

		if strings.Contains(text, "balance") || strings.Contains(text, "closing") {
			if v, ok := closingBalance(row); ok {
				md.ClosingBalance = &v
				log.AddRow(diaglog.StageMetadata, "closing_balance", i, v)
			}
		}

		if strings.Contains(text, "summary") {
			end := min(i+1+summaryDepth, limit)
			for j := i + 1; j < end; j++ {
				if v, ok := labelledValue(grid[j], "money in"); ok {
					md.SummaryMoneyIn = &v
					log.AddRow(diaglog.StageMetadata, "summary_money_in", j, v)
				}
				if v, ok := labelledValue(grid[j], "money out"); ok {
					md.SummaryMoneyOut = &v
					log.AddRow(diaglog.StageMetadata, "summary_money_out", j, v)
				}
			}
		}
	}
	return md
}

func accountNumber(row []model.Cell) (string, bool) {
	for j, c := range row {
		if !strings.Contains(lowerText(c), "account") {
			continue
		}
		w := window{cells: row, pos: j}
		if v, ok := w.next(accountLookahead); ok {
			return strings.TrimSpace(CellText(v)), true
		}
		if v, ok := w.prev(); ok && allDigits(strings.TrimSpace(CellText(v))) {
			return strings.TrimSpace(CellText(v)), true
		}
	}
	return "", false
}

func closingBalance(row []model.Cell) (string, bool) {
	var (
		found string
		ok    bool
	)
	for j, c := range row {
		s := lowerText(c)
		if !strings.Contains(s, "balance") && !strings.Contains(s, "closing") {
			continue
		}
		for _, v := range (window{cells: row, pos: j}).ahead(balanceLookahead) {
			if !IsBlank(v) && LooksLikeMoney(v) {
				found, ok = strings.TrimSpace(CellText(v)), true
				break
			}
		}
	}
	return found, ok
}

// labelledValue returns the cell after the last cell containing label.
func labelledValue(row []model.Cell, label string) (string, bool) {
	var (
		found string
		ok    bool
	)
	for j, c := range row {
		if !strings.Contains(lowerText(c), label) {
			continue
		}
		if v, hit := (window{cells: row, pos: j}).next(1); hit {
			found, ok = strings.TrimSpace(CellText(v)), true
		}
	}
	return found, ok
}
