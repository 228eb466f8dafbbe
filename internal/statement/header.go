package statement

import (
	"strings"

	"github.com/kudastat/kudastat/internal/diaglog"
	"github.com/kudastat/kudastat/internal/model"
)

// The bank's export puts "Date/Time" at C16.
const (
	conventionalHeaderRow = 15
	conventionalDateCol   = 2
)

// dumpRowLimit bounds the diagnostic dump attached to HeaderNotFoundError.
const dumpRowLimit = 30

// headerStrategy is one heuristic for finding the header row. match returns
// the index of the first row it accepts.
type headerStrategy struct {
	name  string
	match func(grid model.RawGrid) (int, bool)
}

// headerStrategies run in order; a later one only runs if every earlier one
// found nothing.
var headerStrategies = []headerStrategy{
	{"positional", positionalHeader},
	{"exact", exactHeader},
	{"co-occurrence", cooccurrenceHeader},
	{"loose", looseHeader},
}

// LocateHeader returns the index of the row holding the transaction table's
// column headers, or a *HeaderNotFoundError.
func LocateHeader(grid model.RawGrid, log *diaglog.Log) (int, error) {
	for _, s := range headerStrategies {
		if idx, ok := s.match(grid); ok {
			log.AddRow(diaglog.StageHeader, "matched", idx, "strategy="+s.name)
			return idx, nil
		}
		log.Add(diaglog.StageHeader, "no_match", "strategy="+s.name)
	}

	rows := dumpRows(grid)
	for _, r := range rows {
		log.Add(diaglog.StageHeader, "dump", r)
	}
	return -1, &HeaderNotFoundError{Rows: rows}
}

func positionalHeader(grid model.RawGrid) (int, bool) {
	if len(grid) <= conventionalHeaderRow {
		return 0, false
	}
	if lowerText(grid.At(conventionalHeaderRow, conventionalDateCol)) == "date/time" {
		return conventionalHeaderRow, true
	}
	return 0, false
}

func exactHeader(grid model.RawGrid) (int, bool) {
	return firstRow(grid, func(row []model.Cell) bool {
		for _, c := range row {
			if lowerText(c) == "date/time" {
				return true
			}
		}
		return false
	})
}

func cooccurrenceHeader(grid model.RawGrid) (int, bool) {
	return firstRow(grid, func(row []model.Cell) bool {
		var hasDate, hasMoney bool
		for _, c := range row {
			s := lowerText(c)
			hasDate = hasDate || strings.Contains(s, "date")
			hasMoney = hasMoney || strings.Contains(s, "money")
		}
		return hasDate && hasMoney
	})
}

func looseHeader(grid model.RawGrid) (int, bool) {
	return firstRow(grid, func(row []model.Cell) bool {
		text := joinedText(row)
		hasDate := strings.Contains(text, "date") || strings.Contains(text, "time")
		hasAmount := strings.Contains(text, "money") || strings.Contains(text, "balance")
		return hasDate && hasAmount
	})
}

func firstRow(grid model.RawGrid, accept func(row []model.Cell) bool) (int, bool) {
	for i, row := range grid {
		if accept(row) {
			return i, true
		}
	}
	return 0, false
}

func dumpRows(grid model.RawGrid) []string {
	var rows []string
	for i := 0; i < len(grid) && i < dumpRowLimit; i++ {
		if s, ok := describeRow(i, grid[i]); ok {
			rows = append(rows, s)
		}
	}
	return rows
}
