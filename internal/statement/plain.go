package statement

import (
	"strings"

	"github.com/kudastat/kudastat/internal/diaglog"
	"github.com/kudastat/kudastat/internal/model"
)

// ParsePlain reads grid as an ordinary table whose first row holds the
// canonical column labels. It is the fallback for files that Parse cannot
// locate a header in. If any column is missing it returns a
// *MissingColumnsError.
func ParsePlain(grid model.RawGrid, log *diaglog.Log) (*model.StatementTable, error) {
	header := grid.Row(0)

	m := make(HeaderMap, model.NumColumns)
	found := make([]string, 0, len(header))
	for i, c := range header {
		label := strings.TrimSpace(CellText(c))
		if label == "" {
			continue
		}
		found = append(found, label)
		for _, col := range model.Columns {
			if _, ok := m[col]; !ok && label == col.Label() {
				m[col] = i
				break
			}
		}
	}

	var missing []model.Column
	for _, col := range model.Columns {
		if _, ok := m[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		log.Addf(diaglog.StageColumns, "plain_missing", "%d columns missing from first row", len(missing))
		return nil, &MissingColumnsError{Missing: missing, Found: found}
	}
	log.Add(diaglog.StageColumns, "plain", "using first row as header")

	t := BuildTable(grid, 0, m, model.StatementMetadata{}, log)
	t = CleanMoneyColumns(t, log)
	return ParseDates(t, log), nil
}
