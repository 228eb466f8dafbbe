package statement

import (
	"fmt"
	"strings"

	"github.com/kudastat/kudastat/internal/diaglog"
	"github.com/kudastat/kudastat/internal/model"
)

// HeaderMap maps a canonical column to its index in the header row.
type HeaderMap map[model.Column]int

// synonyms holds the lowercase header label accepted for each column.
var synonyms = [model.NumColumns]string{
	model.ColDateTime:     "date/time",
	model.ColMoneyIn:      "money in",
	model.ColMoneyOut:     "money out",
	model.ColCategory:     "category",
	model.ColCounterparty: "to / from",
	model.ColDescription:  "description",
	model.ColBalance:      "balance",
}

// Synonym returns the lowercase header label for c.
func Synonym(c model.Column) string {
	if !c.Valid() {
		return ""
	}
	return synonyms[c]
}

// MapColumns maps header cells to canonical columns. Cells whose trimmed
// lowercase text equals a synonym are mapped first; if any column is still
// missing, unmapped cells containing a synonym are tried next. A column keeps
// the first index it is mapped to.
//
// names has one entry per header cell: the canonical name for mapped cells
// and a positional "column_<i>" placeholder for the rest.
func MapColumns(header []model.Cell, log *diaglog.Log) (m HeaderMap, names []string) {
	m = make(HeaderMap, model.NumColumns)
	taken := make(map[int]bool, len(header))

	for i, cell := range header {
		s := lowerText(cell)
		for _, col := range model.Columns {
			if s != synonyms[col] {
				continue
			}
			if _, ok := m[col]; !ok {
				m[col] = i
				taken[i] = true
				log.Addf(diaglog.StageColumns, "exact", "%s -> column %d", col, i)
			}
			break
		}
	}

	if len(m) < model.NumColumns {
		for i, cell := range header {
			if taken[i] || IsBlank(cell) {
				continue
			}
			s := lowerText(cell)
			for _, col := range model.Columns {
				if _, ok := m[col]; ok {
					continue
				}
				if strings.Contains(s, synonyms[col]) {
					m[col] = i
					taken[i] = true
					log.Addf(diaglog.StageColumns, "substring", "%s -> column %d (%q)", col, i, CellText(cell))
					break
				}
			}
		}
	}

	names = make([]string, len(header))
	for i := range header {
		names[i] = fmt.Sprintf("column_%d", i)
	}
	for col, i := range m {
		names[i] = col.String()
	}

	for _, col := range model.Columns {
		if _, ok := m[col]; !ok {
			log.Addf(diaglog.StageColumns, "missing", "%s not found in header row", col)
		}
	}
	return m, names
}
