package statement

import (
	"strings"

	"github.com/kudastat/kudastat/internal/diaglog"
	"github.com/kudastat/kudastat/internal/model"
)

// BuildTable assembles the rows below headerIdx into a table of the seven
// canonical columns. Columns missing from m are nil in every row. Row order
// is preserved and nothing is deduplicated.
//
// Only the raw cells and text fields are filled; run CleanMoneyColumns and
// ParseDates to derive the typed fields.
func BuildTable(grid model.RawGrid, headerIdx int, m HeaderMap, meta model.StatementMetadata, log *diaglog.Log) *model.StatementTable {
	for _, col := range model.Columns {
		if _, ok := m[col]; !ok {
			log.Addf(diaglog.StageBuild, "synthesized", "%s added as an empty column", col)
		}
	}

	start := headerIdx + 1
	rows := make([]model.Transaction, 0, max(len(grid)-start, 0))
	for i := start; i < len(grid); i++ {
		var tx model.Transaction
		for col, idx := range m {
			tx.Raw[col] = grid.At(i, idx)
		}
		fillText(&tx)
		rows = append(rows, tx)
	}
	log.Addf(diaglog.StageBuild, "rows", "%d transaction rows below header row %d", len(rows), headerIdx)

	return &model.StatementTable{Rows: rows, Metadata: meta}
}

func fillText(tx *model.Transaction) {
	tx.Category = textField(tx.Raw[model.ColCategory])
	if tx.Category == "" {
		tx.Category = model.DefaultCategory
	}
	tx.Counterparty = textField(tx.Raw[model.ColCounterparty])
	tx.Description = textField(tx.Raw[model.ColDescription])
}

func textField(c model.Cell) string {
	if IsBlank(c) {
		return ""
	}
	return strings.TrimSpace(CellText(c))
}
