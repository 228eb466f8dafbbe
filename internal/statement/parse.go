package statement

import (
	"fmt"

	"github.com/kudastat/kudastat/internal/diaglog"
	"github.com/kudastat/kudastat/internal/model"
)

// Parse extracts the transaction table and account metadata from grid.
// The returned table has its money and date fields normalized. The only
// error is a *HeaderNotFoundError.
func Parse(grid model.RawGrid, log *diaglog.Log) (*model.StatementTable, error) {
	headerIdx, err := LocateHeader(grid, log)
	if err != nil {
		return nil, err
	}

	m, names := MapColumns(grid.Row(headerIdx), log)
	log.AddRow(diaglog.StageColumns, "names", headerIdx, fmt.Sprint(names))

	meta := ExtractMetadata(grid, headerIdx, log)
	if meta.Empty() {
		log.Add(diaglog.StageMetadata, "none", "no account information above the header row")
	}

	t := BuildTable(grid, headerIdx, m, meta, log)
	t = CleanMoneyColumns(t, log)
	return ParseDates(t, log), nil
}
