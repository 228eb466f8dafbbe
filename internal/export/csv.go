// Package export writes parsed statement rows as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/kudastat/kudastat/internal/model"
)

// DefaultFilename is the suggested name for a downloaded export.
const DefaultFilename = "bank_statement_filtered.csv"

const dateFormat = "2006-01-02 15:04:05"

// WriteCSV writes a header of column labels followed by one record per row
// of t. A nil or empty cols means every canonical column.
func WriteCSV(w io.Writer, t *model.StatementTable, cols []model.Column) error {
	if len(cols) == 0 {
		cols = allColumns()
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Label()
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range t.Rows {
		if err := cw.Write(MarshalRow(tx, cols)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRow renders the selected fields of tx.
func MarshalRow(tx model.Transaction, cols []model.Column) []string {
	row := make([]string, len(cols))
	for i, c := range cols {
		switch c {
		case model.ColDateTime:
			if tx.DateTime != nil {
				row[i] = tx.DateTime.Format(dateFormat)
			}
		case model.ColMoneyIn:
			row[i] = tx.MoneyIn.StringFixed(2)
		case model.ColMoneyOut:
			row[i] = tx.MoneyOut.StringFixed(2)
		case model.ColCategory:
			row[i] = tx.Category
		case model.ColCounterparty:
			row[i] = tx.Counterparty
		case model.ColDescription:
			row[i] = tx.Description
		case model.ColBalance:
			row[i] = tx.Balance.StringFixed(2)
		}
	}
	return row
}

// ParseColumns parses a comma-separated list of column names or labels,
// such as "DateTime,Money out,description". Blank input means every column.
func ParseColumns(list string) ([]model.Column, error) {
	if strings.TrimSpace(list) == "" {
		return allColumns(), nil
	}
	var cols []model.Column
	seen := make(map[model.Column]bool)
	for _, name := range strings.Split(list, ",") {
		c, ok := model.ParseColumn(name)
		if !ok {
			return nil, fmt.Errorf("unknown column %q", strings.TrimSpace(name))
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		cols = append(cols, c)
	}
	return cols, nil
}

func allColumns() []model.Column {
	return append([]model.Column(nil), model.Columns[:]...)
}
