package model

import "strings"

// Column identifies one of the seven canonical statement columns.
type Column int

const (
	ColDateTime Column = iota
	ColMoneyIn
	ColMoneyOut
	ColCategory
	ColCounterparty
	ColDescription
	ColBalance
)

// NumColumns is the size of the canonical column set.
const NumColumns = 7

// Columns lists the canonical columns in output order.
var Columns = [NumColumns]Column{
	ColDateTime,
	ColMoneyIn,
	ColMoneyOut,
	ColCategory,
	ColCounterparty,
	ColDescription,
	ColBalance,
}

var columnNames = [NumColumns]string{
	"DateTime", "MoneyIn", "MoneyOut", "Category", "Counterparty", "Description", "Balance",
}

// Labels as they appear in the bank's export header row.
var columnLabels = [NumColumns]string{
	"Date/Time", "Money In", "Money out", "Category", "To / From", "Description", "Balance",
}

// String returns the canonical identifier, e.g. "MoneyIn".
func (c Column) String() string {
	if !c.Valid() {
		return "Column(?)"
	}
	return columnNames[c]
}

// Label returns the header label used by the bank export, e.g. "Money out".
func (c Column) Label() string {
	if !c.Valid() {
		return ""
	}
	return columnLabels[c]
}

// Valid reports whether c is one of the canonical columns.
func (c Column) Valid() bool {
	return c >= 0 && int(c) < NumColumns
}

// ParseColumn resolves a canonical identifier or a header label,
// case-insensitively.
func ParseColumn(s string) (Column, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Columns {
		if strings.EqualFold(s, columnNames[c]) || strings.EqualFold(s, columnLabels[c]) {
			return c, true
		}
	}
	return 0, false
}
