package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory is used when a row carries no category.
const DefaultCategory = "Unknown"

// Transaction is one row of a parsed statement.
type Transaction struct {
	DateTime     *time.Time      // nil when the source date could not be parsed
	MoneyIn      decimal.Decimal // never negative, see statement.NormalizeMoney
	MoneyOut     decimal.Decimal // never negative
	Category     string
	Counterparty string
	Description  string
	Balance      decimal.Decimal

	// Raw holds the source cells in canonical column order. Columns that
	// were not found in the header row are nil.
	Raw [NumColumns]Cell
}

// StatementMetadata is best-effort account information recovered from the
// rows above the transaction table. Absent fields are nil.
type StatementMetadata struct {
	AccountNumber   *string
	ClosingBalance  *string
	SummaryMoneyIn  *string
	SummaryMoneyOut *string
}

// Empty reports whether no metadata field was recovered.
func (m StatementMetadata) Empty() bool {
	return m.AccountNumber == nil && m.ClosingBalance == nil &&
		m.SummaryMoneyIn == nil && m.SummaryMoneyOut == nil
}

// StatementTable is the parsed transaction table plus its metadata.
// Transforms return new tables; a table is not modified after it is built.
type StatementTable struct {
	Rows     []Transaction
	Metadata StatementMetadata
}

// Len returns the number of rows.
func (t *StatementTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Clone returns a copy of t whose row slice can be modified independently.
func (t *StatementTable) Clone() *StatementTable {
	rows := make([]Transaction, len(t.Rows))
	copy(rows, t.Rows)
	return &StatementTable{Rows: rows, Metadata: t.Metadata}
}

// WithRows returns a new table with t's metadata and the given rows.
func (t *StatementTable) WithRows(rows []Transaction) *StatementTable {
	return &StatementTable{Rows: rows, Metadata: t.Metadata}
}
