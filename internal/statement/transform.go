package statement

import (
	"strings"

	"github.com/kudastat/kudastat/internal/diaglog"
	"github.com/kudastat/kudastat/internal/model"
)

// DefaultSavingsKeyword is the description text FilterOutSavings drops when
// no keyword is given.
const DefaultSavingsKeyword = "savings"

// CleanMoneyColumns returns a copy of t with MoneyIn, MoneyOut and Balance
// derived from the raw cells.
func CleanMoneyColumns(t *model.StatementTable, log *diaglog.Log) *model.StatementTable {
	out := t.Clone()
	for i := range out.Rows {
		tx := &out.Rows[i]
		tx.MoneyIn = normalizeMoneyRow(tx.Raw[model.ColMoneyIn], model.ColMoneyIn, i, log)
		tx.MoneyOut = normalizeMoneyRow(tx.Raw[model.ColMoneyOut], model.ColMoneyOut, i, log)
		tx.Balance = normalizeMoneyRow(tx.Raw[model.ColBalance], model.ColBalance, i, log)
	}
	return out
}

// ParseDates returns a copy of t with DateTime derived from the raw cells.
// Unparseable dates are nil.
func ParseDates(t *model.StatementTable, log *diaglog.Log) *model.StatementTable {
	out := t.Clone()
	var failed int
	for i := range out.Rows {
		tx := &out.Rows[i]
		tx.DateTime = normalizeDateTimeRow(tx.Raw[model.ColDateTime], i, log)
		if tx.DateTime == nil {
			failed++
		}
	}
	if failed > 0 {
		log.Addf(diaglog.StageNormalize, "dates", "%d of %d rows have no date", failed, len(out.Rows))
	}
	return out
}

// FilterOutSavings returns a table without the rows whose description
// contains keyword, compared case-insensitively. An empty keyword means
// DefaultSavingsKeyword. Rows with no description are kept.
func FilterOutSavings(t *model.StatementTable, keyword string) *model.StatementTable {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		keyword = DefaultSavingsKeyword
	}
	rows := make([]model.Transaction, 0, t.Len())
	for _, tx := range t.Rows {
		if strings.Contains(strings.ToLower(tx.Description), keyword) {
			continue
		}
		rows = append(rows, tx)
	}
	return t.WithRows(rows)
}
