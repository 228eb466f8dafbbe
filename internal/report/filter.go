// Package report derives display summaries from a parsed statement table.
// Every function is pure: tables are read, never modified.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/kudastat/kudastat/internal/model"
)

// AllCategories selects every category in FilterCategory.
const AllCategories = "All"

// FilterDateRange keeps the rows dated within [from, to], compared by
// calendar day. A zero bound is open. When both bounds are zero t is
// returned as is; otherwise undated rows are dropped.
func FilterDateRange(t *model.StatementTable, from, to time.Time) *model.StatementTable {
	if from.IsZero() && to.IsZero() {
		return t
	}
	lo, hi := day(from), day(to)
	rows := make([]model.Transaction, 0, t.Len())
	for _, tx := range t.Rows {
		if tx.DateTime == nil {
			continue
		}
		d := day(*tx.DateTime)
		if !from.IsZero() && d.Before(lo) {
			continue
		}
		if !to.IsZero() && d.After(hi) {
			continue
		}
		rows = append(rows, tx)
	}
	return t.WithRows(rows)
}

// FilterCategory keeps the rows whose category equals category. An empty
// category or AllCategories keeps everything.
func FilterCategory(t *model.StatementTable, category string) *model.StatementTable {
	category = strings.TrimSpace(category)
	if category == "" || category == AllCategories {
		return t
	}
	rows := make([]model.Transaction, 0, t.Len())
	for _, tx := range t.Rows {
		if tx.Category == category {
			rows = append(rows, tx)
		}
	}
	return t.WithRows(rows)
}

// Categories returns the distinct categories in t, sorted.
func Categories(t *model.StatementTable) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tx := range t.Rows {
		c := categoryOf(tx)
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// DateBounds returns the earliest and latest dated rows in t. ok is false if
// no row has a date.
func DateBounds(t *model.StatementTable) (first, last time.Time, ok bool) {
	for _, tx := range t.Rows {
		if tx.DateTime == nil {
			continue
		}
		if !ok || tx.DateTime.Before(first) {
			first = *tx.DateTime
		}
		if !ok || tx.DateTime.After(last) {
			last = *tx.DateTime
		}
		ok = true
	}
	return first, last, ok
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func categoryOf(tx model.Transaction) string {
	if tx.Category == "" {
		return model.DefaultCategory
	}
	return tx.Category
}
