package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kudastat/kudastat/internal/model"
)

// DefaultTopRecipients is how many recipients TopRecipients returns when
// asked for zero or fewer.
const DefaultTopRecipients = 100

// UnknownMonth labels rows without a date in Monthly.
const UnknownMonth = "Unknown"

var hundred = decimal.NewFromInt(100)

// Metrics are the headline totals of a table.
type Metrics struct {
	Transactions int             `json:"transactions"`
	TotalIn      decimal.Decimal `json:"total_in"`
	TotalOut     decimal.Decimal `json:"total_out"`
	Net          decimal.Decimal `json:"net"`
	// NetPercent is Net as a percentage of TotalIn, zero when nothing came in.
	NetPercent decimal.Decimal `json:"net_percent"`
	// CurrentBalance is the balance on the last row.
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// ComputeMetrics sums money in and out over t.
func ComputeMetrics(t *model.StatementTable) Metrics {
	m := Metrics{Transactions: t.Len()}
	for _, tx := range t.Rows {
		m.TotalIn = m.TotalIn.Add(tx.MoneyIn)
		m.TotalOut = m.TotalOut.Add(tx.MoneyOut)
	}
	m.Net = m.TotalIn.Sub(m.TotalOut)
	if m.TotalIn.IsPositive() {
		m.NetPercent = m.Net.Div(m.TotalIn).Mul(hundred).Round(1)
	}
	if n := t.Len(); n > 0 {
		m.CurrentBalance = t.Rows[n-1].Balance
	}
	return m
}

// Recipient is the money sent to one counterparty.
type Recipient struct {
	Name     string          `json:"name"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
	Category string          `json:"category"` // category of the first payment
}

// TopRecipients groups outgoing rows by counterparty and returns the n
// largest by total, ties broken by name.
func TopRecipients(t *model.StatementTable, n int) []Recipient {
	if n <= 0 {
		n = DefaultTopRecipients
	}
	index := make(map[string]int)
	var out []Recipient
	for _, tx := range t.Rows {
		if !tx.MoneyOut.IsPositive() {
			continue
		}
		i, ok := index[tx.Counterparty]
		if !ok {
			i = len(out)
			index[tx.Counterparty] = i
			out = append(out, Recipient{Name: tx.Counterparty, Category: categoryOf(tx)})
		}
		out[i].Total = out[i].Total.Add(tx.MoneyOut)
		out[i].Count++
	}
	sort.SliceStable(out, func(a, b int) bool {
		if c := out[a].Total.Cmp(out[b].Total); c != 0 {
			return c > 0
		}
		return out[a].Name < out[b].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Month is the money in and out over one calendar month.
type Month struct {
	Label string          `json:"label"` // "Jan 2006", or UnknownMonth
	In    decimal.Decimal `json:"in"`
	Out   decimal.Decimal `json:"out"`
	first *time.Time
}

// Monthly groups t by calendar month in chronological order. Undated rows
// are grouped under UnknownMonth, last.
func Monthly(t *model.StatementTable) []Month {
	index := make(map[string]int)
	var out []Month
	for _, tx := range t.Rows {
		label := UnknownMonth
		if tx.DateTime != nil {
			label = tx.DateTime.Format("Jan 2006")
		}
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, Month{Label: label})
		}
		m := &out[i]
		m.In = m.In.Add(tx.MoneyIn)
		m.Out = m.Out.Add(tx.MoneyOut)
		if tx.DateTime != nil && (m.first == nil || tx.DateTime.Before(*m.first)) {
			m.first = tx.DateTime
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		fa, fb := out[a].first, out[b].first
		switch {
		case fa == nil:
			return false
		case fb == nil:
			return true
		}
		return fa.Before(*fb)
	})
	return out
}

// CategoryTotal is the money moved under one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// Breakdown splits totals by category for spending and income.
type Breakdown struct {
	Spending []CategoryTotal `json:"spending"`
	Income   []CategoryTotal `json:"income"`
}

// CategoryBreakdown totals money out and money in per category, largest
// first.
func CategoryBreakdown(t *model.StatementTable) Breakdown {
	return Breakdown{
		Spending: byCategory(t, func(tx model.Transaction) decimal.Decimal { return tx.MoneyOut }),
		Income:   byCategory(t, func(tx model.Transaction) decimal.Decimal { return tx.MoneyIn }),
	}
}

func byCategory(t *model.StatementTable, amount func(model.Transaction) decimal.Decimal) []CategoryTotal {
	index := make(map[string]int)
	var out []CategoryTotal
	for _, tx := range t.Rows {
		a := amount(tx)
		if !a.IsPositive() {
			continue
		}
		c := categoryOf(tx)
		i, ok := index[c]
		if !ok {
			i = len(out)
			index[c] = i
			out = append(out, CategoryTotal{Category: c})
		}
		out[i].Total = out[i].Total.Add(a)
	}
	sort.SliceStable(out, func(a, b int) bool {
		if c := out[a].Total.Cmp(out[b].Total); c != 0 {
			return c > 0
		}
		return out[a].Category < out[b].Category
	})
	return out
}
