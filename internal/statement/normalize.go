package statement

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kudastat/kudastat/internal/diaglog"
	"github.com/kudastat/kudastat/internal/model"
)

// dateLayouts are tried in order; the first that parses wins. Day and month
// are unpadded so both "1/2/2020" and "01/02/2020" are accepted.
var dateLayouts = []string{
	"2/1/2006 15:04",
	"2/1/06 15:04:05",
	"2/1/2006 15:04:05",
	"2006-01-02 15:04:05",
	"2/1/06 15:04",
	"2-1-2006",
	"2/1/2006",
	"2/1/06",
}

func parseDateText(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeMoney converts a cell to a decimal amount. Blank cells are zero
// and numeric cells pass through. Text keeps only its digits and decimal
// points, so a leading minus sign is dropped and negative text amounts
// cannot be represented. Text that still fails to parse is logged and
// becomes zero.
//
// col is used only to label log entries.
func NormalizeMoney(c model.Cell, col model.Column, log *diaglog.Log) decimal.Decimal {
	return normalizeMoneyRow(c, col, diaglog.NoRow, log)
}

func normalizeMoneyRow(c model.Cell, col model.Column, row int, log *diaglog.Log) decimal.Decimal {
	if IsBlank(c) {
		return decimal.Zero
	}
	switch v := c.(type) {
	case int64:
		return decimal.NewFromInt(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case float64:
		if math.IsInf(v, 0) {
			log.AddRow(diaglog.StageNormalize, "coerce_failed", row,
				fmt.Sprintf("%s: %v is not a finite amount, using 0", col, v))
			return decimal.Zero
		}
		return decimal.NewFromFloat(v)
	}

	raw := CellText(c)
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		log.AddRow(diaglog.StageNormalize, "coerce_failed", row,
			fmt.Sprintf("%s: cannot convert %q, using 0", col, raw))
		return decimal.Zero
	}
	return d
}

// NormalizeDateTime parses a cell as a statement timestamp. Time cells pass
// through. It returns nil for blank, "nan" and "NaT" cells and for text that
// matches no layout.
func NormalizeDateTime(c model.Cell, log *diaglog.Log) *time.Time {
	return normalizeDateTimeRow(c, diaglog.NoRow, log)
}

func normalizeDateTimeRow(c model.Cell, row int, log *diaglog.Log) (out *time.Time) {
	defer func() {
		if r := recover(); r != nil {
			log.AddRow(diaglog.StageNormalize, "coerce_failed", row, fmt.Sprintf("date: %v", r))
			out = nil
		}
	}()

	if t, ok := c.(time.Time); ok {
		return &t
	}
	s := strings.TrimSpace(CellText(c))
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "nat") {
		return nil
	}
	t, ok := parseDateText(s)
	if !ok {
		log.AddRow(diaglog.StageNormalize, "coerce_failed", row, fmt.Sprintf("date: no layout matches %q", s))
		return nil
	}
	return &t
}
