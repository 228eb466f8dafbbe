package statement

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kudastat/kudastat/internal/model"
)

// Kind is the coarse classification of a single cell.
type Kind int

const (
	KindEmpty Kind = iota
	KindHeader
	KindDate
	KindMoney
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindHeader:
		return "header"
	case KindDate:
		return "date"
	case KindMoney:
		return "money"
	case KindText:
		return "text"
	}
	return "unknown"
}

var currencySymbols = []string{"₦", "$", "£", "€"}

// Classify reports whether c looks like a header label, a date, a money
// value or free text.
func Classify(c model.Cell) Kind {
	switch {
	case IsBlank(c):
		return KindEmpty
	case IsHeaderLabel(c):
		return KindHeader
	case LooksLikeDate(c):
		return KindDate
	case LooksLikeMoney(c):
		return KindMoney
	}
	return KindText
}

// cellTimeLayout renders time cells. It is one of dateLayouts, so time
// cells still look like dates to the header strategies.
const cellTimeLayout = "2006-01-02 15:04:05"

// CellText returns the text form of a cell. nil is "".
func CellText(c model.Cell) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(cellTimeLayout)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		if math.IsNaN(v) {
			return "nan"
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(c)
}

// IsBlank reports whether c is nil, whitespace, or the literal "nan".
func IsBlank(c model.Cell) bool {
	s := strings.TrimSpace(CellText(c))
	return s == "" || strings.EqualFold(s, "nan")
}

// IsNumeric reports whether c already holds a number.
func IsNumeric(c model.Cell) bool {
	switch v := c.(type) {
	case int64, int:
		return true
	case float64:
		return !math.IsNaN(v)
	}
	return false
}

// LooksLikeMoney reports whether c is a number, contains a currency symbol,
// or is all digits once thousands and decimal separators are removed.
func LooksLikeMoney(c model.Cell) bool {
	if IsNumeric(c) {
		return true
	}
	s := strings.TrimSpace(CellText(c))
	for _, sym := range currencySymbols {
		if strings.Contains(s, sym) {
			return true
		}
	}
	return allDigits(strings.NewReplacer(",", "", ".", "").Replace(s))
}

// LooksLikeDate reports whether c parses under one of the statement date
// layouts.
func LooksLikeDate(c model.Cell) bool {
	_, ok := parseDateText(CellText(c))
	return ok
}

// IsHeaderLabel reports whether c names one of the canonical columns,
// exactly or as a substring.
func IsHeaderLabel(c model.Cell) bool {
	s := lowerText(c)
	if s == "" {
		return false
	}
	for _, col := range model.Columns {
		if strings.Contains(s, synonyms[col]) {
			return true
		}
	}
	return false
}

func lowerText(c model.Cell) string {
	return strings.ToLower(strings.TrimSpace(CellText(c)))
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// joinedText is the lowercase text of a row's non-blank cells joined by
// single spaces.
func joinedText(row []model.Cell) string {
	parts := make([]string, 0, len(row))
	for _, c := range row {
		if IsBlank(c) {
			continue
		}
		parts = append(parts, CellText(c))
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// describeRow renders a row's non-blank cells for the diagnostic dump.
func describeRow(i int, row []model.Cell) (string, bool) {
	var vals []string
	for _, c := range row {
		if IsBlank(c) {
			continue
		}
		vals = append(vals, strconv.Quote(CellText(c)))
	}
	if len(vals) == 0 {
		return "", false
	}
	return fmt.Sprintf("Row %d (non-empty cells: %d): [%s]", i, len(vals), strings.Join(vals, ", ")), true
}
