package importer

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kudastat/kudastat/internal/model"
)

// XLSXReader reads the first sheet of an Office Open XML workbook.
type XLSXReader struct{}

// Name returns the reader name.
func (x *XLSXReader) Name() string { return "xlsx" }

// Read returns the stored cell values of the first sheet, ignoring number
// formats. Numbers become int64 or float64, numbers formatted as dates or
// times become time.Time, and empty cells are nil.
func (x *XLSXReader) Read(r io.ReadSeeker) (model.RawGrid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("no sheets found in workbook")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	styles := newDateStyles(f)
	grid := make(model.RawGrid, len(rows))
	for i, row := range rows {
		cells := toCells(row)
		for j, c := range cells {
			if !isNumber(c) {
				continue
			}
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
			}
			if t, ok := styles.asTime(sheet, name, c); ok {
				cells[j] = t
			}
		}
		grid[i] = cells
	}
	return grid, nil
}

func toCells(row []string) []model.Cell {
	cells := make([]model.Cell, len(row))
	for j, v := range row {
		if v == "" {
			continue
		}
		cells[j] = parseValue(v)
	}
	return cells
}

// numberPattern matches plain decimal numbers as spreadsheets store them.
// It excludes words such as NaN and Inf that strconv would also accept.
var numberPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// parseValue returns int64 for integers, float64 for decimals, or s itself.
// Digit strings with a leading zero (account numbers, references) stay text.
func parseValue(s string) model.Cell {
	if !numberPattern.MatchString(s) {
		return s
	}
	if len(s) > 1 && s[0] == '0' && s[1] != '.' {
		return s
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func isNumber(c model.Cell) bool {
	switch c.(type) {
	case int64, float64:
		return true
	}
	return false
}

// dateStyles remembers which cell styles carry a date or time number
// format.
type dateStyles struct {
	f        *excelize.File
	date1904 bool
	known    map[int]bool
}

func newDateStyles(f *excelize.File) *dateStyles {
	d := &dateStyles{f: f, known: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

// asTime converts the serial number c to a time when the cell at name is
// formatted as a date or time.
func (d *dateStyles) asTime(sheet, name string, c model.Cell) (time.Time, bool) {
	idx, err := d.f.GetCellStyle(sheet, name)
	if err != nil {
		return time.Time{}, false
	}
	isDate, ok := d.known[idx]
	if !ok {
		style, err := d.f.GetStyle(idx)
		isDate = err == nil && isDateStyle(style)
		d.known[idx] = isDate
	}
	if !isDate {
		return time.Time{}, false
	}

	var serial float64
	switch v := c.(type) {
	case int64:
		serial = float64(v)
	case float64:
		serial = v
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return time.Time{}, false
	}
	// Serial numbers carry float error; statements record whole seconds.
	return t.Round(time.Second), true
}

// builtinDateFormats are the built-in number format ids that render dates
// or times, including the East Asian ones.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

func isDateStyle(s *excelize.Style) bool {
	if s == nil {
		return false
	}
	if s.CustomNumFmt != nil {
		return isDateFormatCode(*s.CustomNumFmt)
	}
	return builtinDateFormats[s.NumFmt]
}

var (
	elapsedTime  = regexp.MustCompile(`\[(h+|m+|s+)\]`)
	quotedText   = regexp.MustCompile(`"[^"]*"`)
	bracketed    = regexp.MustCompile(`\[[^\]]*\]`)
	escapedChars = regexp.MustCompile(`[\\_*].`)
)

// isDateFormatCode reports whether a custom number format code renders a
// date or time. Literal text, colors, locales and padding are ignored.
func isDateFormatCode(code string) bool {
	lc := strings.ToLower(code)
	if lc == "general" {
		return false
	}
	// Elapsed time sections such as [h]:mm are times.
	if elapsedTime.MatchString(lc) {
		return true
	}
	lc = quotedText.ReplaceAllString(lc, "")
	lc = bracketed.ReplaceAllString(lc, "")
	lc = escapedChars.ReplaceAllString(lc, "")
	return strings.ContainsAny(lc, "ymdhs")
}
