package importer

import (
	"errors"
	"fmt"
	"io"

	"github.com/extrame/xls"

	"github.com/kudastat/kudastat/internal/model"
)

// XLSReader reads the first sheet of a legacy BIFF (.xls) workbook.
type XLSReader struct {
	// Charset for string cells. Defaults to utf-8.
	Charset string
}

// Name returns the reader name.
func (x *XLSReader) Name() string { return "xls" }

// Read returns the cell values of the first sheet.
func (x *XLSReader) Read(r io.ReadSeeker) (grid model.RawGrid, err error) {
	// The BIFF decoder panics on some truncated or foreign inputs.
	defer func() {
		if p := recover(); p != nil {
			grid, err = nil, fmt.Errorf("decoding xls: %v", p)
		}
	}()

	charset := x.Charset
	if charset == "" {
		charset = "utf-8"
	}

	wb, err := xls.OpenReader(r, charset)
	if err != nil {
		return nil, fmt.Errorf("opening xls workbook: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, errors.New("no sheets found in xls workbook")
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("could not get first sheet")
	}

	maxRow := int(sheet.MaxRow)
	grid = make(model.RawGrid, 0, maxRow+1)
	for i := 0; i <= maxRow; i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		values := make([]string, row.LastCol())
		for j := range values {
			values[j] = row.Col(j)
		}
		grid = append(grid, toCells(values))
	}
	return trimTrailingEmpty(grid), nil
}

func trimTrailingEmpty(grid model.RawGrid) model.RawGrid {
	n := len(grid)
	for n > 0 && rowEmpty(grid[n-1]) {
		n--
	}
	return grid[:n]
}

func rowEmpty(row []model.Cell) bool {
	for _, c := range row {
		if c != nil {
			return false
		}
	}
	return true
}
