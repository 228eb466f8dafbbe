package model

// Cell is one untyped spreadsheet value as read from the source file.
// It is nil (empty), a string, an int64 or a float64.
type Cell any

// RawGrid is the verbatim rows × columns read of a sheet. Rows may have
// different lengths. A grid is never modified after it is read.
type RawGrid [][]Cell

// Row returns row i, or nil if out of range.
func (g RawGrid) Row(i int) []Cell {
	if i < 0 || i >= len(g) {
		return nil
	}
	return g[i]
}

// At returns the cell at (row, col), or nil if out of range.
func (g RawGrid) At(row, col int) Cell {
	r := g.Row(row)
	if col < 0 || col >= len(r) {
		return nil
	}
	return r[col]
}
