// Package statement recovers a typed transaction table from a bank
// statement spreadsheet whose header row position and column order are not
// fixed.
//
// Parse runs the full pipeline over a RawGrid: the header row is located by
// an ordered chain of heuristics, header cells are mapped to the canonical
// columns, account metadata is scraped from the rows above the header, and
// the rows below it are assembled into a StatementTable whose money and date
// columns are then normalized. Per-cell normalization failures never abort a
// parse; they are recorded in the diaglog.Log and replaced with zero or nil.
//
// Every call works on its own values. The package holds no mutable state.
package statement
