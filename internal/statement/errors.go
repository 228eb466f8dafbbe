package statement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kudastat/kudastat/internal/model"
)

// ErrHeaderNotFound indicates no row of the grid looks like the transaction
// table header.
var ErrHeaderNotFound = errors.New("could not find the transaction header row")

// HeaderNotFoundError carries a dump of the non-empty rows that were
// scanned, for showing to whoever has to work out why the file did not match.
type HeaderNotFoundError struct {
	Rows []string
}

func (e *HeaderNotFoundError) Error() string {
	return ErrHeaderNotFound.Error() + ": looked for 'Date/Time' at cell C16, then for date and money headers in any row"
}

// Is makes errors.Is(err, ErrHeaderNotFound) true.
func (e *HeaderNotFoundError) Is(target error) bool {
	return target == ErrHeaderNotFound
}

// ErrMissingColumns indicates a plain table lacks some canonical columns.
var ErrMissingColumns = errors.New("missing expected columns")

// MissingColumnsError lists the canonical columns a plain table lacks.
type MissingColumnsError struct {
	Missing []model.Column
	Found   []string
}

func (e *MissingColumnsError) Error() string {
	labels := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		labels[i] = c.Label()
	}
	return fmt.Sprintf("%s: %s", ErrMissingColumns, strings.Join(labels, ", "))
}

// Is makes errors.Is(err, ErrMissingColumns) true.
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

// ExpectedHeaders is the header row of a well-formed export.
func ExpectedHeaders() []string {
	out := make([]string, model.NumColumns)
	for i, c := range model.Columns {
		out[i] = c.Label()
	}
	return out
}

// ExpectedSample is an example of the transaction rows that follow the
// header, in ExpectedHeaders order.
func ExpectedSample() [][]string {
	return [][]string{
		{"10/01/20 21:12:38", "₦100.00", "", "inward transfer", "Osadebamwen Ephraim", "kip:zenith/osadebamwen", "₦100.00"},
		{"16/01/20 09:22:35", "", "₦100.00", "outward transfer", "Osadebamwen Ephraim", "what all do you want from me?", "₦0.00"},
		{"07/02/21 13:11:26", "₦100.00", "", "inward transfer", "Osadebamwen Ephraim", "kip:zenith/osadebamwen", "₦100.00"},
	}
}
