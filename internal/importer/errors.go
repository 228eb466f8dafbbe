package importer

import (
	"errors"
	"fmt"
)

// ErrUnreadableFile indicates the input could not be read as a spreadsheet
// by any registered reader.
var ErrUnreadableFile = errors.New("unreadable spreadsheet")

// UnreadableFileError carries the error from each reader that was tried.
type UnreadableFileError struct {
	Attempts []error
}

func (e *UnreadableFileError) Error() string {
	if len(e.Attempts) == 0 {
		return ErrUnreadableFile.Error() + ": no readers registered"
	}
	// Report the primary reader's error; the others are usually noise
	// ("not an OLE2 file" and the like).
	return fmt.Sprintf("%s: %v", ErrUnreadableFile, e.Attempts[0])
}

// Is makes errors.Is(err, ErrUnreadableFile) true.
func (e *UnreadableFileError) Is(target error) bool {
	return target == ErrUnreadableFile
}

// Unwrap returns the per-reader errors.
func (e *UnreadableFileError) Unwrap() []error {
	return e.Attempts
}
