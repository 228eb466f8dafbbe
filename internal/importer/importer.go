package importer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kudastat/kudastat/internal/diaglog"
	"github.com/kudastat/kudastat/internal/model"
)

// Reader converts spreadsheet bytes into a RawGrid. No header inference is
// done: the grid is a positional read of the first sheet.
type Reader interface {
	Read(r io.ReadSeeker) (model.RawGrid, error)
	Name() string
}

// Registry holds named readers in the order they are tried.
type Registry struct {
	readers map[string]Reader
	order   []string
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader after those already registered. Panics on
// duplicate format.
func (r *Registry) Register(rd Reader) {
	key := strings.ToLower(rd.Name())
	if _, ok := r.readers[key]; ok {
		panic("duplicate reader name: " + key)
	}
	r.readers[key] = rd
	r.order = append(r.order, key)
}

// Get returns the reader registered under name, or nil.
func (r *Registry) Get(name string) Reader {
	return r.readers[strings.ToLower(name)]
}

// Names returns the registered reader names in try order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// DefaultRegistry returns the xlsx reader followed by the legacy xls reader.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&XLSXReader{})
	r.Register(&XLSReader{})
	return r
}

// Open reads src with each registered reader in turn and returns the first
// grid that is read successfully. If every reader fails it returns an
// *UnreadableFileError.
func (r *Registry) Open(src io.ReadSeeker, log *diaglog.Log) (model.RawGrid, error) {
	if len(r.order) == 0 {
		return nil, &UnreadableFileError{}
	}

	var attempts []error
	for _, key := range r.order {
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewinding input: %w", err)
		}
		grid, err := r.readers[key].Read(src)
		if err != nil {
			log.Addf(diaglog.StageRead, "reader_failed", "%s: %v", key, err)
			attempts = append(attempts, fmt.Errorf("%s: %w", key, err))
			continue
		}
		log.Addf(diaglog.StageRead, "opened", "%s reader, %d rows", key, len(grid))
		return grid, nil
	}
	return nil, &UnreadableFileError{Attempts: attempts}
}

// OpenFile opens path and reads it with the default registry.
func OpenFile(path string, log *diaglog.Log) (model.RawGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	return DefaultRegistry().Open(f, log)
}
