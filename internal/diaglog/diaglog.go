// Package diaglog accumulates the classification decisions made while a
// statement is read and parsed. A Log is an explicit value owned by one
// parse; it is handed back to the caller for troubleshooting and is not part
// of the parsed data.
package diaglog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Stages of the parse pipeline.
const (
	StageRead      = "read"
	StageHeader    = "header"
	StageColumns   = "columns"
	StageMetadata  = "metadata"
	StageBuild     = "build"
	StageNormalize = "normalize"
	StageFilter    = "filter"
)

// NoRow marks an entry that is not tied to a grid row.
const NoRow = -1

// Entry is one recorded decision.
type Entry struct {
	Timestamp time.Time
	Stage     string
	Action    string
	Row       int // grid row index, or NoRow
	Details   string
}

// Header is the CSV header written by Append.
const Header = "timestamp,stage,action,row,details"

const (
	numFields    = 5
	colTimestamp = 0
	colStage     = 1
	colAction    = 2
	colRow       = 3
	colDetails   = 4
)

// Log collects entries in order. The zero value is ready to use, and all
// methods are no-ops on a nil *Log.
type Log struct {
	entries []Entry
	now     func() time.Time
}

// New returns an empty Log.
func New() *Log {
	return &Log{}
}

// Add records an entry not tied to a row.
func (l *Log) Add(stage, action, details string) {
	l.AddRow(stage, action, NoRow, details)
}

// Addf is Add with a format string.
func (l *Log) Addf(stage, action, format string, args ...any) {
	l.AddRow(stage, action, NoRow, fmt.Sprintf(format, args...))
}

// AddRow records an entry about grid row.
func (l *Log) AddRow(stage, action string, row int, details string) {
	if l == nil {
		return
	}
	now := time.Now
	if l.now != nil {
		now = l.now
	}
	l.entries = append(l.entries, Entry{
		Timestamp: now().UTC(),
		Stage:     stage,
		Action:    action,
		Row:       row,
		Details:   details,
	})
}

// Entries returns a copy of the recorded entries.
func (l *Log) Entries() []Entry {
	if l == nil || len(l.entries) == 0 {
		return nil
	}
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Find returns the entries with the given stage and action.
func (l *Log) Find(stage, action string) []Entry {
	if l == nil {
		return nil
	}
	var out []Entry
	for _, e := range l.entries {
		if e.Stage == stage && e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

// String renders the log as one line per entry.
func (l *Log) String() string {
	if l == nil {
		return ""
	}
	var b strings.Builder
	for _, e := range l.entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (e Entry) String() string {
	if e.Row == NoRow {
		return fmt.Sprintf("[%s] %s: %s", e.Stage, e.Action, e.Details)
	}
	return fmt.Sprintf("[%s] %s row %d: %s", e.Stage, e.Action, e.Row, e.Details)
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colStage] = e.Stage
	row[colAction] = e.Action
	if e.Row != NoRow {
		row[colRow] = strconv.Itoa(e.Row)
	}
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	row := NoRow
	if record[colRow] != "" {
		row, err = strconv.Atoi(record[colRow])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing row %q: %w", record[colRow], err)
		}
	}

	return Entry{
		Timestamp: ts,
		Stage:     record[colStage],
		Action:    record[colAction],
		Row:       row,
		Details:   record[colDetails],
	}, nil
}

// Append writes entries to the CSV file at path, creating the file, its
// directory and the header if needed.
func Append(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening diagnostic log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from the CSV file at path.
// Returns nil if the file does not exist.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening diagnostic log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading diagnostic log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
