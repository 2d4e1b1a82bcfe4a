package jsondb

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"sync"
)

// Row is implemented by types stored in a Table.
type Row interface {
	// Validate reports whether the row is well-formed. Rows failing
	// validation are quarantined on load.
	Validate() error
}

// Table handles storage for a single collection persisted as a JSON array file.
type Table[T Row] struct {
	path string
	mu   sync.Mutex
}

// NewTable creates a Table backed by the file at path. The file is not
// required to exist; it is created on first write.
func NewTable[T Row](path string) *Table[T] {
	return &Table[T]{path: path}
}

// Path returns the backing file path.
func (t *Table[T]) Path() string {
	return t.path
}

// Load reads all rows from disk. It fails soft: a missing file or invalid
// JSON yields an empty slice, never an error. Rows that fail validation are
// skipped with a warning.
func (t *Table[T]) Load() []T {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read table file", "path", t.path, "err", err)
		}
		return nil
	}

	var rows []T
	if err := json.Unmarshal(data, &rows); err != nil {
		slog.Warn("Invalid JSON in table file, treating as empty", "path", t.path, "err", err)
		return nil
	}

	valid := rows[:0]
	for _, row := range rows {
		// A literal null element decodes as a nil pointer; Validate would
		// panic on it. The typed nil boxes as a non-nil interface, so the
		// check needs reflection.
		if v := reflect.ValueOf(row); v.Kind() == reflect.Pointer && v.IsNil() {
			slog.Warn("Quarantined null row", "path", t.path)
			continue
		}
		if err := row.Validate(); err != nil {
			slog.Warn("Quarantined malformed row", "path", t.path, "err", err)
			continue
		}
		valid = append(valid, row)
	}
	return valid
}

// Replace rewrites the whole file with the provided rows, creating the parent
// directory if absent.
func (t *Table[T]) Replace(rows []T) error {
	if rows == nil {
		rows = []T{}
	}
	data, err := json.MarshalIndent(rows, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil { //nolint:gosec // G301: 0o755 is intentional for data directories
		return fmt.Errorf("failed to create directory for %s: %w", t.path, err)
	}
	if err := os.WriteFile(t.path, data, 0o644); err != nil { //nolint:gosec // G306: data files are not secrets
		return fmt.Errorf("failed to write table file %s: %w", t.path, err)
	}
	return nil
}

// Modify runs fn under the table lock with a fresh copy of the rows and
// persists whatever fn returns. If fn errors, nothing is written.
func (t *Table[T]) Modify(fn func(rows []T) ([]T, error)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows, err := fn(t.Load())
	if err != nil {
		return err
	}
	return t.Replace(rows)
}
