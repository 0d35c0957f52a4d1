package lead

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("lead not found")

// ValidationError reports required fields that are blank.
// Fields holds the JSON names of the offending fields in declaration order.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "required field is empty: " + strings.Join(e.Fields, ", ")
}

// SchemaError reports required CSV header labels that are absent.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}

// RowError describes why one CSV data row was rejected.
// Line is 1-based with the header as line 1.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"error"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("行%d: %s", e.Line, e.Reason)
}

// PersistenceError wraps a failed storage read or write.
// When returned from a mutation, the mutation was not committed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// PersistenceError operations.
const (
	OpRead  = "read"
	OpWrite = "write"
)
