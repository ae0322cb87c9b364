package importer

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor Excel.
var ErrUnsupportedFormat = errors.New("unsupported file type, expected .csv, .xlsx or .xls")

// BatchError means the whole file was rejected and nothing was imported.
type BatchError struct {
	Reason string
	Err    error
}

func (e *BatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *BatchError) Unwrap() error { return e.Err }

// RowError is a failure tied to a named product.
type RowError struct {
	Name string
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
