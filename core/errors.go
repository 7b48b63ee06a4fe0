package core

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnreadable is returned when a source can't be opened or isn't a valid database.
	ErrSourceUnreadable = errors.New("source unreadable")
	// ErrTableMissing is returned when the target table doesn't exist in a source.
	ErrTableMissing = errors.New("table missing")
	// ErrIndexOutOfRange is returned by the view for coordinates outside of the dataset.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrEmptyDataset is returned when exporting a dataset without rows.
	ErrEmptyDataset = errors.New("empty dataset")
	// ErrDestinationUnwritable is returned when the export destination can't be written.
	ErrDestinationUnwritable = errors.New("destination unwritable")
)

var ErrInvalidRange = func(from, to int) error { return fmt.Errorf("invalid selection range: %d ... %d", from, to) }

// SourceError is a failure to read a single source.
// It matches both its kind (ErrSourceUnreadable, ErrTableMissing) and the cause with errors.Is.
type SourceError struct {
	Source string
	Kind   error
	Err    error
}

func newSourceError(source string, kind, err error) *SourceError {
	return &SourceError{
		Source: source,
		Kind:   kind,
		Err:    err,
	}
}

func (e *SourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Source, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Source, e.Kind, e.Err)
}

func (e *SourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// LoadFault records a source that could not be read during aggregation.
type LoadFault struct {
	Source string
	Err    error
}

func (f LoadFault) Error() string {
	return fmt.Sprintf("loading %s: %s", f.Source, f.Err)
}

func (f LoadFault) Unwrap() error {
	return f.Err
}
