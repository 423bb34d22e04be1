package models

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by the core wraps exactly one of these,
// so callers can classify failures with errors.Is.
var (
	// ErrValidation marks bad user input. Nothing was written.
	ErrValidation = errors.New("validation failed")

	// ErrStorage marks an open, query, write or commit failure.
	ErrStorage = errors.New("storage failure")

	// ErrIO marks a file system failure on an asset or export file.
	ErrIO = errors.New("file system failure")
)

// Lookup and state errors
var (
	// ErrNotFound indicates that no row exists for the requested identifier
	ErrNotFound = errors.New("record not found")

	// ErrNoDatabase indicates an operation that needs an open database file
	ErrNoDatabase = errors.New("no database is open")

	// ErrNoSelection indicates that the requested team is not in the displayed set
	ErrNoSelection = errors.New("team is not in the displayed list")
)

// StorageError wraps a database failure with the operation that caused it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// IOError wraps a file system failure with the operation and path involved.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}
