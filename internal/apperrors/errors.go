package apperrors

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrServiceClosed = errors.New("service is already closed")
	ErrEmptyReport   = errors.New("report has no rows, run a report first")
)

// ValidationError is returned before any write when a required field is blank
// or a value cannot be parsed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StorageError wraps any failure coming from the persistence layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err as a StorageError. Validation errors, not-found and
// already-storage errors pass through untouched.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	var se *StorageError
	if errors.As(err, &ve) || errors.As(err, &se) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrServiceClosed) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsBusy reports lock contention on the database file.
func IsBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}

// IsConstraint reports a violated UNIQUE/NOT NULL/PRIMARY KEY constraint.
func IsConstraint(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrConstraint
}
