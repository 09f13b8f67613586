package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Kind classifies every failure the store reports.
type Kind int

const (
	// KindStorage wraps failures from the SQLite engine: constraint
	// violations, missing rows, I/O.
	KindStorage Kind = iota + 1
	// KindDirectory means the platform data directory could not be resolved.
	KindDirectory
	// KindValidation means caller input was rejected before touching storage.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindStorage:
		return "storage"
	case KindDirectory:
		return "directory"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// ErrClosed is reported when an operation runs after the last reference to
// the store was released.
var ErrClosed = errors.New("store is closed")

// Error is the single error type returned by the store and its entities.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	// Keep the innermost classification when a helper already wrapped it.
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindStorage, Op: op, Err: err}
}

func directoryErr(op string, err error) error {
	return &Error{Kind: KindDirectory, Op: op, Err: err}
}

func validationErr(op string, err error) error {
	return &Error{Kind: KindValidation, Op: op, Err: err}
}

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsStorage reports whether err came from the SQLite engine.
func IsStorage(err error) bool { return kindOf(err) == KindStorage }

// IsDirectory reports whether err is a data directory resolution failure.
func IsDirectory(err error) bool { return kindOf(err) == KindDirectory }

// IsValidation reports whether err rejected caller input.
func IsValidation(err error) bool { return kindOf(err) == KindValidation }

// IsNotFound reports whether err is a lookup that matched no row.
func IsNotFound(err error) bool {
	return IsStorage(err) && errors.Is(err, sql.ErrNoRows)
}

// IsUniqueViolation reports whether err is a UNIQUE constraint failure,
// e.g. a duplicate tag name.
func IsUniqueViolation(err error) bool {
	return hasExtendedCode(err, sqlite3.ErrConstraintUnique)
}

// IsForeignKeyViolation reports whether err references a missing note or tag.
func IsForeignKeyViolation(err error) bool {
	return hasExtendedCode(err, sqlite3.ErrConstraintForeignKey)
}

// IsDuplicateAssociation reports whether a note already carries the tag.
func IsDuplicateAssociation(err error) bool {
	return hasExtendedCode(err, sqlite3.ErrConstraintPrimaryKey)
}

func hasExtendedCode(err error, code sqlite3.ErrNoExtended) bool {
	var sqlErr sqlite3.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	return sqlErr.ExtendedCode == code
}
