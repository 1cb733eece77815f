package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeRemoteRead         ErrorType = "remote_read"
	ErrorTypeRemoteWrite        ErrorType = "remote_write"
	ErrorTypeNotFound           ErrorType = "not_found"
	ErrorTypePartialAggregation ErrorType = "partial_aggregation"
)

// ConstraintKind names the store rule a rejected write violated
type ConstraintKind string

const (
	ConstraintUnknown    ConstraintKind = "unknown"
	ConstraintUniqueness ConstraintKind = "uniqueness"
	ConstraintForeignKey ConstraintKind = "foreign_key"
	ConstraintNotNull    ConstraintKind = "not_null"
	ConstraintCheck      ConstraintKind = "check"
	ConstraintValidation ConstraintKind = "validation"
)

// PostgreSQL SQLSTATE codes for integrity violations
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// RemoteReadError is returned when the store could not serve a read
type RemoteReadError struct {
	Entity string
	Op     string
	Err    error
}

func (e *RemoteReadError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *RemoteReadError) Unwrap() error {
	return e.Err
}

// RemoteWriteError is returned when the store rejected an insert or update
type RemoteWriteError struct {
	Entity     string
	Op         string
	Kind       ConstraintKind
	Constraint string
	Err        error
}

func (e *RemoteWriteError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("failed to %s %s (%s violation on %s): %v", e.Op, e.Entity, e.Kind, e.Constraint, e.Err)
	}
	return fmt.Sprintf("failed to %s %s (%s): %v", e.Op, e.Entity, e.Kind, e.Err)
}

func (e *RemoteWriteError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned when a keyed lookup or update matched no row
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found: empty key", e.Entity)
	}
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

// SubQueryFailure records one failed branch of an aggregation
type SubQueryFailure struct {
	Name string
	Err  error
}

// PartialAggregationError is returned when any sub-query of an aggregate failed.
// No partial totals accompany it.
type PartialAggregationError struct {
	Aggregate string
	Failures  []SubQueryFailure
}

func (e *PartialAggregationError) Error() string {
	names := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		names = append(names, fmt.Sprintf("%s: %v", f.Name, f.Err))
	}
	return fmt.Sprintf("aggregation %s failed [%s]", e.Aggregate, strings.Join(names, "; "))
}

// Unwrap exposes every failed sub-query error to errors.Is/As
func (e *PartialAggregationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// FailedQueries returns the names of the failed sub-queries
func (e *PartialAggregationError) FailedQueries() []string {
	names := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		names = append(names, f.Name)
	}
	return names
}

// Constructors

// ReadError wraps a store failure on a read operation
func ReadError(entity, op string, cause error) *RemoteReadError {
	return &RemoteReadError{Entity: entity, Op: op, Err: cause}
}

// NotFound creates a not found error for the given entity and key
func NotFound(entity string, key any) *NotFoundError {
	k := ""
	if key != nil {
		k = fmt.Sprint(key)
	}
	return &NotFoundError{Entity: entity, Key: k}
}

// ValidationError creates a write error for a shape that failed local validation
func ValidationError(entity, op string, cause error) *RemoteWriteError {
	return &RemoteWriteError{Entity: entity, Op: op, Kind: ConstraintValidation, Err: cause}
}

// WriteError classifies a store rejection on insert or update
func WriteError(entity, op string, cause error) *RemoteWriteError {
	kind, constraint := ClassifyConstraint(cause)
	return &RemoteWriteError{Entity: entity, Op: op, Kind: kind, Constraint: constraint, Err: cause}
}

// ClassifyConstraint maps a driver error onto a ConstraintKind.
// PostgreSQL codes are checked first, then GORM's translated sentinels,
// then the SQLite message forms.
func ClassifyConstraint(err error) (ConstraintKind, string) {
	if err == nil {
		return ConstraintUnknown, ""
	}

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ConstraintUniqueness, pgErr.ConstraintName
		case pgForeignKeyViolation:
			return ConstraintForeignKey, pgErr.ConstraintName
		case pgNotNullViolation:
			return ConstraintNotNull, pgErr.ColumnName
		case pgCheckViolation:
			return ConstraintCheck, pgErr.ConstraintName
		}
		return ConstraintUnknown, ""
	}

	switch {
	case stderrors.Is(err, gorm.ErrDuplicatedKey):
		return ConstraintUniqueness, ""
	case stderrors.Is(err, gorm.ErrForeignKeyViolated):
		return ConstraintForeignKey, ""
	case stderrors.Is(err, gorm.ErrCheckConstraintViolated):
		return ConstraintCheck, ""
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ConstraintUniqueness, sqliteConstraintTarget(msg, "UNIQUE constraint failed")
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ConstraintForeignKey, ""
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return ConstraintNotNull, sqliteConstraintTarget(msg, "NOT NULL constraint failed")
	case strings.Contains(msg, "CHECK constraint failed"):
		return ConstraintCheck, sqliteConstraintTarget(msg, "CHECK constraint failed")
	}
	return ConstraintUnknown, ""
}

// sqliteConstraintTarget extracts "table.column" from "UNIQUE constraint failed: table.column"
func sqliteConstraintTarget(msg, prefix string) string {
	idx := strings.Index(msg, prefix)
	rest := strings.TrimPrefix(msg[idx+len(prefix):], ":")
	return strings.TrimSpace(rest)
}

// Error handling utilities

// IsNotFound reports whether err is or wraps a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return stderrors.As(err, &nf)
}

// AsWriteError extracts a RemoteWriteError from err
func AsWriteError(err error) (*RemoteWriteError, bool) {
	var we *RemoteWriteError
	ok := stderrors.As(err, &we)
	return we, ok
}

// AsPartialAggregation extracts a PartialAggregationError from err
func AsPartialAggregation(err error) (*PartialAggregationError, bool) {
	var pe *PartialAggregationError
	ok := stderrors.As(err, &pe)
	return pe, ok
}

// TypeOf returns the ErrorType of a taxonomy error, or "" for anything else
func TypeOf(err error) ErrorType {
	var (
		nf *NotFoundError
		we *RemoteWriteError
		pe *PartialAggregationError
		re *RemoteReadError
	)
	switch {
	case stderrors.As(err, &pe):
		return ErrorTypePartialAggregation
	case stderrors.As(err, &nf):
		return ErrorTypeNotFound
	case stderrors.As(err, &we):
		return ErrorTypeRemoteWrite
	case stderrors.As(err, &re):
		return ErrorTypeRemoteRead
	}
	return ""
}

// HTTPStatus maps an error onto the status code the HTTP boundary responds with
func HTTPStatus(err error) int {
	switch TypeOf(err) {
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeRemoteWrite:
		we, _ := AsWriteError(err)
		switch we.Kind {
		case ConstraintUniqueness:
			return http.StatusConflict
		case ConstraintForeignKey, ConstraintNotNull, ConstraintCheck, ConstraintValidation:
			return http.StatusUnprocessableEntity
		}
		return http.StatusBadGateway
	case ErrorTypeRemoteRead, ErrorTypePartialAggregation:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
