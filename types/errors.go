package types

import (
	"errors"
	"fmt"
)

// An ErrorKind classifies a failure reported by the store
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindParse
	KindArityMismatch
	KindUnknownTypeTag
	KindMissingIdentifier
	KindInvalidSchema
	KindSchemaMismatch
	KindTypeMismatch
	KindDuplicateIdentifier
	KindRowNotFound
	KindTableExists
	KindTableNotFound
	KindDecode
	KindDatabaseExists
	KindDatabaseNotFound
)

var kindNames = map[ErrorKind]string{
	KindUnknown:             "unknown error",
	KindParse:               "parse error",
	KindArityMismatch:       "arity mismatch",
	KindUnknownTypeTag:      "unknown type tag",
	KindMissingIdentifier:   "missing identifier",
	KindInvalidSchema:       "invalid schema",
	KindSchemaMismatch:      "schema mismatch",
	KindTypeMismatch:        "type mismatch",
	KindDuplicateIdentifier: "duplicate identifier",
	KindRowNotFound:         "row not found",
	KindTableExists:         "table exists",
	KindTableNotFound:       "table not found",
	KindDecode:              "decode error",
	KindDatabaseExists:      "database exists",
	KindDatabaseNotFound:    "database not found",
}

func (k ErrorKind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return name
}

// An Error is an immutable description of a failure: what kind of
// failure it was and the input that caused it
type Error struct {
	Kind  ErrorKind
	Input string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	s := e.Kind.String()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Input != "" {
		s += fmt.Sprintf(" (%q)", e.Input)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the underlying failure, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, which makes the
// sentinel values below usable with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for matching with errors.Is
var (
	ErrParse               = &Error{Kind: KindParse}
	ErrArityMismatch       = &Error{Kind: KindArityMismatch}
	ErrUnknownTypeTag      = &Error{Kind: KindUnknownTypeTag}
	ErrMissingIdentifier   = &Error{Kind: KindMissingIdentifier}
	ErrInvalidSchema       = &Error{Kind: KindInvalidSchema}
	ErrSchemaMismatch      = &Error{Kind: KindSchemaMismatch}
	ErrTypeMismatch        = &Error{Kind: KindTypeMismatch}
	ErrDuplicateIdentifier = &Error{Kind: KindDuplicateIdentifier}
	ErrRowNotFound         = &Error{Kind: KindRowNotFound}
	ErrTableExists         = &Error{Kind: KindTableExists}
	ErrTableNotFound       = &Error{Kind: KindTableNotFound}
	ErrDecode              = &Error{Kind: KindDecode}
	ErrDatabaseExists      = &Error{Kind: KindDatabaseExists}
	ErrDatabaseNotFound    = &Error{Kind: KindDatabaseNotFound}
)

// NewError returns an Error of the given kind for the offending input
func NewError(kind ErrorKind, input, format string, args ...interface{}) *Error {
	return &Error{
		Kind:  kind,
		Input: input,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// WrapError returns an Error of the given kind caused by err
func WrapError(kind ErrorKind, err error, format string, args ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		Err:  err,
	}
}

// KindOf returns the kind of the outermost *Error in err's chain or
// KindUnknown if there is none
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
