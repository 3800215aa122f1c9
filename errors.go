package pbquery

import (
	"errors"
	"fmt"
)

// ErrNotFound is the sentinel [NotFoundError] unwraps to, so a caller
// can test with errors.Is(err, pbquery.ErrNotFound) without caring
// which specific lookup failed.
var ErrNotFound = errors.New("pbquery: not found")

// NotFoundError is returned by [ResolveRoot] when a type name has no
// corresponding descriptor in the registry.
type NotFoundError struct {
	TypeName string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pbquery: type not found: %s", e.TypeName)
}

// Unwrap exposes [ErrNotFound], mirroring the teacher's errParse/errs
// table pattern (error.go: a concrete error type whose Unwrap returns a
// class-level sentinel looked up by a code).
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// CompileErrorKind classifies why compilation of a query string failed.
type CompileErrorKind int

const (
	InvalidToken CompileErrorKind = iota
	UnknownField
	TypeMismatch
	TrailingGarbage
	UnsupportedOperator
)

func (k CompileErrorKind) String() string {
	switch k {
	case InvalidToken:
		return "invalid token"
	case UnknownField:
		return "unknown field"
	case TypeMismatch:
		return "type mismatch"
	case TrailingGarbage:
		return "trailing garbage"
	case UnsupportedOperator:
		return "unsupported operator"
	default:
		return "unknown compile error"
	}
}

// compileErrSentinels is the teacher's errs[errCode] table (error.go),
// adapted: one class-level sentinel per [CompileErrorKind], returned by
// [CompileError.Unwrap] so callers can test with errors.Is against a
// whole class of compile failure without inspecting Kind directly.
var compileErrSentinels = [...]error{
	InvalidToken:        errors.New("pbquery: invalid token"),
	UnknownField:        errors.New("pbquery: unknown field"),
	TypeMismatch:        errors.New("pbquery: type mismatch"),
	TrailingGarbage:     errors.New("pbquery: trailing garbage"),
	UnsupportedOperator: errors.New("pbquery: unsupported operator"),
}

// CompileError is returned by [Compile] on any structural failure.
// Compilation is all-or-nothing: a *CompileError means no partial [Plan]
// was produced.
type CompileError struct {
	Kind CompileErrorKind
	// Offset is the byte offset into the query string where the error
	// was detected.
	Offset int
	// Field and TypeName are populated for UnknownField: the identifier
	// that failed to resolve, and the dotted name of the message type it
	// was resolved against.
	Field    string
	TypeName string
	// Msg is a human-readable detail, always populated.
	Msg string
}

func (e *CompileError) Error() string {
	switch e.Kind {
	case UnknownField:
		return fmt.Sprintf("pbquery: compile error at offset %d: unknown field %q in type %s", e.Offset, e.Field, e.TypeName)
	default:
		return fmt.Sprintf("pbquery: compile error at offset %d: %s: %s", e.Offset, e.Kind, e.Msg)
	}
}

// Unwrap returns the class-level sentinel for e.Kind (see
// compileErrSentinels), the Go realization of the teacher's
// errParse.Unwrap/errs table.
func (e *CompileError) Unwrap() error {
	if int(e.Kind) < 0 || int(e.Kind) >= len(compileErrSentinels) {
		return nil
	}
	return compileErrSentinels[e.Kind]
}

// MalformedWireError is returned by the evaluator when a buffer does not
// follow the tag/length/value wire format it is being walked against:
// an unknown wire type, a truncated varint, or a length that runs past
// the end of the buffer.
//
// A C implementation of this kind of walk typically treats this as a
// fatal, unrecoverable programmer error and aborts; here it is instead
// a structured error returned to the caller.
type MalformedWireError struct {
	// Offset is the byte offset where the malformed record begins,
	// counted from the start of the message being walked; for a record
	// inside a nested submessage, that is the start of the submessage's
	// payload, not of the outer buffer.
	Offset int
	Msg    string
}

func (e *MalformedWireError) Error() string {
	return fmt.Sprintf("pbquery: malformed wire data at offset %d: %s", e.Offset, e.Msg)
}

// ErrMalformedWire is the sentinel [MalformedWireError] unwraps to.
var ErrMalformedWire = errors.New("pbquery: malformed wire data")

// Unwrap exposes [ErrMalformedWire].
func (e *MalformedWireError) Unwrap() error { return ErrMalformedWire }

// UnsupportedError is returned when evaluation reaches a filter or
// operand kind that is reserved in the grammar but not implemented:
// IDX, MATCH, LIST filters, or a PATH/AT-valued Right operand of an EQ
// filter.
type UnsupportedError struct {
	Msg string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("pbquery: unsupported at evaluation time: %s", e.Msg)
}

// ErrUnsupported is the sentinel [UnsupportedError] unwraps to.
var ErrUnsupported = errors.New("pbquery: unsupported at evaluation time")

// Unwrap exposes [ErrUnsupported].
func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }

// RecursionLimitError is returned when find_paths would recurse deeper
// than the configured limit, guarding against stack exhaustion on
// crafted input.
type RecursionLimitError struct {
	Limit int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("pbquery: recursion depth exceeded limit of %d", e.Limit)
}

// ErrRecursionLimit is the sentinel [RecursionLimitError] unwraps to.
var ErrRecursionLimit = errors.New("pbquery: recursion depth exceeded limit")

// Unwrap exposes [ErrRecursionLimit].
func (e *RecursionLimitError) Unwrap() error { return ErrRecursionLimit }
