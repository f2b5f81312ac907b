package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseConstruct Phase = "construct" // building a value from external input
	PhaseMutate    Phase = "mutate"    // in-place edits
	PhaseInspect   Phase = "inspect"   // borrowed views and slicing
	PhaseConvert   Phase = "convert"   // conversions between encodings
	PhaseLower     Phase = "lower"     // Go to guest memory
	PhaseLift      Phase = "lift"      // guest memory to Go
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidUTF8    Kind = "invalid_utf8"
	KindInvalidUTF16   Kind = "invalid_utf16"
	KindCharBoundary   Kind = "char_boundary"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindNotEnoughSpace Kind = "not_enough_space"
	KindAllocation     Kind = "allocation"
	KindOverflow       Kind = "overflow"
	KindTypeMismatch   Kind = "type_mismatch"
	KindUnsupported    Kind = "unsupported"
	KindInvalidInput   Kind = "invalid_input"
)

// Sentinels for errors.Is. They carry no Phase, so they match any error of
// the same Kind.
var (
	ErrInvalidUTF8    = &Error{Kind: KindInvalidUTF8}
	ErrInvalidUTF16   = &Error{Kind: KindInvalidUTF16}
	ErrCharBoundary   = &Error{Kind: KindCharBoundary}
	ErrOutOfBounds    = &Error{Kind: KindOutOfBounds}
	ErrNotEnoughSpace = &Error{Kind: KindNotEnoughSpace}
	ErrAllocation     = &Error{Kind: KindAllocation}
	ErrOverflow       = &Error{Kind: KindOverflow}
	ErrUnsupported    = &Error{Kind: KindUnsupported}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Detail string
	Index  int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. An empty Phase on the target
// matches every phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Is is errors.Is from the standard library, re-exported so callers need a
// single import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As from the standard library.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the operation name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Index sets the offending byte offset
func (b *Builder) Index(idx int) *Builder {
	b.err.Index = idx
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidUTF8 creates an invalid UTF-8 error. valid is the length of the
// longest valid prefix of data.
func InvalidUTF8(phase Phase, op string, data []byte, valid int) *Error {
	preview := data[valid:]
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Op:     op,
		Index:  valid,
		Detail: fmt.Sprintf("invalid UTF-8 sequence at byte %d: %x", valid, preview),
	}
}

// InvalidUTF16 creates an error for an unpaired surrogate at code unit index
func InvalidUTF16(phase Phase, op string, index int, unit uint16) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF16,
		Op:     op,
		Index:  index,
		Detail: fmt.Sprintf("unpaired surrogate 0x%04x at code unit %d", unit, index),
		Value:  unit,
	}
}

// CharBoundary creates an error for an offset that splits a UTF-8 sequence
func CharBoundary(phase Phase, op string, index int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindCharBoundary,
		Op:     op,
		Index:  index,
		Detail: fmt.Sprintf("byte index %d is not a char boundary", index),
		Value:  index,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, op string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Op:     op,
		Index:  index,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// InvalidRange creates an out of bounds error for a reversed or oversized range
func InvalidRange(phase Phase, op string, start, end, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Op:     op,
		Index:  start,
		Detail: fmt.Sprintf("range [%d, %d) invalid (length %d)", start, end, length),
		Value:  [2]int{start, end},
	}
}

// NotEnoughSpace creates an error for a fixed-capacity buffer that cannot
// hold the result
func NotEnoughSpace(op string, need, capacity int) *Error {
	return &Error{
		Phase:  PhaseMutate,
		Kind:   KindNotEnoughSpace,
		Op:     op,
		Detail: fmt.Sprintf("need %d bytes, capacity %d", need, capacity),
		Value:  need,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, op string, value any, limit any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Op:     op,
		Detail: fmt.Sprintf("value %v exceeds %v", value, limit),
		Value:  value,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, op, got, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Op:     op,
		Detail: fmt.Sprintf("got %s, want %s", got, want),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
