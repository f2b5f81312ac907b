package inlinestr

import "iter"

// StringExt is the set of owned, growable UTF-8 string operations shared by
// every string representation in the module.
//
// Implementations: *inlinable.String (inline storage with heap promotion)
// and *stdstr.String (always heap). Given equal content and equal
// arguments, every method produces byte-identical content and the same
// error Kind on both.
//
// Offsets are byte offsets. Mutating methods validate their arguments
// before touching the value: on error the content is unchanged.
type StringExt interface {
	// Len returns the length in bytes.
	Len() int
	// IsEmpty reports whether Len is zero.
	IsEmpty() bool
	// Cap returns the number of bytes the value can hold without
	// reallocating.
	Cap() int

	// AsStr returns the content without copying. The result is only valid
	// until the value is next modified.
	AsStr() string
	// Bytes returns a read-only byte view with the same lifetime as AsStr.
	Bytes() []byte
	// String returns an independent copy of the content.
	String() string
	// Slice returns the borrowed sub-view [start, end).
	Slice(start, end int) (string, error)

	// Chars yields each character in order. The sequence is lazy and can
	// be ranged over more than once.
	Chars() iter.Seq[rune]
	// CharIndices yields each character with its byte offset.
	CharIndices() iter.Seq2[int, rune]
	// Runes returns the content as a new slice of Unicode scalar values.
	Runes() []rune
	// IntoBytes gives up the content as a byte slice, without copying when
	// the representation allows, and resets the value to empty.
	IntoBytes() []byte

	// Reserve ensures room for at least additional more bytes, growing
	// with the amortized doubling policy. It panics if additional < 0.
	Reserve(additional int)
	// ReserveExact is Reserve without over-allocation.
	ReserveExact(additional int)
	// ShrinkToFit releases unused heap capacity.
	ShrinkToFit()

	// Push appends r. Invalid runes are appended as U+FFFD.
	Push(r rune)
	// PushStr appends s.
	PushStr(s string)
	// PushBytes validates b as UTF-8 and appends it.
	PushBytes(b []byte) error
	// PushBytesUnchecked appends b without validation. b must be valid
	// UTF-8 on its own; anything else is a contract violation.
	PushBytesUnchecked(b []byte)
	// Insert inserts r at byte offset idx.
	Insert(idx int, r rune) error
	// InsertStr inserts s at byte offset idx.
	InsertStr(idx int, s string) error

	// Truncate shortens the content to newLen bytes.
	Truncate(newLen int) error
	// Pop removes and returns the last character.
	Pop() (rune, bool)
	// Remove removes and returns the character at byte offset idx.
	Remove(idx int) (rune, error)
	// Retain keeps only the characters for which keep returns true.
	Retain(keep func(rune) bool)
	// Clear empties the value, keeping its capacity.
	Clear()
	// Drain removes [start, end) and returns it.
	Drain(start, end int) (string, error)
	// ReplaceRange replaces [start, end) with s.
	ReplaceRange(start, end int, s string) error
	// SplitOff truncates the value at byte offset at and returns the tail.
	SplitOff(at int) (string, error)
}
