// Package textbuf holds the validation and in-place edit routines shared by
// every StringExt implementation, so that all of them report identical
// errors and produce identical bytes.
//
// Edit functions operate on a byte slice whose spare capacity has already
// been reserved by the caller; they never allocate.
package textbuf

import (
	"bytes"
	"strings"
	"unicode/utf8"
	"unsafe"

	"github.com/wippyai/inlinestr/errors"
)

// IsCharBoundary reports whether idx falls between complete UTF-8
// sequences of b. 0 and len(b) are always boundaries.
func IsCharBoundary(b []byte, idx int) bool {
	if idx == 0 || idx == len(b) {
		return true
	}
	if idx < 0 || idx > len(b) {
		return false
	}
	return utf8.RuneStart(b[idx])
}

// CheckIndex validates an insertion or truncation offset in [0, len(b)].
func CheckIndex(phase errors.Phase, op string, b []byte, idx int) error {
	if idx < 0 || idx > len(b) {
		return errors.OutOfBounds(phase, op, idx, len(b))
	}
	if !IsCharBoundary(b, idx) {
		return errors.CharBoundary(phase, op, idx)
	}
	return nil
}

// CheckElement validates an offset naming an existing character, in
// [0, len(b)).
func CheckElement(phase errors.Phase, op string, b []byte, idx int) error {
	if idx < 0 || idx >= len(b) {
		return errors.OutOfBounds(phase, op, idx, len(b))
	}
	if !IsCharBoundary(b, idx) {
		return errors.CharBoundary(phase, op, idx)
	}
	return nil
}

// CheckRange validates a half-open range [start, end) of b.
func CheckRange(phase errors.Phase, op string, b []byte, start, end int) error {
	if start < 0 || end < start || end > len(b) {
		return errors.InvalidRange(phase, op, start, end, len(b))
	}
	if !IsCharBoundary(b, start) {
		return errors.CharBoundary(phase, op, start)
	}
	if !IsCharBoundary(b, end) {
		return errors.CharBoundary(phase, op, end)
	}
	return nil
}

// Validate checks that b is well-formed UTF-8 and reports the offset of the
// first bad sequence in the error.
func Validate(phase errors.Phase, op string, b []byte) error {
	if utf8.Valid(b) {
		return nil
	}
	return errors.InvalidUTF8(phase, op, b, validPrefix(b))
}

func validPrefix(b []byte) int {
	i := 0
	for i < len(b) {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return i
}

// Detach returns s, or a copy of s when its bytes lie in the storage of b.
// Callers pass their own buffer before an edit that may move or overwrite
// it, so that appending a value to itself reads the original bytes.
func Detach(b []byte, s string) string {
	if overlaps(b, unsafe.StringData(s), len(s)) {
		return strings.Clone(s)
	}
	return s
}

// DetachBytes is Detach for a byte slice argument.
func DetachBytes(b, p []byte) []byte {
	if overlaps(b, unsafe.SliceData(p), len(p)) {
		return bytes.Clone(p)
	}
	return p
}

func overlaps(b []byte, p *byte, n int) bool {
	if n == 0 || cap(b) == 0 {
		return false
	}
	lo := uintptr(unsafe.Pointer(unsafe.SliceData(b[:cap(b)])))
	hi := lo + uintptr(cap(b))
	start := uintptr(unsafe.Pointer(p))
	return start < hi && start+uintptr(n) > lo
}

// Insert opens a gap of len(s) bytes at idx and copies s into it.
// cap(b)-len(b) must be at least len(s).
func Insert(b []byte, idx int, s string) []byte {
	n := len(b)
	b = b[:n+len(s)]
	copy(b[idx+len(s):], b[idx:n])
	copy(b[idx:], s)
	return b
}

// InsertRune is Insert for a single encoded rune.
func InsertRune(b []byte, idx int, r rune) []byte {
	var enc [utf8.UTFMax]byte
	w := utf8.EncodeRune(enc[:], r)
	n := len(b)
	b = b[:n+w]
	copy(b[idx+w:], b[idx:n])
	copy(b[idx:], enc[:w])
	return b
}

// Cut removes [start, end) and shifts the tail left. The removed bytes are
// not returned; callers copy them out first when they need them.
func Cut(b []byte, start, end int) []byte {
	n := copy(b[start:], b[end:])
	return b[:start+n]
}

// Replace overwrites [start, end) with s. When s is longer than the range,
// cap(b)-len(b) must cover the difference.
func Replace(b []byte, start, end int, s string) []byte {
	n := len(b)
	delta := len(s) - (end - start)
	switch {
	case delta > 0:
		b = b[:n+delta]
		copy(b[end+delta:], b[end:n])
	case delta < 0:
		copy(b[end+delta:], b[end:n])
		b = b[:n+delta]
	}
	copy(b[start:], s)
	return b
}

// Retain keeps only the characters for which keep returns true, compacting
// in place.
func Retain(b []byte, keep func(rune) bool) []byte {
	w := 0
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if keep(r) {
			copy(b[w:], b[i:i+size])
			w += size
		}
		i += size
	}
	return b[:w]
}

// RuneLen is the encoded width of r, counting invalid runes as U+FFFD.
func RuneLen(r rune) int {
	if n := utf8.RuneLen(r); n > 0 {
		return n
	}
	return utf8.RuneLen(utf8.RuneError)
}
