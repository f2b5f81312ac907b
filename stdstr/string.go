// Package stdstr provides String, a conventional growable UTF-8 string
// backed by a single []byte. It is the always-heap counterpart of
// inlinable.String and follows the same growth policy and error rules.
package stdstr

import (
	"iter"
	"unicode/utf8"
	"unsafe"

	"github.com/wippyai/inlinestr"
	"github.com/wippyai/inlinestr/errors"
	"github.com/wippyai/inlinestr/internal/growth"
	"github.com/wippyai/inlinestr/internal/textbuf"
	"github.com/wippyai/inlinestr/internal/transcode"
)

var _ inlinestr.StringExt = (*String)(nil)

// String is a growable UTF-8 string. The zero value is empty.
type String struct {
	buf []byte
}

// From copies str into a new String.
func From(str string) String {
	return String{buf: []byte(str)}
}

// WithCapacity returns an empty String with room for n bytes.
func WithCapacity(n int) String {
	return String{buf: make([]byte, 0, n)}
}

// FromBytes validates b and adopts it without copying.
func FromBytes(b []byte) (String, error) {
	if err := textbuf.Validate(errors.PhaseConstruct, "from_bytes", b); err != nil {
		return String{}, err
	}
	return String{buf: b}, nil
}

// FromBytesUnchecked adopts b without validation. b must be valid UTF-8.
func FromBytesUnchecked(b []byte) String {
	return String{buf: b}
}

// FromUTF16 decodes UTF-16 code units, failing on an unpaired surrogate.
func FromUTF16(units []uint16) (String, error) {
	b, err := transcode.FromUTF16(errors.PhaseConstruct, "from_utf16", units)
	if err != nil {
		return String{}, err
	}
	return String{buf: b}, nil
}

// FromUTF16Lossy decodes UTF-16, replacing unpaired surrogates with U+FFFD.
func FromUTF16Lossy(units []uint16) String {
	return String{buf: transcode.FromUTF16Lossy(units)}
}

// FromUTF8Lossy copies b, replacing invalid sequences with U+FFFD.
func FromUTF8Lossy(b []byte) String {
	return String{buf: transcode.UTF8Lossy(b)}
}

// Len returns the length in bytes.
func (s *String) Len() int { return len(s.buf) }

// IsEmpty reports whether s has no content.
func (s *String) IsEmpty() bool { return len(s.buf) == 0 }

// Cap returns the capacity of the buffer.
func (s *String) Cap() int { return cap(s.buf) }

// AsStr returns the content without copying. The result is valid until s
// is next modified.
func (s *String) AsStr() string {
	if len(s.buf) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(s.buf), len(s.buf))
}

// Bytes returns a read-only view of the content.
func (s *String) Bytes() []byte { return s.buf[:len(s.buf):len(s.buf)] }

// String returns a copy of the content.
func (s *String) String() string { return string(s.buf) }

// Slice returns the borrowed sub-view [start, end).
func (s *String) Slice(start, end int) (string, error) {
	if err := textbuf.CheckRange(errors.PhaseInspect, "slice", s.buf, start, end); err != nil {
		return "", err
	}
	return s.AsStr()[start:end], nil
}

// Chars yields the characters of s.
func (s *String) Chars() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range s.AsStr() {
			if !yield(r) {
				return
			}
		}
	}
}

// CharIndices yields each character with its byte offset.
func (s *String) CharIndices() iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		for i, r := range s.AsStr() {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Runes returns the characters of s as a new slice.
func (s *String) Runes() []rune { return []rune(s.AsStr()) }

// IntoBytes hands over the buffer and resets s.
func (s *String) IntoBytes() []byte {
	b := s.buf
	s.buf = nil
	return b
}

// Clone returns an independent copy of s.
func (s *String) Clone() String {
	return String{buf: append(make([]byte, 0, len(s.buf)), s.buf...)}
}

// Reserve makes room for at least additional more bytes. It panics if
// additional is negative.
func (s *String) Reserve(additional int) {
	required := growth.Required(len(s.buf), additional)
	if required > cap(s.buf) {
		s.buf = growth.Realloc(s.buf, growth.Next(cap(s.buf), required))
	}
}

// ReserveExact is like Reserve but allocates no more than needed.
func (s *String) ReserveExact(additional int) {
	required := growth.Required(len(s.buf), additional)
	if required > cap(s.buf) {
		s.buf = growth.Realloc(s.buf, required)
	}
}

// ShrinkToFit reduces the capacity to the length.
func (s *String) ShrinkToFit() {
	if len(s.buf) < cap(s.buf) {
		s.buf = growth.Realloc(s.buf, len(s.buf))
	}
}

// Push appends r. An invalid rune is appended as U+FFFD.
func (s *String) Push(r rune) {
	s.Reserve(textbuf.RuneLen(r))
	s.buf = utf8.AppendRune(s.buf, r)
}

// PushStr appends str. str may be a view of s itself.
func (s *String) PushStr(str string) {
	str = textbuf.Detach(s.buf, str)
	s.Reserve(len(str))
	s.buf = append(s.buf, str...)
}

// PushBytes validates b and appends it.
func (s *String) PushBytes(b []byte) error {
	if err := textbuf.Validate(errors.PhaseMutate, "push_bytes", b); err != nil {
		return err
	}
	s.PushBytesUnchecked(b)
	return nil
}

// PushBytesUnchecked appends b, which must be valid UTF-8.
func (s *String) PushBytesUnchecked(b []byte) {
	b = textbuf.DetachBytes(s.buf, b)
	s.Reserve(len(b))
	s.buf = append(s.buf, b...)
}

// Insert inserts r at byte offset idx.
func (s *String) Insert(idx int, r rune) error {
	if err := textbuf.CheckIndex(errors.PhaseMutate, "insert", s.buf, idx); err != nil {
		return err
	}
	s.Reserve(textbuf.RuneLen(r))
	s.buf = textbuf.InsertRune(s.buf, idx, r)
	return nil
}

// InsertStr inserts str at byte offset idx.
func (s *String) InsertStr(idx int, str string) error {
	if err := textbuf.CheckIndex(errors.PhaseMutate, "insert_str", s.buf, idx); err != nil {
		return err
	}
	str = textbuf.Detach(s.buf, str)
	s.Reserve(len(str))
	s.buf = textbuf.Insert(s.buf, idx, str)
	return nil
}

// Truncate shortens s to newLen bytes, keeping the capacity.
func (s *String) Truncate(newLen int) error {
	if err := textbuf.CheckIndex(errors.PhaseMutate, "truncate", s.buf, newLen); err != nil {
		return err
	}
	s.buf = s.buf[:newLen]
	return nil
}

// Pop removes and returns the last character.
func (s *String) Pop() (rune, bool) {
	if len(s.buf) == 0 {
		return 0, false
	}
	r, size := utf8.DecodeLastRune(s.buf)
	s.buf = s.buf[:len(s.buf)-size]
	return r, true
}

// Remove removes and returns the character at byte offset idx.
func (s *String) Remove(idx int) (rune, error) {
	if err := textbuf.CheckElement(errors.PhaseMutate, "remove", s.buf, idx); err != nil {
		return 0, err
	}
	r, size := utf8.DecodeRune(s.buf[idx:])
	s.buf = textbuf.Cut(s.buf, idx, idx+size)
	return r, nil
}

// Retain keeps the characters for which keep returns true. If keep panics,
// s is left empty.
func (s *String) Retain(keep func(rune) bool) {
	b := s.buf
	s.buf = b[:0]
	s.buf = textbuf.Retain(b, keep)
}

// Clear empties s without releasing the buffer.
func (s *String) Clear() { s.buf = s.buf[:0] }

// Drain removes the bytes in [start, end) and returns them.
func (s *String) Drain(start, end int) (string, error) {
	if err := textbuf.CheckRange(errors.PhaseMutate, "drain", s.buf, start, end); err != nil {
		return "", err
	}
	out := string(s.buf[start:end])
	s.buf = textbuf.Cut(s.buf, start, end)
	return out, nil
}

// ReplaceRange replaces the bytes in [start, end) with str.
func (s *String) ReplaceRange(start, end int, str string) error {
	if err := textbuf.CheckRange(errors.PhaseMutate, "replace_range", s.buf, start, end); err != nil {
		return err
	}
	str = textbuf.Detach(s.buf, str)
	if grow := len(str) - (end - start); grow > 0 {
		s.Reserve(grow)
	}
	s.buf = textbuf.Replace(s.buf, start, end, str)
	return nil
}

// SplitOff truncates s at byte offset at and returns the tail.
func (s *String) SplitOff(at int) (string, error) {
	if err := textbuf.CheckIndex(errors.PhaseMutate, "split_off", s.buf, at); err != nil {
		return "", err
	}
	tail := string(s.buf[at:])
	s.buf = s.buf[:at]
	return tail, nil
}
