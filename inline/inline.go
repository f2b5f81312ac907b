// Package inline provides String, a short UTF-8 string stored entirely in
// its own fixed-size footprint. It never allocates.
//
// Every operation that would grow the content past Capacity fails with a
// not_enough_space error and leaves the value unchanged. For a string that
// transparently moves to the heap instead, use package inlinable.
package inline

import (
	"iter"
	"unicode/utf8"
	"unsafe"

	"github.com/wippyai/inlinestr/errors"
	"github.com/wippyai/inlinestr/internal/textbuf"
)

// Capacity is the number of content bytes a String can hold: two machine
// words minus the length byte, so that the inline form of inlinable.String
// fits in the space a heap buffer uses for its length and capacity.
const Capacity = 2*int(unsafe.Sizeof(uintptr(0))) - 1

// String is a fixed-capacity UTF-8 string. The zero value is empty.
//
// bytes[0:n] is always complete, valid UTF-8; bytes past n are unspecified.
type String struct {
	buf [Capacity]byte
	n   uint8
}

// From copies s into a new String.
func From(s string) (String, error) {
	var v String
	if len(s) > Capacity {
		return v, errors.NotEnoughSpace("from", len(s), Capacity)
	}
	copy(v.buf[:], s)
	v.n = uint8(len(s))
	return v, nil
}

// FromBytes validates b and copies it into a new String.
func FromBytes(b []byte) (String, error) {
	var v String
	if err := textbuf.Validate(errors.PhaseConstruct, "from_bytes", b); err != nil {
		return v, err
	}
	if len(b) > Capacity {
		return v, errors.NotEnoughSpace("from_bytes", len(b), Capacity)
	}
	copy(v.buf[:], b)
	v.n = uint8(len(b))
	return v, nil
}

func (s *String) assertSanity() {
	if int(s.n) > Capacity {
		panic("inline: internal error: length greater than capacity")
	}
}

// Len returns the number of bytes in s.
func (s *String) Len() int { return int(s.n) }

// Cap returns Capacity.
func (s *String) Cap() int { return Capacity }

// IsEmpty reports whether s holds no bytes.
func (s *String) IsEmpty() bool { return s.n == 0 }

// AsStr returns the content without copying. The result aliases s and is
// only valid until s is next modified.
func (s *String) AsStr() string {
	if s.n == 0 {
		return ""
	}
	return unsafe.String(&s.buf[0], int(s.n))
}

// String returns a copy of the content.
func (s *String) String() string {
	return string(s.buf[:s.n])
}

// Bytes returns the content as a byte view aliasing s. It must not be
// modified.
func (s *String) Bytes() []byte {
	return s.buf[:s.n:s.n]
}

// IntoBytes returns the whole backing array with bytes past Len zeroed.
func (s *String) IntoBytes() [Capacity]byte {
	out := s.buf
	clear(out[s.n:])
	return out
}

// Chars yields the characters of s in order.
func (s *String) Chars() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range s.AsStr() {
			if !yield(r) {
				return
			}
		}
	}
}

// PushStr appends str.
func (s *String) PushStr(str string) error {
	s.assertSanity()
	n := int(s.n) + len(str)
	if n > Capacity {
		return errors.NotEnoughSpace("push_str", n, Capacity)
	}
	copy(s.buf[s.n:], str)
	s.n = uint8(n)
	return nil
}

// Push appends r. Invalid runes are written as U+FFFD.
func (s *String) Push(r rune) error {
	s.assertSanity()
	n := int(s.n) + textbuf.RuneLen(r)
	if n > Capacity {
		return errors.NotEnoughSpace("push", n, Capacity)
	}
	utf8.EncodeRune(s.buf[s.n:], r)
	s.n = uint8(n)
	return nil
}

// Insert inserts r at byte offset idx.
func (s *String) Insert(idx int, r rune) error {
	s.assertSanity()
	if err := textbuf.CheckIndex(errors.PhaseMutate, "insert", s.Bytes(), idx); err != nil {
		return err
	}
	n := int(s.n) + textbuf.RuneLen(r)
	if n > Capacity {
		return errors.NotEnoughSpace("insert", n, Capacity)
	}
	s.n = uint8(len(textbuf.InsertRune(s.buf[:s.n], idx, r)))
	return nil
}

// InsertStr inserts str at byte offset idx.
func (s *String) InsertStr(idx int, str string) error {
	s.assertSanity()
	if err := textbuf.CheckIndex(errors.PhaseMutate, "insert_str", s.Bytes(), idx); err != nil {
		return err
	}
	n := int(s.n) + len(str)
	if n > Capacity {
		return errors.NotEnoughSpace("insert_str", n, Capacity)
	}
	s.n = uint8(len(textbuf.Insert(s.buf[:s.n], idx, str)))
	return nil
}

// Truncate shortens s to newLen bytes.
func (s *String) Truncate(newLen int) error {
	if err := textbuf.CheckIndex(errors.PhaseMutate, "truncate", s.Bytes(), newLen); err != nil {
		return err
	}
	s.n = uint8(newLen)
	return nil
}

// Pop removes and returns the last character.
func (s *String) Pop() (rune, bool) {
	if s.n == 0 {
		return 0, false
	}
	r, size := utf8.DecodeLastRune(s.buf[:s.n])
	s.n -= uint8(size)
	return r, true
}

// Remove removes and returns the character at byte offset idx.
func (s *String) Remove(idx int) (rune, error) {
	if err := textbuf.CheckElement(errors.PhaseMutate, "remove", s.Bytes(), idx); err != nil {
		return 0, err
	}
	r, size := utf8.DecodeRune(s.buf[idx:s.n])
	s.n = uint8(len(textbuf.Cut(s.buf[:s.n], idx, idx+size)))
	return r, nil
}

// Drain removes [start, end) and returns it.
func (s *String) Drain(start, end int) (string, error) {
	if err := textbuf.CheckRange(errors.PhaseMutate, "drain", s.Bytes(), start, end); err != nil {
		return "", err
	}
	out := string(s.buf[start:end])
	s.n = uint8(len(textbuf.Cut(s.buf[:s.n], start, end)))
	return out, nil
}

// Clear empties s.
func (s *String) Clear() {
	s.n = 0
}

// AsMutBytesUnchecked exposes the backing array as a slice with length Len
// and capacity Capacity.
//
// Unchecked: the caller must leave bytes[0:Len] valid UTF-8 and publish any
// length change through SetLenUnchecked. Breaking that contract is a
// programming error, not a reported failure.
func (s *String) AsMutBytesUnchecked() []byte {
	return s.buf[:s.n]
}

// SetLenUnchecked sets the content length. n must be <= Capacity and
// bytes[0:n] must be valid UTF-8.
func (s *String) SetLenUnchecked(n int) {
	if n < 0 || n > Capacity {
		panic("inline: SetLenUnchecked length out of range")
	}
	s.n = uint8(n)
}
