package inlinable

import (
	"iter"
	"unicode/utf8"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/inlinestr"
	"github.com/wippyai/inlinestr/errors"
	"github.com/wippyai/inlinestr/inline"
	"github.com/wippyai/inlinestr/internal/growth"
	"github.com/wippyai/inlinestr/internal/textbuf"
	"github.com/wippyai/inlinestr/internal/transcode"
)

var _ inlinestr.StringExt = (*String)(nil)

// String is a UTF-8 string stored inline while it fits in inline.Capacity
// bytes and on the heap afterwards. The zero value is an empty inline
// string ready to use.
type String struct {
	// heap is nil in the Inline state. In the Heap state it points at the
	// first byte of an owned buffer of words[1] bytes.
	heap *byte
	// Inline: reinterpreted as an inline.String.
	// Heap: words[0] is the length, words[1] the capacity.
	words [2]int
}

// The inline.String overlay must fit in words.
var _ [unsafe.Sizeof([2]int{}) - unsafe.Sizeof(inline.String{})]struct{}

// New returns an empty inline String.
func New() String {
	return String{}
}

// From copies str into a new String. Content longer than inline.Capacity
// goes to a heap buffer of exactly len(str) bytes.
func From(str string) String {
	var s String
	if len(str) <= inline.Capacity {
		s.commit(append(s.view(), str...))
		return s
	}
	b := make([]byte, len(str))
	copy(b, str)
	s.adopt(b)
	return s
}

// WithCapacity returns an empty String able to hold n bytes without
// reallocating. It starts inline when n <= inline.Capacity. It panics if n
// is negative.
func WithCapacity(n int) String {
	if n < 0 {
		panic("inlinable: negative capacity")
	}
	var s String
	if n > inline.Capacity {
		s.adopt(make([]byte, 0, n))
	}
	return s
}

// FromBytes validates b as UTF-8 and builds a String from it. Short input
// is copied inline; longer input is adopted as the heap buffer without
// copying, so the caller must not use b afterwards.
func FromBytes(b []byte) (String, error) {
	if err := textbuf.Validate(errors.PhaseConstruct, "from_bytes", b); err != nil {
		return String{}, err
	}
	return FromBytesUnchecked(b), nil
}

// FromBytesUnchecked is FromBytes without validation. b must be valid UTF-8.
func FromBytesUnchecked(b []byte) String {
	var s String
	if len(b) <= inline.Capacity {
		s.commit(append(s.view(), b...))
		return s
	}
	s.adopt(b)
	return s
}

// FromUTF16 decodes UTF-16 code units, failing on an unpaired surrogate.
func FromUTF16(units []uint16) (String, error) {
	b, err := transcode.FromUTF16(errors.PhaseConstruct, "from_utf16", units)
	if err != nil {
		return String{}, err
	}
	return FromBytesUnchecked(b), nil
}

// FromUTF16Lossy decodes UTF-16 code units, replacing unpaired surrogates
// with U+FFFD.
func FromUTF16Lossy(units []uint16) String {
	return FromBytesUnchecked(transcode.FromUTF16Lossy(units))
}

// FromUTF8Lossy builds a String from b, replacing each invalid sequence with
// U+FFFD. b is never adopted.
func FromUTF8Lossy(b []byte) String {
	return FromBytesUnchecked(transcode.UTF8Lossy(b))
}

// FromRunes encodes runes into a new String sized exactly for them.
func FromRunes(runes []rune) String {
	n := 0
	for _, r := range runes {
		n += textbuf.RuneLen(r)
	}
	s := WithCapacity(n)
	for _, r := range runes {
		s.Push(r)
	}
	return s
}

// FromChars collects a sequence of characters.
func FromChars(seq iter.Seq[rune]) String {
	var s String
	for r := range seq {
		s.Push(r)
	}
	return s
}

func (s *String) inl() *inline.String {
	return (*inline.String)(unsafe.Pointer(&s.words))
}

// view returns the content as a slice whose capacity is the usable storage,
// inline or heap. Edits on it are published with commit.
func (s *String) view() []byte {
	if s.heap == nil {
		return s.inl().AsMutBytesUnchecked()
	}
	return unsafe.Slice(s.heap, s.words[1])[:s.words[0]]
}

// commit publishes the length of b, which must share storage with view().
func (s *String) commit(b []byte) {
	if s.heap == nil {
		s.inl().SetLenUnchecked(len(b))
		return
	}
	s.words[0] = len(b)
}

// adopt switches s to the Heap state over b. cap(b) must be > 0.
func (s *String) adopt(b []byte) {
	s.heap = unsafe.SliceData(b[:cap(b)])
	s.words = [2]int{len(b), cap(b)}
}

// IsInline reports whether the content is stored inline.
func (s *String) IsInline() bool { return s.heap == nil }

// Len returns the length in bytes.
func (s *String) Len() int {
	if s.heap == nil {
		return s.inl().Len()
	}
	return s.words[0]
}

// IsEmpty reports whether s has no content.
func (s *String) IsEmpty() bool { return s.Len() == 0 }

// Cap returns inline.Capacity for an inline String and the buffer capacity
// otherwise.
func (s *String) Cap() int {
	if s.heap == nil {
		return inline.Capacity
	}
	return s.words[1]
}

// AsStr returns the content without copying. The result aliases s and is
// valid only until s is next modified.
func (s *String) AsStr() string {
	if s.heap == nil {
		return s.inl().AsStr()
	}
	if s.words[0] == 0 {
		return ""
	}
	return unsafe.String(s.heap, s.words[0])
}

// Bytes returns a read-only view of the content with the lifetime of AsStr.
func (s *String) Bytes() []byte {
	b := s.view()
	return b[:len(b):len(b)]
}

// String returns a copy of the content.
func (s *String) String() string {
	return string(s.view())
}

// Slice returns the borrowed sub-view [start, end).
func (s *String) Slice(start, end int) (string, error) {
	if err := textbuf.CheckRange(errors.PhaseInspect, "slice", s.view(), start, end); err != nil {
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
func (s *String) Runes() []rune {
	return []rune(s.AsStr())
}

// IntoBytes returns the content and resets s to an empty inline String. A
// heap buffer is handed over as is; inline content is copied out.
func (s *String) IntoBytes() []byte {
	b := s.view()
	if s.heap == nil {
		b = append([]byte(nil), b...)
	}
	*s = String{}
	return b
}

// Clone returns an independent copy of s. A heap String clones to a heap
// String sized to its length.
func (s *String) Clone() String {
	if s.heap == nil {
		return *s
	}
	var c String
	c.adopt(append(make([]byte, 0, max(s.words[0], 1)), s.view()...))
	return c
}

// Reserve makes room for at least additional more bytes, growing by the
// shared doubling policy. This is where an inline String is promoted to
// the heap. It panics if additional is negative.
func (s *String) Reserve(additional int) {
	s.reserve(additional, false)
}

// ReserveExact is like Reserve but allocates no more than needed.
func (s *String) ReserveExact(additional int) {
	s.reserve(additional, true)
}

func (s *String) reserve(additional int, exact bool) {
	n := s.Len()
	required := growth.Required(n, additional)
	c := s.Cap()
	if required <= c {
		return
	}
	newCap := required
	if !exact {
		newCap = growth.Next(c, required)
	}
	buf := growth.Realloc(s.view(), newCap)
	if s.heap == nil {
		if ce := Logger().Check(zap.DebugLevel, "string promoted to heap"); ce != nil {
			ce.Write(zap.Int("len", n), zap.Int("required", required), zap.Int("cap", newCap))
		}
	}
	s.adopt(buf)
}

// ShrinkToFit reduces a heap buffer to the content length. An inline String
// is left alone and a heap String stays on the heap.
func (s *String) ShrinkToFit() {
	if s.heap == nil {
		return
	}
	target := max(s.words[0], 1)
	if target < s.words[1] {
		s.adopt(growth.Realloc(s.view(), target))
	}
}

// Push appends r. An invalid rune is appended as U+FFFD.
func (s *String) Push(r rune) {
	s.Reserve(textbuf.RuneLen(r))
	s.commit(utf8.AppendRune(s.view(), r))
}

// PushStr appends str. str may be a view of s itself.
func (s *String) PushStr(str string) {
	str = textbuf.Detach(s.view(), str)
	s.Reserve(len(str))
	s.commit(append(s.view(), str...))
}

// PushBytes validates b and appends it. Invalid input leaves s unchanged.
func (s *String) PushBytes(b []byte) error {
	if err := textbuf.Validate(errors.PhaseMutate, "push_bytes", b); err != nil {
		return err
	}
	s.PushBytesUnchecked(b)
	return nil
}

// PushBytesUnchecked appends b without validation. b must be valid UTF-8.
func (s *String) PushBytesUnchecked(b []byte) {
	b = textbuf.DetachBytes(s.view(), b)
	s.Reserve(len(b))
	s.commit(append(s.view(), b...))
}

// Insert inserts r at byte offset idx.
func (s *String) Insert(idx int, r rune) error {
	if err := textbuf.CheckIndex(errors.PhaseMutate, "insert", s.view(), idx); err != nil {
		return err
	}
	s.Reserve(textbuf.RuneLen(r))
	s.commit(textbuf.InsertRune(s.view(), idx, r))
	return nil
}

// InsertStr inserts str at byte offset idx.
func (s *String) InsertStr(idx int, str string) error {
	if err := textbuf.CheckIndex(errors.PhaseMutate, "insert_str", s.view(), idx); err != nil {
		return err
	}
	str = textbuf.Detach(s.view(), str)
	s.Reserve(len(str))
	s.commit(textbuf.Insert(s.view(), idx, str))
	return nil
}

// Truncate shortens s to newLen bytes. The capacity and state are kept.
func (s *String) Truncate(newLen int) error {
	b := s.view()
	if err := textbuf.CheckIndex(errors.PhaseMutate, "truncate", b, newLen); err != nil {
		return err
	}
	s.commit(b[:newLen])
	return nil
}

// Pop removes and returns the last character.
func (s *String) Pop() (rune, bool) {
	b := s.view()
	if len(b) == 0 {
		return 0, false
	}
	r, size := utf8.DecodeLastRune(b)
	s.commit(b[:len(b)-size])
	return r, true
}

// Remove removes and returns the character starting at byte offset idx.
func (s *String) Remove(idx int) (rune, error) {
	b := s.view()
	if err := textbuf.CheckElement(errors.PhaseMutate, "remove", b, idx); err != nil {
		return 0, err
	}
	r, size := utf8.DecodeRune(b[idx:])
	s.commit(textbuf.Cut(b, idx, idx+size))
	return r, nil
}

// Retain keeps only the characters for which keep returns true. If keep
// panics, s is left empty.
func (s *String) Retain(keep func(rune) bool) {
	b := s.view()
	s.commit(b[:0])
	s.commit(textbuf.Retain(b, keep))
}

// Clear empties s without releasing storage.
func (s *String) Clear() {
	s.commit(s.view()[:0])
}

// Drain removes the bytes in [start, end) and returns them.
func (s *String) Drain(start, end int) (string, error) {
	b := s.view()
	if err := textbuf.CheckRange(errors.PhaseMutate, "drain", b, start, end); err != nil {
		return "", err
	}
	out := string(b[start:end])
	s.commit(textbuf.Cut(b, start, end))
	return out, nil
}

// ReplaceRange replaces the bytes in [start, end) with str.
func (s *String) ReplaceRange(start, end int, str string) error {
	if err := textbuf.CheckRange(errors.PhaseMutate, "replace_range", s.view(), start, end); err != nil {
		return err
	}
	str = textbuf.Detach(s.view(), str)
	if grow := len(str) - (end - start); grow > 0 {
		s.Reserve(grow)
	}
	s.commit(textbuf.Replace(s.view(), start, end, str))
	return nil
}

// SplitOff truncates s at byte offset at and returns the removed tail.
func (s *String) SplitOff(at int) (string, error) {
	b := s.view()
	if err := textbuf.CheckIndex(errors.PhaseMutate, "split_off", b, at); err != nil {
		return "", err
	}
	tail := string(b[at:])
	s.commit(b[:at])
	return tail, nil
}
