package inline

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/wippyai/inlinestr/errors"
)

func TestFootprint(t *testing.T) {
	if got, want := unsafe.Sizeof(String{}), 2*unsafe.Sizeof(uintptr(0)); got != want {
		t.Errorf("sizeof(String) = %d, want %d", got, want)
	}
}

func TestPushStr(t *testing.T) {
	var s String
	if err := s.PushStr("small"); err != nil {
		t.Fatalf("PushStr: %v", err)
	}
	if s.AsStr() != "small" {
		t.Errorf("got %q", s.AsStr())
	}

	long := "this is a really long string that is much larger than the inline capacity"
	err := s.PushStr(long)
	if !errors.Is(err, errors.ErrNotEnoughSpace) {
		t.Errorf("err = %v, want not_enough_space", err)
	}
	if s.AsStr() != "small" {
		t.Errorf("failed push modified content: %q", s.AsStr())
	}
}

func TestPush(t *testing.T) {
	var s String
	for i := 0; i < Capacity; i++ {
		if err := s.Push('a'); err != nil {
			t.Fatalf("Push %d: %v", i, err)
		}
	}
	if err := s.Push('a'); !errors.Is(err, errors.ErrNotEnoughSpace) {
		t.Errorf("err = %v, want not_enough_space", err)
	}
	if s.Len() != Capacity {
		t.Errorf("Len = %d, want %d", s.Len(), Capacity)
	}
}

func TestPush_MultiByteAtEdge(t *testing.T) {
	s, _ := From(strings.Repeat("a", Capacity-1))
	if err := s.Push('é'); !errors.Is(err, errors.ErrNotEnoughSpace) {
		t.Errorf("2-byte rune into 1 free byte: err = %v", err)
	}
	if s.Len() != Capacity-1 {
		t.Errorf("Len = %d after failed push", s.Len())
	}
}

func TestInsert(t *testing.T) {
	var s String
	for i := 0; i < Capacity; i++ {
		if err := s.Insert(0, 'a'); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
	}
	if err := s.Insert(0, 'a'); !errors.Is(err, errors.ErrNotEnoughSpace) {
		t.Errorf("err = %v, want not_enough_space", err)
	}

	s, _ = From("foo")
	if err := s.Insert(2, 'f'); err != nil {
		t.Fatal(err)
	}
	if s.AsStr() != "fofo" {
		t.Errorf("got %q, want fofo", s.AsStr())
	}
}

func TestInsertStr_Boundary(t *testing.T) {
	s, _ := From("a€b")
	err := s.InsertStr(2, "x")
	if !errors.Is(err, errors.ErrCharBoundary) {
		t.Errorf("err = %v, want char_boundary", err)
	}
	if s.AsStr() != "a€b" {
		t.Errorf("content changed: %q", s.AsStr())
	}
	if err := s.InsertStr(4, "x"); err != nil {
		t.Fatal(err)
	}
	if s.AsStr() != "a€xb" {
		t.Errorf("got %q", s.AsStr())
	}
}

func TestTruncate(t *testing.T) {
	s, _ := From("hello")
	if err := s.Truncate(2); err != nil {
		t.Fatal(err)
	}
	if s.AsStr() != "he" {
		t.Errorf("got %q", s.AsStr())
	}
	if err := s.Truncate(3); !errors.Is(err, errors.ErrOutOfBounds) {
		t.Errorf("err = %v, want out_of_bounds", err)
	}

	s, _ = From("é")
	if err := s.Truncate(1); !errors.Is(err, errors.ErrCharBoundary) {
		t.Errorf("err = %v, want char_boundary", err)
	}
}

func TestPop(t *testing.T) {
	s, _ := From("foé")
	want := []rune{'é', 'o', 'f'}
	for _, w := range want {
		r, ok := s.Pop()
		if !ok || r != w {
			t.Errorf("Pop = %q, %v; want %q", r, ok, w)
		}
	}
	if _, ok := s.Pop(); ok {
		t.Error("Pop on empty should report false")
	}
}

func TestRemove(t *testing.T) {
	s, _ := From("foo")
	for _, tc := range []struct {
		idx  int
		want rune
	}{{0, 'f'}, {1, 'o'}, {0, 'o'}} {
		r, err := s.Remove(tc.idx)
		if err != nil || r != tc.want {
			t.Errorf("Remove(%d) = %q, %v; want %q", tc.idx, r, err, tc.want)
		}
	}
	if _, err := s.Remove(0); !errors.Is(err, errors.ErrOutOfBounds) {
		t.Errorf("Remove on empty: err = %v", err)
	}
}

func TestDrain(t *testing.T) {
	if Capacity < 11 {
		t.Skip("needs a 64-bit inline capacity")
	}
	s, _ := From("hello world")
	got, err := s.Drain(0, 6)
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello " || s.AsStr() != "world" {
		t.Errorf("Drain = %q, remaining %q", got, s.AsStr())
	}
}

func TestFromBytes(t *testing.T) {
	if _, err := FromBytes([]byte{0xff}); !errors.Is(err, errors.ErrInvalidUTF8) {
		t.Errorf("err = %v, want invalid_utf8", err)
	}
	if _, err := FromBytes([]byte(strings.Repeat("x", Capacity+1))); !errors.Is(err, errors.ErrNotEnoughSpace) {
		t.Errorf("err = %v, want not_enough_space", err)
	}
	s, err := FromBytes([]byte("ok"))
	if err != nil || s.AsStr() != "ok" {
		t.Errorf("FromBytes = %q, %v", s.AsStr(), err)
	}
}

func TestIntoBytes(t *testing.T) {
	s, _ := From("hello")
	_ = s.Truncate(2)
	b := s.IntoBytes()
	if string(b[:2]) != "he" {
		t.Errorf("prefix = %q", b[:2])
	}
	for i := 2; i < Capacity; i++ {
		if b[i] != 0 {
			t.Fatalf("byte %d = %#x, want 0", i, b[i])
		}
	}
}

func TestChars(t *testing.T) {
	s, _ := From("aé€")
	var got []rune
	for r := range s.Chars() {
		got = append(got, r)
	}
	if string(got) != "aé€" {
		t.Errorf("Chars = %q", string(got))
	}
	// restartable
	n := 0
	for range s.Chars() {
		n++
	}
	if n != 3 {
		t.Errorf("second pass saw %d chars", n)
	}
}

func TestUnchecked(t *testing.T) {
	var s String
	b := s.AsMutBytesUnchecked()
	if cap(b) != Capacity {
		t.Errorf("cap = %d, want %d", cap(b), Capacity)
	}
	b = append(b, "abc"...)
	s.SetLenUnchecked(len(b))
	if s.AsStr() != "abc" {
		t.Errorf("got %q", s.AsStr())
	}

	defer func() {
		if recover() == nil {
			t.Error("SetLenUnchecked past capacity should panic")
		}
	}()
	s.SetLenUnchecked(Capacity + 1)
}

func TestPushAllocs(t *testing.T) {
	allocs := testing.AllocsPerRun(100, func() {
		var s String
		_ = s.PushStr("hi")
		_ = s.Push('!')
		_ = s.InsertStr(0, ">")
	})
	if allocs != 0 {
		t.Errorf("allocs = %v, want 0", allocs)
	}
}
