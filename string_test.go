package inlinestr_test

import (
	"fmt"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/wippyai/inlinestr"
	"github.com/wippyai/inlinestr/errors"
	"github.com/wippyai/inlinestr/inlinable"
	"github.com/wippyai/inlinestr/stdstr"
)

type impl struct {
	name string
	from func(string) inlinestr.StringExt
}

var impls = []impl{
	{"inlinable", func(s string) inlinestr.StringExt { v := inlinable.From(s); return &v }},
	{"stdstr", func(s string) inlinestr.StringExt { v := stdstr.From(s); return &v }},
}

// op runs one operation and renders its result for comparison.
type op struct {
	name string
	run  func(s inlinestr.StringExt) (string, error)
}

func ops() []op {
	return []op{
		{"push", func(s inlinestr.StringExt) (string, error) { s.Push('€'); return "", nil }},
		{"push invalid", func(s inlinestr.StringExt) (string, error) { s.Push(0xDFFF); return "", nil }},
		{"push_str", func(s inlinestr.StringExt) (string, error) { s.PushStr(" world, this is long"); return "", nil }},
		{"push_bytes", func(s inlinestr.StringExt) (string, error) { return "", s.PushBytes([]byte("ok")) }},
		{"push_bytes invalid", func(s inlinestr.StringExt) (string, error) { return "", s.PushBytes([]byte{'a', 0xC0}) }},
		{"insert 0", func(s inlinestr.StringExt) (string, error) { return "", s.Insert(0, 'é') }},
		{"insert 2", func(s inlinestr.StringExt) (string, error) { return "", s.Insert(2, 'x') }},
		{"insert past end", func(s inlinestr.StringExt) (string, error) { return "", s.Insert(s.Len()+1, 'x') }},
		{"insert_str mid", func(s inlinestr.StringExt) (string, error) { return "", s.InsertStr(s.Len()/2, "-mid-") }},
		{"truncate 2", func(s inlinestr.StringExt) (string, error) { return "", s.Truncate(2) }},
		{"truncate past end", func(s inlinestr.StringExt) (string, error) { return "", s.Truncate(s.Len() + 1) }},
		{"pop", func(s inlinestr.StringExt) (string, error) {
			r, ok := s.Pop()
			return fmt.Sprintf("%q %v", r, ok), nil
		}},
		{"remove 1", func(s inlinestr.StringExt) (string, error) {
			r, err := s.Remove(1)
			return string(r), err
		}},
		{"retain", func(s inlinestr.StringExt) (string, error) {
			s.Retain(func(r rune) bool { return r != 'l' && r != 'é' })
			return "", nil
		}},
		{"clear", func(s inlinestr.StringExt) (string, error) { s.Clear(); return "", nil }},
		{"drain 0:6", func(s inlinestr.StringExt) (string, error) { return s.Drain(0, 6) }},
		{"drain 2:1", func(s inlinestr.StringExt) (string, error) { return s.Drain(2, 1) }},
		{"replace_range", func(s inlinestr.StringExt) (string, error) {
			return "", s.ReplaceRange(1, 3, "REPLACEMENT TEXT")
		}},
		{"split_off 3", func(s inlinestr.StringExt) (string, error) { return s.SplitOff(3) }},
		{"slice 1:4", func(s inlinestr.StringExt) (string, error) { return s.Slice(1, 4) }},
		{"runes", func(s inlinestr.StringExt) (string, error) { return string(s.Runes()), nil }},
		{"chars", func(s inlinestr.StringExt) (string, error) {
			return string(slices.Collect(s.Chars())), nil
		}},
		{"char_indices", func(s inlinestr.StringExt) (string, error) {
			var b strings.Builder
			for i, r := range s.CharIndices() {
				fmt.Fprintf(&b, "%d:%c ", i, r)
			}
			return b.String(), nil
		}},
		{"into_bytes", func(s inlinestr.StringExt) (string, error) { return string(s.IntoBytes()), nil }},
		{"shrink", func(s inlinestr.StringExt) (string, error) { s.ShrinkToFit(); return "", nil }},

		// arguments that borrow the receiver's own storage
		{"push_str self", func(s inlinestr.StringExt) (string, error) { s.PushStr(s.AsStr()); return "", nil }},
		{"push_str self twice", func(s inlinestr.StringExt) (string, error) {
			s.PushStr(s.AsStr())
			s.PushStr(s.AsStr())
			return "", nil
		}},
		{"push_str last char", func(s inlinestr.StringExt) (string, error) {
			_, size := utf8.DecodeLastRuneInString(s.AsStr())
			s.PushStr(s.AsStr()[s.Len()-size:])
			return "", nil
		}},
		{"push_bytes self", func(s inlinestr.StringExt) (string, error) { return "", s.PushBytes(s.Bytes()) }},
		{"insert_str self 0", func(s inlinestr.StringExt) (string, error) { return "", s.InsertStr(0, s.AsStr()) }},
		{"insert_str self end", func(s inlinestr.StringExt) (string, error) { return "", s.InsertStr(s.Len(), s.AsStr()) }},
		{"replace_range self", func(s inlinestr.StringExt) (string, error) {
			_, size := utf8.DecodeRuneInString(s.AsStr())
			return "", s.ReplaceRange(0, size, s.AsStr())
		}},
	}
}

var starts = []string{
	"",
	"hello",
	"a€b",
	"héllo wörld",
	"hello world",
	"hello world, this is long",
	"𝄞𝄞𝄞𝄞𝄞",
}

func TestEquivalence(t *testing.T) {
	for _, o := range ops() {
		for _, start := range starts {
			t.Run(fmt.Sprintf("%s/%q", o.name, start), func(t *testing.T) {
				type outcome struct {
					content, result string
					kind            errors.Kind
					length          int
				}
				var got []outcome
				for _, im := range impls {
					s := im.from(start)
					res, err := o.run(s)
					got = append(got, outcome{s.AsStr(), res, errors.KindOf(err), s.Len()})
					if err != nil && s.AsStr() != start {
						t.Errorf("%s: failed op changed %q to %q", im.name, start, s.AsStr())
					}
					if !utf8.ValidString(s.AsStr()) {
						t.Errorf("%s: invalid UTF-8 %q", im.name, s.AsStr())
					}
				}
				for i := 1; i < len(got); i++ {
					if got[i] != got[0] {
						t.Errorf("%s = %+v, %s = %+v", impls[0].name, got[0], impls[i].name, got[i])
					}
				}
			})
		}
	}
}

func TestBoundaryErrorLeavesContent(t *testing.T) {
	// offset 2 is the second byte of the 3-byte '€'
	for _, im := range impls {
		t.Run(im.name, func(t *testing.T) {
			s := im.from("a€b")
			if err := s.Insert(2, 'x'); !errors.Is(err, errors.ErrCharBoundary) {
				t.Errorf("insert: %v", err)
			}
			if err := s.Truncate(2); !errors.Is(err, errors.ErrCharBoundary) {
				t.Errorf("truncate: %v", err)
			}
			if _, err := s.Drain(0, 2); !errors.Is(err, errors.ErrCharBoundary) {
				t.Errorf("drain: %v", err)
			}
			if s.AsStr() != "a€b" {
				t.Errorf("content = %q", s.AsStr())
			}
		})
	}
}

func TestJoin(t *testing.T) {
	for _, im := range impls {
		t.Run(im.name, func(t *testing.T) {
			s := im.from("> ")
			inlinestr.Join(s, []string{"alpha", "beta", "gamma"}, ", ")
			if s.AsStr() != "> alpha, beta, gamma" {
				t.Errorf("got %q", s.AsStr())
			}
			e := im.from("")
			inlinestr.Join(e, nil, ",")
			if !e.IsEmpty() {
				t.Errorf("empty join = %q", e.AsStr())
			}
		})
	}
}

func TestJoinValues(t *testing.T) {
	a, b := inlinable.From("short"), inlinable.From("a much longer heap value")
	dst := stdstr.From("")
	inlinestr.JoinValues(&dst, []*inlinable.String{&a, &b}, " | ")
	if dst.AsStr() != "short | a much longer heap value" {
		t.Errorf("got %q", dst.AsStr())
	}
}

func TestExtend(t *testing.T) {
	for _, im := range impls {
		t.Run(im.name, func(t *testing.T) {
			src := im.from("héllo")
			dst := im.from("")
			inlinestr.Extend(dst, src.Chars())
			inlinestr.ExtendStrings(dst, slices.Values([]string{" ", "wörld"}))
			if dst.AsStr() != "héllo wörld" {
				t.Errorf("got %q", dst.AsStr())
			}
		})
	}
}

func TestRepeat(t *testing.T) {
	for _, im := range impls {
		t.Run(im.name, func(t *testing.T) {
			s := im.from("")
			inlinestr.Repeat(s, "ab", 10)
			if s.AsStr() != strings.Repeat("ab", 10) {
				t.Errorf("got %q", s.AsStr())
			}
			inlinestr.Repeat(s, "x", 0)
			if s.Len() != 20 {
				t.Errorf("Len = %d", s.Len())
			}
		})
	}
	defer func() {
		if recover() == nil {
			t.Error("negative count should panic")
		}
	}()
	inlinestr.Repeat(impls[0].from(""), "x", -1)
}

func TestCompareAndSearch(t *testing.T) {
	a := inlinable.From("apple pie")
	b := stdstr.From("apple pie")
	c := stdstr.From("banana")

	if !inlinestr.Equal(&a, &b) || inlinestr.Equal(&a, &c) {
		t.Error("Equal")
	}
	if inlinestr.Compare(&a, &c) >= 0 || inlinestr.Compare(&c, &a) <= 0 || inlinestr.Compare(&a, &b) != 0 {
		t.Error("Compare")
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"contains", inlinestr.Contains(&a, "le p"), true},
		{"index", inlinestr.Index(&a, "p"), 1},
		{"last index", inlinestr.LastIndex(&a, "p"), 6},
		{"has prefix", inlinestr.HasPrefix(&a, "app"), true},
		{"has suffix", inlinestr.HasSuffix(&a, "pie"), true},
		{"count", inlinestr.Count(&a, "p"), 3},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestCompareCodePointOrder(t *testing.T) {
	// byte order of UTF-8 matches code point order
	x := inlinable.From("ÿ")
	y := inlinable.From("\U0001F600")
	if inlinestr.Compare(&x, &y) >= 0 {
		t.Error("U+00FF should sort before U+1F600")
	}
}

// FuzzEquivalence drives both implementations through the same script and
// checks they stay byte-identical and valid.
func FuzzEquivalence(f *testing.F) {
	f.Add([]byte{0, 'h', 1, 3, 2, 0, 6, 4})
	f.Add([]byte("\x00\xe2\x82\xac\x01\x05\x03\x01"))
	f.Add([]byte{5, 5, 5, 0, 0xff, 2, 9, 9})
	f.Add([]byte{1, 3, 8, 0, 9, 2, 8, 0})

	f.Fuzz(func(t *testing.T, script []byte) {
		a := inlinable.New()
		b := stdstr.From("")
		values := []inlinestr.StringExt{&a, &b}

		for i := 0; i+1 < len(script); i += 2 {
			code, arg := script[i]%10, int(script[i+1])
			var outs []string
			for _, s := range values {
				var res string
				var err error
				switch code {
				case 0:
					s.Push(rune(arg) * 97)
				case 1:
					s.PushStr(strings.Repeat("é", arg%7))
				case 2:
					err = s.Insert(arg%(s.Len()+2), 'ß')
				case 3:
					res, err = s.Drain(arg%(s.Len()+1), s.Len())
				case 4:
					err = s.Truncate(arg % (s.Len() + 2))
				case 5:
					err = s.ReplaceRange(0, arg%(s.Len()+1), "rép")
				case 6:
					r, ok := s.Pop()
					res = fmt.Sprint(r, ok)
				case 7:
					res, err = s.SplitOff(arg % (s.Len() + 1))
				case 8:
					if s.Len() < 4096 {
						s.PushStr(s.AsStr())
					}
				case 9:
					if s.Len() < 4096 {
						err = s.InsertStr(arg%(s.Len()+1), s.AsStr())
					}
				}
				outs = append(outs, fmt.Sprintf("%q|%q|%s", s.AsStr(), res, errors.KindOf(err)))
				if !utf8.ValidString(s.AsStr()) {
					t.Fatalf("invalid UTF-8 after op %d: %q", code, s.AsStr())
				}
			}
			if outs[0] != outs[1] {
				t.Fatalf("diverged after op %d(%d): %s vs %s", code, arg, outs[0], outs[1])
			}
		}
	})
}
