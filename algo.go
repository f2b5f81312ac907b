package inlinestr

import (
	"iter"
	"strings"
)

// Join appends elems to dst separated by sep, reserving the total length
// up front.
func Join(dst StringExt, elems []string, sep string) {
	if len(elems) == 0 {
		return
	}
	n := len(sep) * (len(elems) - 1)
	for _, e := range elems {
		n += len(e)
	}
	dst.Reserve(n)
	for i, e := range elems {
		if i > 0 {
			dst.PushStr(sep)
		}
		dst.PushStr(e)
	}
}

// JoinValues is Join over string values of any representation.
func JoinValues[S StringExt](dst StringExt, elems []S, sep string) {
	if len(elems) == 0 {
		return
	}
	n := len(sep) * (len(elems) - 1)
	for _, e := range elems {
		n += e.Len()
	}
	dst.Reserve(n)
	for i, e := range elems {
		if i > 0 {
			dst.PushStr(sep)
		}
		dst.PushStr(e.AsStr())
	}
}

// Extend appends every character of seq to dst.
func Extend(dst StringExt, seq iter.Seq[rune]) {
	for r := range seq {
		dst.Push(r)
	}
}

// ExtendStrings appends every string of seq to dst.
func ExtendStrings(dst StringExt, seq iter.Seq[string]) {
	for s := range seq {
		dst.PushStr(s)
	}
}

// Repeat appends n copies of s to dst. It panics if n is negative.
func Repeat(dst StringExt, s string, n int) {
	if n < 0 {
		panic("inlinestr: negative Repeat count")
	}
	if n == 0 || s == "" {
		return
	}
	if len(s)*n/n != len(s) {
		panic("inlinestr: Repeat output length overflow")
	}
	dst.Reserve(len(s) * n)
	for range n {
		dst.PushStr(s)
	}
}

// Equal reports whether a and b hold the same content.
func Equal(a, b StringExt) bool {
	return a.AsStr() == b.AsStr()
}

// Compare orders a and b byte-wise, which for UTF-8 is code point order.
func Compare(a, b StringExt) int {
	return strings.Compare(a.AsStr(), b.AsStr())
}

func Contains(s StringExt, substr string) bool  { return strings.Contains(s.AsStr(), substr) }
func Index(s StringExt, substr string) int      { return strings.Index(s.AsStr(), substr) }
func LastIndex(s StringExt, substr string) int  { return strings.LastIndex(s.AsStr(), substr) }
func HasPrefix(s StringExt, prefix string) bool { return strings.HasPrefix(s.AsStr(), prefix) }
func HasSuffix(s StringExt, suffix string) bool { return strings.HasSuffix(s.AsStr(), suffix) }
func Count(s StringExt, substr string) int      { return strings.Count(s.AsStr(), substr) }
