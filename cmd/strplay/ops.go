package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/inlinestr"
	"github.com/wippyai/inlinestr/inlinable"
	"github.com/wippyai/inlinestr/stdstr"
)

// step is one parsed edit command, applied identically to every value.
type step struct {
	name  string
	apply func(s inlinestr.StringExt) (string, error)
}

// parseOp parses the command syntax shared by -op and the interactive
// prompt:
//
//	push:TEXT  char:C  insert:IDX:TEXT  drain:START:END  replace:START:END:TEXT
//	truncate:N  remove:IDX  split:IDX  pop  clear  shrink  reserve:N
func parseOp(line string) (step, error) {
	name, rest, _ := strings.Cut(line, ":")
	st := step{name: line}
	switch name {
	case "push":
		st.apply = func(s inlinestr.StringExt) (string, error) { s.PushStr(rest); return "", nil }
	case "char":
		r := []rune(rest)
		if len(r) != 1 {
			return st, fmt.Errorf("char: want exactly one character, got %q", rest)
		}
		st.apply = func(s inlinestr.StringExt) (string, error) { s.Push(r[0]); return "", nil }
	case "insert":
		idx, text, err := intArg(name, rest)
		if err != nil {
			return st, err
		}
		st.apply = func(s inlinestr.StringExt) (string, error) { return "", s.InsertStr(idx, text) }
	case "drain", "replace":
		start, tail, err := intArg(name, rest)
		if err != nil {
			return st, err
		}
		end, text, err := intArg(name, tail)
		if err != nil {
			return st, err
		}
		if name == "drain" {
			st.apply = func(s inlinestr.StringExt) (string, error) { return s.Drain(start, end) }
		} else {
			st.apply = func(s inlinestr.StringExt) (string, error) { return "", s.ReplaceRange(start, end, text) }
		}
	case "truncate", "remove", "split", "reserve":
		n, _, err := intArg(name, rest)
		if err != nil {
			return st, err
		}
		switch name {
		case "truncate":
			st.apply = func(s inlinestr.StringExt) (string, error) { return "", s.Truncate(n) }
		case "remove":
			st.apply = func(s inlinestr.StringExt) (string, error) {
				r, err := s.Remove(n)
				return string(r), err
			}
		case "split":
			st.apply = func(s inlinestr.StringExt) (string, error) { return s.SplitOff(n) }
		case "reserve":
			if n < 0 {
				return st, fmt.Errorf("reserve: negative count %d", n)
			}
			st.apply = func(s inlinestr.StringExt) (string, error) { s.Reserve(n); return "", nil }
		}
	case "pop":
		st.apply = func(s inlinestr.StringExt) (string, error) {
			if r, ok := s.Pop(); ok {
				return string(r), nil
			}
			return "", nil
		}
	case "clear":
		st.apply = func(s inlinestr.StringExt) (string, error) { s.Clear(); return "", nil }
	case "shrink":
		st.apply = func(s inlinestr.StringExt) (string, error) { s.ShrinkToFit(); return "", nil }
	default:
		return st, fmt.Errorf("unknown op %q", name)
	}
	return st, nil
}

func intArg(op, s string) (int, string, error) {
	num, rest, _ := strings.Cut(s, ":")
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, "", fmt.Errorf("%s: bad number %q", op, num)
	}
	return n, rest, nil
}

// pair holds the same content in both representations.
type pair struct {
	inl inlinable.String
	std stdstr.String
}

func newPair(text string) *pair {
	return &pair{inl: inlinable.From(text), std: stdstr.From(text)}
}

// outcome is the result of applying a step to one representation.
type outcome struct {
	result string
	err    error
}

func (p *pair) apply(st step) (inl, std outcome) {
	inl.result, inl.err = st.apply(&p.inl)
	std.result, std.err = st.apply(&p.std)
	return inl, std
}

func (p *pair) state() string {
	mode := "heap"
	if p.inl.IsInline() {
		mode = "inline"
	}
	return fmt.Sprintf("%s len=%d cap=%d | stdstr cap=%d", mode, p.inl.Len(), p.inl.Cap(), p.std.Cap())
}

func (p *pair) agree() bool {
	return inlinestr.Equal(&p.inl, &p.std)
}
