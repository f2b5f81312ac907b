// Package inlinestr provides growable UTF-8 strings that avoid heap
// allocation for short content, and a common interface for writing code
// that works on any of them.
//
// # Architecture Overview
//
// The module is organized into packages with distinct responsibilities:
//
//	inlinestr/           Root package with the StringExt interface, generic
//	│                    algorithms, and the Memory and Allocator interfaces
//	├── inline/          Fixed-capacity string stored entirely inline
//	├── inlinable/       Inline string that promotes itself to the heap
//	├── stdstr/          Conventional heap string over a []byte
//	├── abi/             Lowering and lifting strings in WebAssembly memory
//	├── errors/          Structured error types
//	└── cmd/strplay/     Command-line and interactive playground
//
// # Quick Start
//
//	var s inlinable.String
//	s.PushStr("hello")          // stored inline, no allocation
//	s.PushStr(", world and more")
//	fmt.Println(s.IsInline())   // false: promoted on the push above
//
//	if err := s.InsertStr(5, "!"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Writing generic code
//
// Functions accepting StringExt work on both representations and behave
// identically on each:
//
//	func shout(s inlinestr.StringExt) {
//	    s.Push('!')
//	}
//
//	a := inlinable.From("hi")
//	b := stdstr.From("hi")
//	shout(&a)
//	shout(&b)
//	inlinestr.Equal(&a, &b) // true
//
// The algorithms in this package (Join, Extend, Repeat, Compare and the
// search helpers) are written once against StringExt.
//
// # Offsets and errors
//
// All offsets are byte offsets into the UTF-8 content. An offset that falls
// inside a multi-byte character is rejected with a char_boundary error and
// an offset past the end with out_of_bounds. See package errors.
//
// # Guest memory
//
// Memory and Allocator describe WebAssembly linear memory as seen from the
// host. Package abi uses them to copy string values in and out of a guest.
package inlinestr
