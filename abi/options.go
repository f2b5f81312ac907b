package abi

import (
	"fmt"

	"github.com/wippyai/inlinestr/errors"
)

// Encoding selects the guest representation of string data.
type Encoding uint8

const (
	UTF8 Encoding = iota
	UTF16
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf8"
	case UTF16:
		return "utf16"
	default:
		return fmt.Sprintf("Encoding(%d)", uint8(e))
	}
}

// unitSize is the width in bytes of one code unit.
func (e Encoding) unitSize() uint32 {
	if e == UTF16 {
		return 2
	}
	return 1
}

// MaxStringSize bounds the byte size of a string crossing the boundary.
const MaxStringSize = 1 << 30

// Options configures lowering and lifting.
type Options struct {
	// Encoding of string data in guest memory.
	Encoding Encoding
	// MaxStringSize bounds the encoded size in bytes; 0 means the package
	// default.
	MaxStringSize uint32
	// Lossy replaces malformed guest data with U+FFFD instead of failing.
	Lossy bool
}

// DefaultOptions returns UTF-8, strict, with the default size limit.
func DefaultOptions() Options {
	return Options{
		Encoding:      UTF8,
		MaxStringSize: MaxStringSize,
	}
}

func (o Options) limit() uint32 {
	if o.MaxStringSize == 0 {
		return MaxStringSize
	}
	return o.MaxStringSize
}

func (o Options) check(phase errors.Phase, op string) error {
	switch o.Encoding {
	case UTF8, UTF16:
		return nil
	}
	err := errors.Unsupported(phase, o.Encoding.String()+" encoding")
	err.Op = op
	return err
}
