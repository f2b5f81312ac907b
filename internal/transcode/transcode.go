// Package transcode converts between UTF-8 and the other encodings strings
// enter or leave the module in: UTF-16 code units (Go []uint16), UTF-16LE
// byte streams (guest memory) and ill-formed UTF-8.
package transcode

import (
	"encoding/binary"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/wippyai/inlinestr/errors"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// FromUTF16 decodes code units into UTF-8, failing on the first unpaired
// surrogate.
func FromUTF16(phase errors.Phase, op string, units []uint16) ([]byte, error) {
	out := make([]byte, 0, len(units))
	for i := 0; i < len(units); i++ {
		u := units[i]
		if !utf16.IsSurrogate(rune(u)) {
			out = utf8.AppendRune(out, rune(u))
			continue
		}
		if u >= 0xDC00 || i+1 == len(units) {
			return nil, errors.InvalidUTF16(phase, op, i, u)
		}
		r := utf16.DecodeRune(rune(u), rune(units[i+1]))
		if r == utf8.RuneError {
			return nil, errors.InvalidUTF16(phase, op, i, u)
		}
		out = utf8.AppendRune(out, r)
		i++
	}
	return out, nil
}

// FromUTF16Lossy decodes code units into UTF-8, replacing unpaired
// surrogates with U+FFFD.
func FromUTF16Lossy(units []uint16) []byte {
	raw := make([]byte, 2*len(units))
	for i, u := range units {
		binary.LittleEndian.PutUint16(raw[2*i:], u)
	}
	out, err := utf16le.NewDecoder().Bytes(raw)
	if err != nil {
		// The decoder substitutes rather than failing on even-length input.
		panic("transcode: internal error: " + err.Error())
	}
	return out
}

// DecodeUTF16LE decodes a little-endian UTF-16 byte stream. In strict mode
// an unpaired surrogate is an error; otherwise it becomes U+FFFD.
func DecodeUTF16LE(phase errors.Phase, op string, raw []byte, strict bool) ([]byte, error) {
	if len(raw)%2 != 0 {
		return nil, errors.InvalidInput(phase, "odd UTF-16 byte length")
	}
	if !strict {
		out, err := utf16le.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, errors.Wrap(phase, errors.KindInvalidUTF16, err, op)
		}
		return out, nil
	}
	units := make([]uint16, len(raw)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(raw[2*i:])
	}
	return FromUTF16(phase, op, units)
}

// EncodeUTF16LE encodes valid UTF-8 as a little-endian UTF-16 byte stream.
func EncodeUTF16LE(phase errors.Phase, op string, s []byte) ([]byte, error) {
	out, err := utf16le.NewEncoder().Bytes(s)
	if err != nil {
		return nil, errors.Wrap(phase, errors.KindInvalidUTF8, err, op)
	}
	return out, nil
}

// UTF16Len is the number of UTF-16 code units needed to encode s.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// UTF8Lossy returns a copy of b with each maximal ill-formed subsequence
// replaced by U+FFFD.
func UTF8Lossy(b []byte) []byte {
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		// The decoder substitutes and never reports ill-formed input.
		panic("transcode: internal error: " + err.Error())
	}
	return out
}
