package stdstr

import (
	"io"
	"unicode/utf8"

	"github.com/wippyai/inlinestr/errors"
	"github.com/wippyai/inlinestr/internal/textbuf"
)

var (
	_ io.Writer       = (*String)(nil)
	_ io.StringWriter = (*String)(nil)
	_ io.ByteWriter   = (*String)(nil)
)

// Write appends p, which must be valid UTF-8. On invalid input nothing is
// written and the error reports where the bad sequence starts.
func (s *String) Write(p []byte) (int, error) {
	if err := s.PushBytes(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString appends str. It never fails.
func (s *String) WriteString(str string) (int, error) {
	s.PushStr(str)
	return len(str), nil
}

// WriteRune appends r and returns its encoded width. An invalid rune is
// written as U+FFFD.
func (s *String) WriteRune(r rune) (int, error) {
	s.Push(r)
	return textbuf.RuneLen(r), nil
}

// WriteByte appends an ASCII byte. Other bytes would break UTF-8 and are
// rejected.
func (s *String) WriteByte(c byte) error {
	if c >= utf8.RuneSelf {
		return errors.InvalidUTF8(errors.PhaseMutate, "write_byte", []byte{c}, 0)
	}
	s.Push(rune(c))
	return nil
}
