package inlinable

import (
	"encoding"

	"github.com/goccy/go-json"

	"github.com/wippyai/inlinestr/errors"
	"github.com/wippyai/inlinestr/internal/textbuf"
)

var (
	_ encoding.TextMarshaler   = (*String)(nil)
	_ encoding.TextUnmarshaler = (*String)(nil)
	_ json.Marshaler           = (*String)(nil)
	_ json.Unmarshaler         = (*String)(nil)
)

// MarshalText returns a copy of the content.
func (s *String) MarshalText() ([]byte, error) {
	return append([]byte(nil), s.view()...), nil
}

// UnmarshalText replaces the content with a copy of text, which must be
// valid UTF-8.
func (s *String) UnmarshalText(text []byte) error {
	if err := textbuf.Validate(errors.PhaseConvert, "unmarshal_text", text); err != nil {
		return err
	}
	*s = FromBytesUnchecked(append([]byte(nil), text...))
	return nil
}

// MarshalJSON encodes s as a JSON string.
func (s *String) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.AsStr())
}

// UnmarshalJSON decodes a JSON string into s. JSON null leaves s unchanged.
func (s *String) UnmarshalJSON(data []byte) error {
	var str *string
	if err := json.Unmarshal(data, &str); err != nil {
		return errors.Wrap(errors.PhaseConvert, errors.KindInvalidInput, err, "decode JSON string")
	}
	if str != nil {
		*s = From(*str)
	}
	return nil
}
