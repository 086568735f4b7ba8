package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Scalar holds an opaque JSON primitive as text. Strings keep their contents,
// numbers keep their literal representation and null decodes to "".
type Scalar string

// String returns the text form of the scalar.
func (s Scalar) String() string {
	return string(s)
}

// IsZero reports whether the scalar carries no value.
func (s Scalar) IsZero() bool {
	return s == ""
}

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = ""
		return nil
	}
	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return fmt.Errorf("model: decode scalar: %w", err)
		}
		*s = Scalar(text)
		return nil
	case '{', '[':
		return fmt.Errorf("model: scalar cannot hold %s", trimmed[:1])
	default:
		var number json.Number
		if err := json.Unmarshal(trimmed, &number); err == nil {
			*s = Scalar(number.String())
			return nil
		}
		if b, err := strconv.ParseBool(string(trimmed)); err == nil {
			*s = Scalar(strconv.FormatBool(b))
			return nil
		}
		return fmt.Errorf("model: unsupported scalar %q", trimmed)
	}
}

// MarshalJSON always emits the scalar as a JSON string; the server coerces.
func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}
