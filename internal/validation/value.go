package validation

import (
	"bytes"
	"encoding/json"
)

// Value is a request scalar kept as text until validation.
//
// It accepts a JSON string, a JSON number or a form value, so `123` and
// `"123"` bind to the same thing and a malformed value is reported by the
// field's rule instead of a generic bind error. Non-scalar JSON keeps its
// raw text and fails any numeric rule.
type Value string

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Value(s)
		return nil
	}

	*v = Value(data)
	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler for form and query values.
func (v *Value) UnmarshalParam(param string) error {
	*v = Value(param)
	return nil
}

func (v Value) String() string {
	return string(v)
}
