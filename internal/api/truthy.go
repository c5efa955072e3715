package api

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Truthy decodes any JSON scalar into a bool using loose truthiness:
// false, null, 0, "" and missing are false, everything else is true.
type Truthy bool

// UnmarshalJSON implements json.Unmarshaler
func (t *Truthy) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*t = false
	case bytes.Equal(data, []byte("true")):
		*t = true
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = s != ""
	case data[0] == '{', data[0] == '[':
		*t = true
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		*t = f != 0
	}
	return nil
}
