package gamejolt

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Value is a loosely typed JSON scalar.
// The site API is not strict about what it sends for flags and sizes:
// the same field may come as a bool, a number or a string.
type Value struct {
	raw json.RawMessage
}

func (v *Value) UnmarshalJSON(b []byte) error {
	v.raw = append(v.raw[:0], b...)
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// Truthy is false for null, false, 0, "" and empty containers.
func (v Value) Truthy() bool {
	s := string(bytes.TrimSpace(v.raw))
	switch s {
	case "", "null", "false", `""`, "[]", "{}":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f != 0
	}
	return true
}

// String returns the value as text, strings unquoted.
func (v Value) String() string {
	s := bytes.TrimSpace(v.raw)
	if len(s) == 0 || string(s) == "null" {
		return ""
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(s, &str); err == nil {
			return str
		}
	}
	return string(s)
}

// Int returns the value as an integer number if it is one,
// either as a JSON number or a numeric string.
func (v Value) Int() (int64, bool) {
	s := strings.TrimSpace(v.String())
	if s == "" {
		return 0, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f), true
	}
	return 0, false
}

func (v Value) IsNull() bool { return v.String() == "" }

// Val makes a Value from any JSON-encodable x.
func Val(x any) Value {
	b, _ := json.Marshal(x)
	return Value{raw: b}
}
