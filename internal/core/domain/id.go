package domain

import (
	"encoding/json"
	"fmt"
)

// ExpenseID is an opaque record identifier. Depending on the store it holds a
// client-generated timestamp or a server-assigned sequence number; callers
// only ever compare it for equality.
type ExpenseID string

func (id ExpenseID) String() string { return string(id) }

func (id ExpenseID) IsZero() bool { return id == "" }

// MarshalJSON writes purely numeric identifiers as JSON numbers so that
// clients of the original API keep receiving `"id": 42`.
func (id ExpenseID) MarshalJSON() ([]byte, error) {
	if isJSONInteger(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts both numbers and strings.
func (id *ExpenseID) UnmarshalJSON(b []byte) error {
	s := string(b)
	switch {
	case s == "null":
		*id = ""
		return nil
	case len(s) > 0 && s[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*id = ExpenseID(v)
		return nil
	case isJSONInteger(s):
		*id = ExpenseID(s)
		return nil
	}
	return fmt.Errorf("expense id: unsupported value %s", s)
}

func isJSONInteger(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
