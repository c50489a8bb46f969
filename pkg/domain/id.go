package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexibleID is a record identifier the backend may send as either a JSON
// string or a JSON number. It is always held in string form.
type FlexibleID string

// UnmarshalJSON accepts `"abc"`, `42` and `null`.
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("domain.FlexibleID: %w", err)
		}
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("domain.FlexibleID: %w", err)
	}
	*id = FlexibleID(n.String())
	return nil
}

// MarshalJSON writes numeric IDs back as numbers so a decoded profile
// round-trips unchanged.
func (id FlexibleID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id FlexibleID) String() string { return string(id) }
