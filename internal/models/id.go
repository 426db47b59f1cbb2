package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is a record id as the upstream serves it. Some deployments send ids as
// strings, others as numbers; both decode to the same text. It always
// encodes as a JSON string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("id must be a string or a number, got %s", data)
		}
		*id = ID(n.String())
		return nil
	}
}

func (id ID) String() string { return string(id) }
