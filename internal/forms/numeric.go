package forms

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Text is a form value that arrives either as a JSON string or as a bare
// JSON literal (number, bool). Numeric form fields use it so a client can
// send 4.5 or "4.5" interchangeably.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	*t = Text(data)
	return nil
}

// Int parses a whole number. Decimals are truncated. Anything that does not
// parse or does not fit in an int is 0.
func Int(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f := math.Trunc(Float(s))
	// float64(math.MaxInt) rounds up to 2^63, so the upper bound is exclusive.
	if f < float64(math.MinInt) || f >= float64(math.MaxInt) {
		return 0
	}
	return int(f)
}

// Float parses a decimal. Anything that does not parse, NaN and infinities are 0.
func Float(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
