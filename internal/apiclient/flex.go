package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// flexNumber accepts a JSON number, a numeric string, or null. Anything
// else decodes as absent instead of failing the whole payload.
type flexNumber struct {
	value decimal.Decimal
	set   bool
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	*n = flexNumber{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	}
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	n.value = d
	n.set = true
	return nil
}

func (n *flexNumber) asDecimal() decimal.NullDecimal {
	if n == nil || !n.set {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(n.value)
}

func (n *flexNumber) asInt() *int {
	if n == nil || !n.set {
		return nil
	}
	v := int(n.value.IntPart())
	return &v
}

func (n *flexNumber) asID() int64 {
	if n == nil || !n.set {
		return 0
	}
	return n.value.IntPart()
}

// firstDecimal returns the first present value
func firstDecimal(values ...*flexNumber) decimal.NullDecimal {
	for _, v := range values {
		if d := v.asDecimal(); d.Valid {
			return d
		}
	}
	return decimal.NullDecimal{}
}

func firstInt(values ...*flexNumber) *int {
	for _, v := range values {
		if i := v.asInt(); i != nil {
			return i
		}
	}
	return nil
}

func firstID(values ...*flexNumber) int64 {
	for _, v := range values {
		if v != nil && v.set {
			return v.asID()
		}
	}
	return 0
}

func firstString(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// flexString accepts a JSON string, number, or null as text
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return nil
		}
		*s = flexString(v)
	case data[0] == '[' || data[0] == '{':
		*s = ""
	default:
		*s = flexString(data)
	}
	return nil
}

// flexDate accepts an ISO string or the [year, month, day, hour, minute,
// second] array some Java serialisers emit, and keeps it as an ISO string
type flexDate string

func (d *flexDate) UnmarshalJSON(data []byte) error {
	*d = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err == nil {
			*d = flexDate(strings.TrimSpace(v))
		}
		return nil
	}
	if data[0] != '[' {
		return nil
	}
	var parts []int
	if err := json.Unmarshal(data, &parts); err != nil || len(parts) < 3 {
		return nil
	}
	date := fmt.Sprintf("%04d-%02d-%02d", parts[0], parts[1], parts[2])
	if len(parts) >= 5 {
		sec := 0
		if len(parts) >= 6 {
			sec = parts[5]
		}
		date += fmt.Sprintf("T%02d:%02d:%02d", parts[3], parts[4], sec)
	}
	*d = flexDate(date)
	return nil
}

// itoa is strconv.FormatInt for int64 ids
func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
