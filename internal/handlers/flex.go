package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexInt64 is an optional integer that also accepts numeric strings.
// The web UI stringifies some ids before sending them, so "12", 12, "", null
// and "undefined" must all decode.
type FlexInt64 struct {
	Value int64
	Valid bool
}

func (f *FlexInt64) UnmarshalJSON(data []byte) error {
	*f = FlexInt64{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		switch strings.ToLower(s) {
		case "", "null", "undefined", "nan":
			return nil
		}
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = FlexInt64{Value: n, Valid: true}
		return nil
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s", data)
	}
	*f = FlexInt64{Value: int64(fl), Valid: true}
	return nil
}

func (f FlexInt64) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(f.Value, 10)), nil
}

// Ptr returns nil for an absent value.
func (f FlexInt64) Ptr() *int64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// Int returns the value, or zero when absent.
func (f FlexInt64) Int() int64 {
	return f.Value
}

// FlexStrings accepts either a JSON array of strings or a comma-separated string.
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}
	if data[0] == '[' {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*f = clean(items)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("keywords must be a string or an array of strings")
	}
	*f = clean(strings.Split(s, ","))
	return nil
}

func clean(items []string) FlexStrings {
	var out FlexStrings
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
