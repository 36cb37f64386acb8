package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Float accepts a JSON number or a numeric string ("12.5"). Form clients
// send currency and weight fields as strings, so coercion happens here
// instead of trusting the caller.
type Float float64

func (f *Float) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		str = strings.TrimSpace(str)
		if str == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", str)
		}
		*f = Float(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// Int accepts a JSON number or a numeric string ("3").
type Int int

func (i *Int) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		str = strings.TrimSpace(str)
		if str == "" {
			*i = 0
			return nil
		}
		v, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("invalid integer %q", str)
		}
		*i = Int(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*i = Int(v)
	return nil
}
