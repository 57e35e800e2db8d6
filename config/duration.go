// config/duration.go
package config

import (
	"encoding/json"
	"fmt"
	"time"
)

// JSONDuration is a time.Duration stored in JSON as a Go duration string such as "30s".
type JSONDuration time.Duration

// Duration returns the value as a time.Duration.
func (d JSONDuration) Duration() time.Duration {
	return time.Duration(d)
}

func (d JSONDuration) String() string {
	return time.Duration(d).String()
}

// MarshalJSON implements json.Marshaler.
func (d JSONDuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts a duration string or a number of nanoseconds.
func (d *JSONDuration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = JSONDuration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		*d = JSONDuration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

// ParseJSONDuration parses value, returning defaultVal when it is not a valid duration.
func ParseJSONDuration(value string, defaultVal JSONDuration) JSONDuration {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultVal
	}
	return JSONDuration(parsed)
}
