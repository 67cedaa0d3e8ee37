package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// CustomTime wraps time.Time to accept the due-date formats clients send.
// Due dates have date-only semantics but are stored as timestamps, so both
// plain dates and full RFC3339 timestamps are accepted.
type CustomTime struct {
	time.Time
}

var dueDateFormats = []string{
	time.RFC3339,          // "2006-01-02T15:04:05Z07:00"
	time.RFC3339Nano,      // with fractional seconds
	"2006-01-02T15:04:05", // no timezone, assume UTC
	"2006-01-02",          // date only, midnight UTC
}

// UnmarshalJSON parses a JSON string into CustomTime. Formats without a
// timezone are interpreted as UTC.
func (ct *CustomTime) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	s := strings.Trim(string(b), "\"")
	if s == "" {
		return nil
	}

	var lastErr error
	for _, format := range dueDateFormats {
		t, err := time.ParseInLocation(format, s, time.UTC)
		if err == nil {
			ct.Time = t.UTC()
			return nil
		}
		lastErr = err
	}

	return fmt.Errorf("cannot parse date %q, expected YYYY-MM-DD or RFC3339: %v", s, lastErr)
}

// MarshalJSON converts CustomTime to a JSON string, always in UTC
func (ct CustomTime) MarshalJSON() ([]byte, error) {
	if ct.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ct.Time.UTC().Format(time.RFC3339))
}

// ToTime returns the underlying time, or nil when unset
func (ct *CustomTime) ToTime() *time.Time {
	if ct == nil || ct.Time.IsZero() {
		return nil
	}
	t := ct.Time
	return &t
}
