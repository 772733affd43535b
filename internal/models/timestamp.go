package models

import (
	"fmt"
	"time"
)

// TimestampLayout is the wire format of every timestamp the API returns.
const TimestampLayout = time.RFC3339Nano

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp accepts RFC 3339 text, or a date or date-time without an
// offset, which is read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q", s)
}

// FormatTimestamp renders t in the wire format, keeping its offset.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
