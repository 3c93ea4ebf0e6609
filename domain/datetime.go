package domain

import (
	"strconv"
	"time"
)

// DateTime is a creation timestamp with a dual wire representation: it
// always serializes as epoch milliseconds, and it accepts either a raw
// integer literal (epoch milliseconds) or an RFC 3339 string when
// decoding. Anything else decodes to the zero value rather than failing
// the enclosing request.
type DateTime struct {
	time.Time
}

// NewDateTime truncates t to millisecond precision so that a value
// round-trips through its wire form unchanged.
func NewDateTime(t time.Time) DateTime {
	return DateTime{t.Truncate(time.Millisecond)}
}

// FromUnixMilli builds a DateTime from epoch milliseconds.
func FromUnixMilli(ms int64) DateTime {
	return DateTime{time.UnixMilli(ms)}
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(d.UnixMilli(), 10)), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*d = DateTime{}
		return nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = FromUnixMilli(ms)
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if t, err := time.Parse(time.RFC3339Nano, s[1:len(s)-1]); err == nil {
			*d = NewDateTime(t)
			return nil
		}
	}
	// Malformed scalars resolve to the zero value instead of rejecting
	// the whole request.
	*d = DateTime{}
	return nil
}
