package util

import "time"

// DateLayout is the calendar date format used by the diet API.
const DateLayout = "2006-01-02"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// LoadLocation resolves an IANA zone name, falling back to UTC when empty or unknown.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseDate validates a YYYY-MM-DD string and returns it normalized.
func ParseDate(value string) (string, error) {
	ts, err := time.Parse(DateLayout, value)
	if err != nil {
		return "", err
	}
	return ts.Format(DateLayout), nil
}
