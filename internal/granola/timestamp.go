package granola

import "time"

// ParseTimestamp parses the timestamp encodings seen in the cache:
// UTC-suffixed ISO-8601 (with or without fractional seconds) and bare
// dates from all-day calendar entries. It never fails hard: a missing
// or malformed value returns ok=false, and callers exclude that value
// from ordering and duration computations.
func ParseTimestamp(ts string) (time.Time, bool) {
	if ts == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
