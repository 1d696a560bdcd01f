package api

import (
	"fmt"
	"strconv"
	"time"
)

// ResolveTimestamp turns a user-supplied window bound into an RFC 3339
// timestamp. RFC 3339 literals pass through unchanged; a relative duration
// of the form <integer><unit> (unit s, m, h or d) resolves to now minus the
// duration. No other calendar arithmetic is supported.
func ResolveTimestamp(s string, now time.Time) (string, error) {
	if d, ok := parseRelative(s); ok {
		return now.Add(-d).UTC().Format(time.RFC3339), nil
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return s, nil
	}
	return "", fmt.Errorf("invalid time %q: use an RFC 3339 timestamp or a relative duration like 30m, 12h or 7d", s)
}

func parseRelative(s string) (time.Duration, bool) {
	if len(s) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 {
		return 0, false
	}
	switch s[len(s)-1] {
	case 's':
		return time.Duration(n) * time.Second, true
	case 'm':
		return time.Duration(n) * time.Minute, true
	case 'h':
		return time.Duration(n) * time.Hour, true
	case 'd':
		return time.Duration(n) * 24 * time.Hour, true
	}
	return 0, false
}
