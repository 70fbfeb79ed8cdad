package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var dayUnits = map[string]time.Duration{
	"d": 24 * time.Hour,
	"w": 7 * 24 * time.Hour,
}

// ParseDuration accepts anything time.ParseDuration does plus whole days ("3d")
// and weeks ("2w").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty duration string")
	}

	if dur, err := time.ParseDuration(s); err == nil {
		return dur, nil
	}

	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	numStr, unit := s[:len(s)-1], s[len(s)-1:]
	size, ok := dayUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unknown duration unit: %s", unit)
	}

	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration number: %s", numStr)
	}
	return time.Duration(num) * size, nil
}

// ParseRelativeTime resolves "now", an RFC 3339 timestamp, or a signed offset
// such as "-7d" or "+90m" against now.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return time.Time{}, errors.New("empty time string")
	case strings.EqualFold(s, "now"):
		return now, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	sign := s[0]
	if sign != '-' && sign != '+' {
		return time.Time{}, fmt.Errorf("relative time must start with + or -: %s", s)
	}

	dur, err := ParseDuration(s[1:])
	if err != nil {
		return time.Time{}, err
	}
	if sign == '-' {
		return now.Add(-dur), nil
	}
	return now.Add(dur), nil
}
