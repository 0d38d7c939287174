// Package timeutil parses the day windows and day references accepted on
// the command line.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/daybook/pkg/entry"
)

const (
	// DefaultWindow is the fallback report window used when none is provided.
	DefaultWindow = "1w"

	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	offsetPattern = regexp.MustCompile(`^([+-])(\d+)([dw])$`)
	unitDays      = map[string]int{
		"d":     1,
		"day":   1,
		"days":  1,
		"w":     7,
		"wk":    7,
		"wks":   7,
		"week":  7,
		"weeks": 7,
	}
)

// Window is a run of whole days ending today.
type Window struct {
	Days  int
	Label string
}

// ParseWindow parses a human-friendly window such as "1w", "3d" or "1w2d"
// into a number of days along with a canonical, compact label. When the
// input is empty, the default window of one week is used.
func ParseWindow(input string) (Window, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		trimmed = DefaultWindow
	}

	remaining := strings.ToLower(trimmed)
	total := 0
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return Window{}, fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return Window{}, fmt.Errorf("invalid window value %q: %w", matches[1], err)
		}
		per, ok := unitDays[matches[2]]
		if !ok {
			return Window{}, fmt.Errorf("unsupported window unit %q", matches[2])
		}
		total += value * per
		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return Window{}, fmt.Errorf("window must be at least one day")
	}
	return Window{Days: total, Label: FormatWindow(total)}, nil
}

// Range returns the first and last day of the window ending on now's day.
func (w Window) Range(now time.Time) (since, until time.Time) {
	until = entry.Day(now)
	return until.AddDate(0, 0, 1-w.Days), until
}

// FormatWindow renders a day count using week and day tokens.
func FormatWindow(days int) string {
	if days <= 0 {
		return "0d"
	}
	var b strings.Builder
	if w := days / 7; w > 0 {
		fmt.Fprintf(&b, "%dw", w)
	}
	if d := days % 7; d > 0 {
		fmt.Fprintf(&b, "%dd", d)
	}
	return b.String()
}

// ParseDay resolves a day reference against now. It accepts "" or "today",
// "yesterday", "tomorrow", offsets like "-2d" or "+1w", full dates like
// "2024-3-10", and month/day like "3/10" in now's year.
func ParseDay(s string, now time.Time) (time.Time, error) {
	today := entry.Day(now)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}
	s = strings.TrimSpace(s)

	if m := offsetPattern.FindStringSubmatch(strings.ToLower(s)); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return time.Time{}, err
		}
		if m[3] == "w" {
			n *= 7
		}
		if m[1] == "-" {
			n = -n
		}
		return today.AddDate(0, 0, n), nil
	}

	if t, err := time.Parse(layoutISO, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(layoutISOShort, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", entry.ErrInvalidDate, s)
	}
	return t.AddDate(today.Year(), 0, 0), nil
}
