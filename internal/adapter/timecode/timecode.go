// Package timecode parses and formats the textual minute.second timing
// used on transcript segments ("1.23" = 1 minute 23 seconds).
package timecode

import (
	"fmt"
	"strconv"
	"strings"

	"vidseg/internal/domain"
)

// Parse converts a timestamp string to seconds. Accepted forms are
// "mm.ss", "mm:ss", "hh:mm:ss" and bare seconds; the dot and colon
// separators are interchangeable.
func Parse(ts string) (float64, error) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return 0, fmt.Errorf("%w: empty value", domain.ErrTimestampParse)
	}

	parts := strings.Split(strings.ReplaceAll(ts, ".", ":"), ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", domain.ErrTimestampParse, ts)
	}

	var seconds float64
	for _, part := range parts {
		n, err := strconv.ParseFloat(part, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", domain.ErrTimestampParse, ts)
		}
		seconds = seconds*60 + n
	}

	return seconds, nil
}

// Format renders seconds as "m.ss".
func Format(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	mins := int(seconds) / 60
	secs := int(seconds) % 60
	return fmt.Sprintf("%d.%02d", mins, secs)
}
