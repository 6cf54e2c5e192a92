package dateutil

import (
	"strings"
	"time"

	"github.com/carnegieJiang/pocketfridge/domain"
)

// DateLayout is the canonical zero-padded date form used everywhere in the
// fridge. Every producer of date strings must format with this layout so
// that lexicographic comparison stays a valid total order.
const DateLayout = "2006-01-02"

type (
	// Clock abstracts "now" so ingestion and expiry checks are
	// deterministic under test.
	Clock interface {
		Now() time.Time
	}

	systemClock struct{}
)

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock {
	return systemClock{}
}

// FixedClock returns a Clock pinned to the given time.
func FixedClock(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// Today formats the clock's current time as a date-only string.
func Today(clock Clock) string {
	return clock.Now().Format(DateLayout)
}

// DateOnly truncates an ISO-8601 timestamp to its date component. A bare
// date passes through unchanged. Anything else is rejected with
// domain.ErrInvalidTimestamp rather than silently truncated.
func DateOnly(timestamp string) (string, error) {
	s := strings.TrimSpace(timestamp)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(DateLayout), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t.Format(DateLayout), nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.Format(DateLayout), nil
	}
	return "", domain.ErrInvalidTimestamp
}

// AddDays performs calendar-correct day addition, including month and year
// rollover.
func AddDays(date string, n int) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", domain.ErrInvalidDate
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// Compare returns -1, 0 or 1. Lexicographic comparison is sufficient
// because all dates are zero-padded YYYY-MM-DD.
func Compare(a, b string) int {
	return strings.Compare(a, b)
}
