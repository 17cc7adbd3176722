// Package chrono orders sessions by start time and finds where today begins.
package chrono

import (
	"slices"
	"time"

	"github.com/jole/ivsb/pkg/models"
)

// StartLayout is the layout of the schedule's start column.
const StartLayout = "2006-01-02 15:04"

// ParseStart parses a start-time cell as UTC.
func ParseStart(text string) (time.Time, bool) {
	t, err := time.Parse(StartLayout, text)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Sort orders sessions by start time, in place and stable. Sessions whose
// start cannot be parsed keep their relative order after all others.
func Sort(sessions []models.Session) {
	slices.SortStableFunc(sessions, func(a, b models.Session) int {
		ta, oka := ParseStart(a.Start())
		tb, okb := ParseStart(b.Start())
		switch {
		case oka && okb:
			return ta.Compare(tb)
		case oka:
			return -1
		case okb:
			return 1
		}
		return 0
	})
}

// IndexOnOrAfter returns the index of the first session starting on or
// after the UTC calendar date of now. Unparsable starts are skipped. If no
// session qualifies the last index is returned, and 0 for an empty slice.
func IndexOnOrAfter(sessions []models.Session, now time.Time) int {
	if len(sessions) == 0 {
		return 0
	}
	today := dateOf(now)
	for i, s := range sessions {
		t, ok := ParseStart(s.Start())
		if !ok {
			continue
		}
		if !dateOf(t).Before(today) {
			return i
		}
	}
	return len(sessions) - 1
}

// IndexOnOrAfterToday is IndexOnOrAfter using the current time.
func IndexOnOrAfterToday(sessions []models.Session) int {
	return IndexOnOrAfter(sessions, time.Now())
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
