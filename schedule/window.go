package schedule

import (
	"errors"
	"time"
)

// ErrInvalidWindow is returned when a date window is missing a bound or its
// start falls after its end. It is rejected before any filtering runs.
var ErrInvalidWindow = errors.New("select a valid date range")

// Policy selects how an occurrence is matched against a window.
type Policy int

const (
	// IntervalOverlap matches an occurrence whose start falls inside the
	// window: windowStart <= occurrence.Start <= windowEnd. The occurrence
	// end is not checked, so an occurrence starting inside the window but
	// ending after it still counts as in range.
	IntervalOverlap Policy = iota

	// PointInWindow matches an occurrence whose start date equals the
	// window's start date exactly, used for single-day capacity lookups.
	PointInWindow
)

// Window is an inclusive user-selected date range. Bounds are normalized to
// cover the full calendar days: start floored to 00:00:00 and end ceilinged
// to 23:59:59.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow validates and normalizes a window. A zero bound or a start after
// the end yields ErrInvalidWindow.
func NewWindow(start, end time.Time) (Window, error) {
	if start.IsZero() || end.IsZero() {
		return Window{}, ErrInvalidWindow
	}
	start = midnight(start)
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())
	if start.After(end) {
		return Window{}, ErrInvalidWindow
	}
	return Window{Start: start, End: end}, nil
}

// DayWindow builds the single-day window for a probe date.
func DayWindow(day time.Time) (Window, error) {
	return NewWindow(day, day)
}

// Matches reports whether the occurrence satisfies the window under the
// given policy.
func (w Window) Matches(occ Occurrence, policy Policy) bool {
	switch policy {
	case PointInWindow:
		probe := w.Start
		return occ.Start.Year() == probe.Year() &&
			occ.Start.Month() == probe.Month() &&
			occ.Start.Day() == probe.Day()
	default:
		return !occ.Start.Before(w.Start) && !occ.Start.After(w.End)
	}
}

// FilterOccurrences returns the occurrences matching the window in their
// original order.
func FilterOccurrences(occurrences []Occurrence, w Window, policy Policy) []Occurrence {
	var matched []Occurrence
	for _, occ := range occurrences {
		if w.Matches(occ, policy) {
			matched = append(matched, occ)
		}
	}
	return matched
}

// AnyInWindow reports whether at least one occurrence matches the window.
// A nil or empty occurrence list never matches.
func AnyInWindow(occurrences []Occurrence, w Window, policy Policy) bool {
	for _, occ := range occurrences {
		if w.Matches(occ, policy) {
			return true
		}
	}
	return false
}
