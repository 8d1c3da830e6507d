// Package schedule implements the recurrence-expansion and date-filtering
// engine: expanding weekly class meeting patterns into concrete dated
// occurrences, intersecting them with a selected date window, grouping them
// for chart/table/timeline views, and laying them out on monthly calendar
// grids. The package is pure computation; transport and rendering live
// elsewhere.
package schedule

import (
	"fmt"
	"time"

	"github.com/setlab/labsched/model"
)

// Occurrence is a single concrete class session. Start and End share a
// calendar date; sessions do not span midnight.
type Occurrence struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Date returns the occurrence's calendar date at midnight.
func (o Occurrence) Date() time.Time {
	return time.Date(o.Start.Year(), o.Start.Month(), o.Start.Day(), 0, 0, 0, 0, o.Start.Location())
}

// TimeOfDay is a wall-clock time parsed from a meeting time column.
type TimeOfDay struct {
	Hour, Minute, Second int
}

// On anchors the time of day to a calendar date.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, t.Second, 0, date.Location())
}

// ParseTimeOfDay accepts "15:04:05" and "15:04".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{parsed.Hour(), parsed.Minute(), parsed.Second()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
}

// FormatError reports a record whose meeting times could not be parsed. The
// error is scoped to that record; callers skip the row and continue with the
// rest of the dataset.
type FormatError struct {
	Field string
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: invalid time %q", e.Field, e.Value)
}

// Expand produces every concrete occurrence implied by the record's weekly
// pattern over its inclusive [start date, end date] span.
//
// Occurrences are emitted weekday by weekday in model.WeekdayMapping order
// (Mo, Tues, Wed, Thurs, Fri), each weekday's run internally chronological.
// The result is NOT globally sorted; callers needing one interleaved
// chronological order must sort explicitly.
//
// A span with start after end, or a record with no weekday flags set,
// expands to zero occurrences without error.
func Expand(rec model.ScheduleRecord) ([]Occurrence, error) {
	if rec.StartDate.After(rec.EndDate) {
		return nil, nil
	}
	if !rec.Weekdays.Any() {
		return nil, nil
	}

	startTime, err := ParseTimeOfDay(rec.MeetingStart)
	if err != nil {
		return nil, &FormatError{Field: "Meeting Start", Value: rec.MeetingStart}
	}
	endTime, err := ParseTimeOfDay(rec.MeetingEnd)
	if err != nil {
		return nil, &FormatError{Field: "Meeting End", Value: rec.MeetingEnd}
	}

	start := midnight(rec.StartDate)
	end := midnight(rec.EndDate)

	var occurrences []Occurrence
	for _, entry := range model.WeekdayMapping {
		if !rec.Weekdays.Enabled(entry.Abbr) {
			continue
		}

		// First date on/after the span start that falls on this weekday.
		offset := (weekdayIndex(entry.Day) - model.MondayIndex(start) + 7) % 7
		for current := start.AddDate(0, 0, offset); !current.After(end); current = current.AddDate(0, 0, 7) {
			occurrences = append(occurrences, Occurrence{
				Start: startTime.On(current),
				End:   endTime.On(current),
			})
		}
	}
	return occurrences, nil
}

// weekdayIndex is the Monday-based index of a Go weekday (Monday=0 … Sunday=6).
func weekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
