package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setlab/labsched/model"
)

func TestBuildMonthGridShape(t *testing.T) {
	// May 2024 starts on a Wednesday.
	grid := BuildMonth(time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), nil)

	assert.Equal(t, "May 2024", grid.Label)
	require.NotEmpty(t, grid.Weeks)

	totalCells := 0
	for _, week := range grid.Weeks {
		require.Len(t, week, 7)
		totalCells += len(week)
	}
	assert.Zero(t, totalCells%7)

	first := grid.Weeks[0]
	assert.Zero(t, first[0].Day) // Monday, out of month
	assert.Zero(t, first[1].Day) // Tuesday, out of month
	assert.Equal(t, 1, first[2].Day)

	last := grid.Weeks[len(grid.Weeks)-1]
	// May 31 2024 is a Friday; Saturday and Sunday cells trail empty.
	assert.Equal(t, 31, last[4].Day)
	assert.Zero(t, last[5].Day)
	assert.Zero(t, last[6].Day)
}

func TestBuildMonthAssignsEventsToDateCells(t *testing.T) {
	rec := testRecord(
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		model.WeekdayFlags{Wed: true},
	)
	rec.ClassNumber = "1201"
	rec.PatternNumber = "1"

	occurrences, err := Expand(rec)
	require.NoError(t, err)
	entries := make([]Entry, 0, len(occurrences))
	for _, occ := range occurrences {
		entries = append(entries, Entry{Record: rec, Occurrence: occ})
	}

	grid := BuildMonth(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), entries)

	// Wednesdays in May 2024: 1, 8, 15, 22, 29.
	wednesdays := 0
	for _, week := range grid.Weeks {
		cell := week[2]
		if len(cell.Events) > 0 {
			wednesdays++
			require.Len(t, cell.Events, 1)
			event := cell.Events[0]
			assert.Equal(t, "Analytical Chemistry II", event.CourseDescription)
			assert.Equal(t, "1201_1", event.ClassPattern)
			assert.Equal(t, "09:00", event.StartTime)
			assert.Equal(t, "11:00", event.EndTime)
		}
	}
	assert.Equal(t, 5, wednesdays)
}

func TestBuildMonthDeduplicatesEqualEventKeys(t *testing.T) {
	rec := testRecord(
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		model.WeekdayFlags{Wed: true},
	)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	// Two source rows with identical event key fields.
	entries := []Entry{entryAt(rec, day), entryAt(rec, day)}

	grid := BuildMonth(day, entries)

	cell := grid.Weeks[0][2]
	require.Equal(t, 1, cell.Day)
	assert.Len(t, cell.Events, 1)
}

func TestBuildMonthKeepsDistinctEvents(t *testing.T) {
	a := testRecord(
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		model.WeekdayFlags{Wed: true},
	)
	b := a
	b.Room = "G14"
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	grid := BuildMonth(day, []Entry{entryAt(a, day), entryAt(b, day)})

	cell := grid.Weeks[0][2]
	require.Len(t, cell.Events, 2)
	assert.Equal(t, "Molecular Sciences G12", cell.Events[0].Location)
	assert.Equal(t, "Molecular Sciences G14", cell.Events[1].Location)
}

func TestBuildCalendarSpansEveryIntersectingMonth(t *testing.T) {
	w, err := NewWindow(
		time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	months := BuildCalendar(w, nil)

	require.Len(t, months, 4)
	assert.Equal(t, "February 2024", months[0].Label)
	assert.Equal(t, "March 2024", months[1].Label)
	assert.Equal(t, "April 2024", months[2].Label)
	assert.Equal(t, "May 2024", months[3].Label)
}
