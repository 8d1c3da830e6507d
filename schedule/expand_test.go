package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setlab/labsched/model"
)

func testRecord(start, end time.Time, flags model.WeekdayFlags) model.ScheduleRecord {
	return model.ScheduleRecord{
		CourseDescription:   "Analytical Chemistry II",
		Component:           "Laboratory",
		Subject:             "CHEM",
		CatalogNumber:       "2512",
		BuildingDescription: "Molecular Sciences",
		Room:                "G12",
		StartDate:           start,
		EndDate:             end,
		MeetingStart:        "09:00:00",
		MeetingEnd:          "11:00:00",
		Weekdays:            flags,
		RoomCapacity:        24,
		EnrollmentCapacity:  20,
		TermCode:            4410,
		TechTeam:            "Chemical & Analytical Services",
	}
}

func TestExpandSingleWeekdayInOneWeek(t *testing.T) {
	// 2024-03-04 is a Monday; only Wednesday flagged.
	rec := testRecord(
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		model.WeekdayFlags{Wed: true},
	)

	occurrences, err := Expand(rec)

	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC), occurrences[0].Start)
	assert.Equal(t, time.Date(2024, 3, 6, 11, 0, 0, 0, time.UTC), occurrences[0].End)
}

func TestExpandSingleDaySpan(t *testing.T) {
	day := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC) // Wednesday

	matching := testRecord(day, day, model.WeekdayFlags{Wed: true})
	occurrences, err := Expand(matching)
	require.NoError(t, err)
	assert.Len(t, occurrences, 1)

	nonMatching := testRecord(day, day, model.WeekdayFlags{Fri: true})
	occurrences, err = Expand(nonMatching)
	require.NoError(t, err)
	assert.Empty(t, occurrences)
}

func TestExpandMultiWeekCountAndSpacing(t *testing.T) {
	// Exactly 8 full weeks starting on a Monday, Tuesdays only.
	rec := testRecord(
		time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		model.WeekdayFlags{Tues: true},
	)

	occurrences, err := Expand(rec)

	require.NoError(t, err)
	require.Len(t, occurrences, 8)
	for i, occ := range occurrences {
		assert.Equal(t, time.Tuesday, occ.Start.Weekday())
		if i > 0 {
			assert.Equal(t, 7*24*time.Hour, occ.Start.Sub(occurrences[i-1].Start))
		}
	}
}

func TestExpandWeekdayGroupOrder(t *testing.T) {
	// Start Thursday: the Thursday run begins before the Monday run
	// chronologically, but output is grouped Mon first.
	rec := testRecord(
		time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), // Thursday
		time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		model.WeekdayFlags{Mo: true, Thurs: true},
	)

	occurrences, err := Expand(rec)

	require.NoError(t, err)
	require.Len(t, occurrences, 4)
	// Mondays first (11th, 18th), then Thursdays (7th, 14th).
	assert.Equal(t, 11, occurrences[0].Start.Day())
	assert.Equal(t, 18, occurrences[1].Start.Day())
	assert.Equal(t, 7, occurrences[2].Start.Day())
	assert.Equal(t, 14, occurrences[3].Start.Day())
}

func TestExpandInvertedSpan(t *testing.T) {
	rec := testRecord(
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		model.WeekdayFlags{Mo: true},
	)

	occurrences, err := Expand(rec)

	require.NoError(t, err)
	assert.Empty(t, occurrences)
}

func TestExpandNoWeekdayFlags(t *testing.T) {
	rec := testRecord(
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		model.WeekdayFlags{},
	)

	occurrences, err := Expand(rec)

	require.NoError(t, err)
	assert.Empty(t, occurrences)
}

func TestExpandBadMeetingTime(t *testing.T) {
	rec := testRecord(
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		model.WeekdayFlags{Mo: true},
	)
	rec.MeetingStart = "9 AM"

	_, err := Expand(rec)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "Meeting Start", formatErr.Field)
}

func TestExpandAcceptsShortTimeFormat(t *testing.T) {
	rec := testRecord(
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		model.WeekdayFlags{Mo: true},
	)
	rec.MeetingStart = "14:00"
	rec.MeetingEnd = "16:30"

	occurrences, err := Expand(rec)

	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, 14, occurrences[0].Start.Hour())
	assert.Equal(t, 30, occurrences[0].End.Minute())
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30:15")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{9, 30, 15}, tod)

	_, err = ParseTimeOfDay("25:00:00")
	assert.Error(t, err)

	_, err = ParseTimeOfDay("")
	assert.Error(t, err)
}
