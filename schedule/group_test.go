package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setlab/labsched/model"
)

func entryAt(rec model.ScheduleRecord, day time.Time) Entry {
	startTod, _ := ParseTimeOfDay(rec.MeetingStart)
	endTod, _ := ParseTimeOfDay(rec.MeetingEnd)
	return Entry{
		Record:     rec,
		Occurrence: Occurrence{Start: startTod.On(day), End: endTod.On(day)},
	}
}

func TestCapacitySplitOverCapacity(t *testing.T) {
	values, labels, over := CapacitySplit(30, 25)

	assert.True(t, over)
	assert.Equal(t, [2]int{25, 5}, values)
	assert.Equal(t, [2]string{"Room Capacity", "Over Capacity"}, labels)
}

func TestCapacitySplitWithinCapacity(t *testing.T) {
	values, labels, over := CapacitySplit(20, 25)

	assert.False(t, over)
	assert.Equal(t, [2]int{20, 5}, values)
	assert.Equal(t, [2]string{"Enrolled", "Remaining"}, labels)
}

func TestCapacitySplitExactFit(t *testing.T) {
	values, _, over := CapacitySplit(25, 25)

	assert.False(t, over)
	assert.Equal(t, [2]int{25, 0}, values)
}

func TestBuildChartGroupsCollapsesIdenticalSlots(t *testing.T) {
	rec := testRecord(
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		model.WeekdayFlags{Wed: true},
	)
	entries := []Entry{
		entryAt(rec, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)),
		entryAt(rec, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)),
	}

	groups := BuildChartGroups(entries, ChartByCourse)

	require.Len(t, groups, 1)
	group := groups[0]
	assert.Equal(t, "Laboratory", group.Key.Lead)
	assert.Equal(t, "Molecular Sciences G12", group.Location)
	assert.Equal(t, "CHEM 2512", group.SubjectCatalogue)
	assert.Equal(t, "09:00 - 11:00", group.TimeRange)
	assert.Equal(t, []string{"2024-03-06", "2024-03-13"}, group.Dates)
	assert.False(t, group.OverCapacity)
	assert.Equal(t, [2]int{20, 4}, group.Values)
}

func TestBuildChartGroupsCourseModeSharesCourseDates(t *testing.T) {
	a := testRecord(
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		model.WeekdayFlags{Mo: true},
	)
	b := a
	b.Room = "G14"
	entries := []Entry{
		entryAt(a, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)),
		entryAt(b, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)),
	}

	// Course mode: every chart of the course lists the course's dates.
	groups := BuildChartGroups(entries, ChartByCourse)
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"2024-03-04", "2024-03-11"}, groups[0].Dates)
	assert.Equal(t, []string{"2024-03-04", "2024-03-11"}, groups[1].Dates)

	// Location mode: each chart lists only its own group's dates.
	groups = BuildChartGroups(entries, ChartByLocation)
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"2024-03-04"}, groups[0].Dates)
	assert.Equal(t, []string{"2024-03-11"}, groups[1].Dates)
}

func TestBuildChartGroupsLocationModeLeadsWithCourse(t *testing.T) {
	rec := testRecord(
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		model.WeekdayFlags{Mo: true},
	)

	groups := BuildChartGroups([]Entry{entryAt(rec, rec.StartDate)}, ChartByLocation)

	require.Len(t, groups, 1)
	assert.Equal(t, "Analytical Chemistry II", groups[0].Key.Lead)
}

func TestBuildTableGroupsSortsRowsChronologically(t *testing.T) {
	rec := testRecord(
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		model.WeekdayFlags{Mo: true, Wed: true},
	)
	// Insert out of order on purpose.
	entries := []Entry{
		entryAt(rec, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)),
		entryAt(rec, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)),
		entryAt(rec, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)),
	}

	groups := BuildTableGroups(entries)

	require.Len(t, groups, 1)
	assert.Equal(t, "Analytical Chemistry II", groups[0].CourseDescription)
	rows := groups[0].Rows
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-03-04 09:00-11:00", rows[0].TimeRange)
	assert.Equal(t, "2024-03-06 09:00-11:00", rows[1].TimeRange)
	assert.Equal(t, "2024-03-13 09:00-11:00", rows[2].TimeRange)
	assert.Equal(t, "Molecular Sciences G12", rows[0].Location)
}

func TestBuildTableGroupsSortsCourses(t *testing.T) {
	a := testRecord(
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		model.WeekdayFlags{Mo: true},
	)
	b := a
	a.CourseDescription = "Zoology Field Methods"
	b.CourseDescription = "Analytical Chemistry II"

	groups := BuildTableGroups([]Entry{
		entryAt(a, a.StartDate),
		entryAt(b, b.StartDate),
	})

	require.Len(t, groups, 2)
	assert.Equal(t, "Analytical Chemistry II", groups[0].CourseDescription)
	assert.Equal(t, "Zoology Field Methods", groups[1].CourseDescription)
}

func TestBuildTimelinesDeduplicatesSplitRows(t *testing.T) {
	rec := testRecord(
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		model.WeekdayFlags{Mo: true},
	)
	rec.PatternNumber = "1"
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	// Two source rows describing the same physical session.
	charts := BuildTimelines([]Entry{entryAt(rec, day), entryAt(rec, day)}, TimelineByCourse)

	require.Len(t, charts, 1)
	assert.Len(t, charts[0].Bars, 1)
}

func TestTimelineCourseHeightSteps(t *testing.T) {
	assert.Equal(t, 260, courseChartHeight(1))
	assert.Equal(t, 260, courseChartHeight(2))
	assert.Equal(t, 360, courseChartHeight(4))
	assert.Equal(t, 460, courseChartHeight(6))
	assert.Equal(t, 670, courseChartHeight(10))
}

func TestTimelineLocationHeightSteps(t *testing.T) {
	assert.Equal(t, 260, locationChartHeight(1))
	assert.Equal(t, 300, locationChartHeight(2))
	assert.Equal(t, 360, locationChartHeight(3))
	assert.Equal(t, 460, locationChartHeight(5))
	assert.Equal(t, 469, locationChartHeight(7))
}

func TestTimelineBarWidthSteps(t *testing.T) {
	assert.Equal(t, 0.6, courseBarWidth(2, 360))
	assert.Equal(t, 0.3, courseBarWidth(1, 260))
	assert.Equal(t, 0.15, courseBarWidth(1, 360))

	assert.Equal(t, 0.6, locationBarWidth(3, 460))
	assert.Equal(t, 0.4, locationBarWidth(1, 260))
	assert.Equal(t, 0.3, locationBarWidth(1, 300))
}

func TestBuildTimelinesCourseModeLatestFirst(t *testing.T) {
	rec := testRecord(
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		model.WeekdayFlags{Mo: true},
	)
	rec.PatternNumber = "1"
	entries := []Entry{
		entryAt(rec, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)),
		entryAt(rec, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)),
	}

	charts := BuildTimelines(entries, TimelineByCourse)

	require.Len(t, charts, 1)
	require.Len(t, charts[0].Bars, 2)
	assert.Equal(t, "2024-03-11", charts[0].Bars[0].Date)
	assert.Equal(t, "2024-03-04", charts[0].Bars[1].Date)
}

func TestBuildTimelinesLocationModeTitle(t *testing.T) {
	rec := testRecord(
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		model.WeekdayFlags{Mo: true},
	)
	rec.PatternNumber = "1"

	charts := BuildTimelines([]Entry{entryAt(rec, rec.StartDate)}, TimelineByLocation)

	require.Len(t, charts, 1)
	assert.Equal(t, "Molecular Sciences G12", charts[0].Title)
}
