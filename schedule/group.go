package schedule

import (
	"sort"

	"github.com/setlab/labsched/model"
)

// Entry pairs one concrete occurrence with the record it derives from. The
// grouping profiles operate on flat entry streams that have already passed
// window filtering.
type Entry struct {
	Record     model.ScheduleRecord
	Occurrence Occurrence
}

// CapacitySplit applies the shared capacity comparison rule. When enrollment
// exceeds room capacity the chart shows [room, enrollment-room] with
// over-capacity labels and an over-capacity warning; otherwise it shows
// [enrollment, room-enrollment].
func CapacitySplit(enrollment, room int) (values [2]int, labels [2]string, over bool) {
	if enrollment > room {
		return [2]int{room, enrollment - room}, [2]string{"Room Capacity", "Over Capacity"}, true
	}
	return [2]int{enrollment, room - enrollment}, [2]string{"Enrolled", "Remaining"}, false
}

// ChartMode selects the leading field of the chart grouping key: the
// course-centric page leads with the class component, the location-centric
// page with the course description.
type ChartMode int

const (
	ChartByCourse ChartMode = iota
	ChartByLocation
)

// ChartKey identifies one capacity pie chart. All entries sharing a key share
// identical capacity and meeting-time values by construction.
type ChartKey struct {
	Lead               string `json:"lead"` // component or course description, per mode
	Location           string `json:"location"`
	RoomCapacity       int    `json:"room_capacity"`
	EnrollmentCapacity int    `json:"enrollment_capacity"`
	MeetingStart       string `json:"meeting_start"`
	MeetingEnd         string `json:"meeting_end"`
	SubjectCatalogue   string `json:"subject_catalogue"`
}

// ChartGroup is the payload behind one capacity pie chart.
type ChartGroup struct {
	Key                ChartKey  `json:"key"`
	Values             [2]int    `json:"capacity_values"`
	Labels             [2]string `json:"capacity_labels"`
	OverCapacity       bool      `json:"over_capacity"`
	CourseDescription  string    `json:"course_description"`
	SubjectCatalogue   string    `json:"subject_catalogue"`
	Location           string    `json:"location"`
	TimeRange          string    `json:"time_range"` // "15:04 - 15:04"
	Dates              []string  `json:"dates"`      // sorted distinct in-window dates
	TechTeam           string    `json:"tech_team"`
	RoomCapacity       int       `json:"room_capacity"`
	EnrollmentCapacity int       `json:"enrollment_capacity"`
}

func chartKey(rec model.ScheduleRecord, mode ChartMode) ChartKey {
	lead := rec.Component
	if mode == ChartByLocation {
		lead = rec.CourseDescription
	}
	return ChartKey{
		Lead:               lead,
		Location:           rec.Location(),
		RoomCapacity:       rec.RoomCapacity,
		EnrollmentCapacity: rec.EnrollmentCapacity,
		MeetingStart:       rec.MeetingStart,
		MeetingEnd:         rec.MeetingEnd,
		SubjectCatalogue:   rec.SubjectCatalogue(),
	}
}

// BuildChartGroups collapses entries into one group per chart key, sorted by
// key fields for deterministic output. Descriptive fields come from the first
// entry of each group. In course mode every chart of a course lists the
// distinct in-window dates of the whole course; in location mode each chart
// lists only its own group's dates.
func BuildChartGroups(entries []Entry, mode ChartMode) []ChartGroup {
	groups := make(map[ChartKey]*ChartGroup)
	seenDates := make(map[ChartKey]map[string]struct{})
	courseDates := make(map[string]map[string]struct{})
	var order []ChartKey

	for _, entry := range entries {
		key := chartKey(entry.Record, mode)
		group, ok := groups[key]
		if !ok {
			values, labels, over := CapacitySplit(key.EnrollmentCapacity, key.RoomCapacity)
			group = &ChartGroup{
				Key:                key,
				Values:             values,
				Labels:             labels,
				OverCapacity:       over,
				CourseDescription:  entry.Record.CourseDescription,
				SubjectCatalogue:   key.SubjectCatalogue,
				Location:           key.Location,
				TimeRange:          shortTime(key.MeetingStart) + " - " + shortTime(key.MeetingEnd),
				TechTeam:           entry.Record.TechTeam,
				RoomCapacity:       key.RoomCapacity,
				EnrollmentCapacity: key.EnrollmentCapacity,
			}
			groups[key] = group
			seenDates[key] = make(map[string]struct{})
			order = append(order, key)
		}

		date := entry.Occurrence.Start.Format("2006-01-02")
		if _, dup := seenDates[key][date]; !dup {
			seenDates[key][date] = struct{}{}
			group.Dates = append(group.Dates, date)
		}

		course := entry.Record.CourseDescription
		if courseDates[course] == nil {
			courseDates[course] = make(map[string]struct{})
		}
		courseDates[course][date] = struct{}{}
	}

	result := make([]ChartGroup, 0, len(order))
	for _, key := range order {
		group := groups[key]
		if mode == ChartByCourse {
			group.Dates = sortedDates(courseDates[group.CourseDescription])
		} else {
			sort.Strings(group.Dates)
		}
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key.less(result[j].Key) })
	return result
}

func sortedDates(set map[string]struct{}) []string {
	dates := make([]string, 0, len(set))
	for date := range set {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

func (k ChartKey) less(other ChartKey) bool {
	switch {
	case k.Lead != other.Lead:
		return k.Lead < other.Lead
	case k.Location != other.Location:
		return k.Location < other.Location
	case k.RoomCapacity != other.RoomCapacity:
		return k.RoomCapacity < other.RoomCapacity
	case k.EnrollmentCapacity != other.EnrollmentCapacity:
		return k.EnrollmentCapacity < other.EnrollmentCapacity
	case k.MeetingStart != other.MeetingStart:
		return k.MeetingStart < other.MeetingStart
	case k.MeetingEnd != other.MeetingEnd:
		return k.MeetingEnd < other.MeetingEnd
	default:
		return k.SubjectCatalogue < other.SubjectCatalogue
	}
}

// shortTime trims "15:04:05" to "15:04".
func shortTime(s string) string {
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}

// TableRow is one line of the tabular view.
type TableRow struct {
	SubjectCatalogue   string `json:"subject_catalogue"`
	Location           string `json:"location"`
	TimeRange          string `json:"time_range"` // "2006-01-02 15:04-15:04"
	EnrollmentCapacity int    `json:"enrollment_capacity"`
	RoomCapacity       int    `json:"room_capacity"`
	TechTeam           string `json:"tech_team"`
}

// TableGroup collects the rows for one course.
type TableGroup struct {
	CourseDescription string     `json:"course_description"`
	Rows              []TableRow `json:"rows"`
}

// BuildTableGroups groups entries by course description. Rows within a group
// sort ascending by their formatted time string, which is chronological
// because the format is zero-padded and ISO-ordered; groups sort by course
// name.
func BuildTableGroups(entries []Entry) []TableGroup {
	byCourse := make(map[string][]TableRow)
	var courses []string

	for _, entry := range entries {
		course := entry.Record.CourseDescription
		if _, ok := byCourse[course]; !ok {
			courses = append(courses, course)
		}
		byCourse[course] = append(byCourse[course], TableRow{
			SubjectCatalogue:   entry.Record.SubjectCatalogue(),
			Location:           entry.Record.Location(),
			TimeRange:          FormatOccurrence(entry.Occurrence),
			EnrollmentCapacity: entry.Record.EnrollmentCapacity,
			RoomCapacity:       entry.Record.RoomCapacity,
			TechTeam:           entry.Record.TechTeam,
		})
	}

	sort.Strings(courses)
	groups := make([]TableGroup, 0, len(courses))
	for _, course := range courses {
		rows := byCourse[course]
		sort.Slice(rows, func(i, j int) bool { return rows[i].TimeRange < rows[j].TimeRange })
		groups = append(groups, TableGroup{CourseDescription: course, Rows: rows})
	}
	return groups
}

// FormatOccurrence renders an occurrence as "2006-01-02 15:04-15:04".
func FormatOccurrence(occ Occurrence) string {
	return occ.Start.Format("2006-01-02 15:04") + "-" + occ.End.Format("15:04")
}
