package schedule

import (
	"fmt"
	"sort"
)

// TimelineMode selects the Gantt grouping: one chart per course with
// locations on the y-axis, or one chart per (course, location, time-slot)
// with class details on the y-axis.
type TimelineMode int

const (
	TimelineByCourse TimelineMode = iota
	TimelineByLocation
)

// TimelineBar is one horizontal bar of a Gantt chart.
type TimelineBar struct {
	Row    string `json:"row"`   // y-axis label
	Label  string `json:"label"` // text rendered inside the bar
	Date   string `json:"date"`  // "2006-01-02"
	Start  string `json:"start"` // "15:04"
	End    string `json:"end"`
}

// TimelineChart is one Gantt chart with its deterministic layout figures.
// Height and bar width follow fixed step functions keyed on the number of
// distinct row/date combinations.
type TimelineChart struct {
	Title    string        `json:"title"`
	Height   int           `json:"height"`
	BarWidth float64       `json:"bar_width"`
	Bars     []TimelineBar `json:"bars"`
}

// timelineDedupe removes entries sharing (pattern number, course date,
// meeting start), keeping the first. Multiple source rows can describe the
// same physical session split across data columns.
func timelineDedupe(entries []Entry) []Entry {
	type sessionKey struct {
		Pattern string
		Date    string
		Start   string
	}
	seen := make(map[sessionKey]struct{})
	var out []Entry
	for _, entry := range entries {
		key := sessionKey{
			Pattern: entry.Record.PatternNumber,
			Date:    entry.Occurrence.Start.Format("2006-01-02"),
			Start:   entry.Record.MeetingStart,
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, entry)
	}
	return out
}

// distinctRowDates counts distinct (row label, date) combinations, the figure
// both layout step functions key on.
func distinctRowDates(bars []TimelineBar) int {
	type combo struct{ Row, Date string }
	seen := make(map[combo]struct{})
	for _, bar := range bars {
		seen[combo{bar.Row, bar.Date}] = struct{}{}
	}
	return len(seen)
}

func courseChartHeight(n int) int {
	switch {
	case n <= 2:
		return 260
	case n <= 4:
		return 360
	case n <= 6:
		return 460
	default:
		return n * 67
	}
}

func locationChartHeight(n int) int {
	switch {
	case n <= 1:
		return 260
	case n <= 2:
		return 300
	case n <= 4:
		return 360
	case n <= 6:
		return 460
	default:
		return n * 67
	}
}

func courseBarWidth(combos, height int) float64 {
	switch {
	case combos > 1:
		return 0.6
	case height == 260:
		return 0.3
	default:
		return 0.15
	}
}

func locationBarWidth(combos, height int) float64 {
	switch {
	case combos > 1:
		return 0.6
	case height == 260:
		return 0.4
	default:
		return 0.3
	}
}

// BuildTimelines lays the (already window-filtered) entries out as Gantt
// charts. Course mode emits one chart per course description with bars
// ordered latest-first; location mode emits one chart per
// (course, location, meeting time) group with bars ordered earliest-first.
func BuildTimelines(entries []Entry, mode TimelineMode) []TimelineChart {
	entries = timelineDedupe(entries)

	if mode == TimelineByCourse {
		return buildCourseTimelines(entries)
	}
	return buildLocationTimelines(entries)
}

func buildCourseTimelines(entries []Entry) []TimelineChart {
	byCourse := make(map[string][]Entry)
	var courses []string
	for _, entry := range entries {
		course := entry.Record.CourseDescription
		if _, ok := byCourse[course]; !ok {
			courses = append(courses, course)
		}
		byCourse[course] = append(byCourse[course], entry)
	}
	sort.Strings(courses)

	charts := make([]TimelineChart, 0, len(courses))
	for _, course := range courses {
		group := byCourse[course]
		sort.Slice(group, func(i, j int) bool {
			// Latest date first, then latest start time.
			return group[i].Occurrence.Start.After(group[j].Occurrence.Start)
		})

		bars := make([]TimelineBar, 0, len(group))
		for _, entry := range group {
			date := entry.Occurrence.Start.Format("2006-01-02")
			bars = append(bars, TimelineBar{
				Row: fmt.Sprintf("Building: %s  Date: %s  Class: %s, %s  Tech Team: %s",
					entry.Record.Location(), date, entry.Record.Component,
					entry.Record.ClassPattern(), entry.Record.TechTeam),
				Label: "Time: " + entry.Occurrence.Start.Format("15:04") + " - " + entry.Occurrence.End.Format("15:04"),
				Date:  date,
				Start: entry.Occurrence.Start.Format("15:04"),
				End:   entry.Occurrence.End.Format("15:04"),
			})
		}

		combos := distinctRowDates(bars)
		height := courseChartHeight(combos)
		charts = append(charts, TimelineChart{
			Title:    course,
			Height:   height,
			BarWidth: courseBarWidth(combos, height),
			Bars:     bars,
		})
	}
	return charts
}

func buildLocationTimelines(entries []Entry) []TimelineChart {
	type slotKey struct {
		Course   string
		Location string
		Start    string
		End      string
	}
	bySlot := make(map[slotKey][]Entry)
	var slots []slotKey
	for _, entry := range entries {
		key := slotKey{
			Course:   entry.Record.CourseDescription,
			Location: entry.Record.Location(),
			Start:    entry.Record.MeetingStart,
			End:      entry.Record.MeetingEnd,
		}
		if _, ok := bySlot[key]; !ok {
			slots = append(slots, key)
		}
		bySlot[key] = append(bySlot[key], entry)
	}
	sort.Slice(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		switch {
		case a.Course != b.Course:
			return a.Course < b.Course
		case a.Location != b.Location:
			return a.Location < b.Location
		case a.Start != b.Start:
			return a.Start < b.Start
		default:
			return a.End < b.End
		}
	})

	charts := make([]TimelineChart, 0, len(slots))
	for _, key := range slots {
		group := bySlot[key]
		sort.Slice(group, func(i, j int) bool {
			return group[i].Occurrence.Start.Before(group[j].Occurrence.Start)
		})

		bars := make([]TimelineBar, 0, len(group))
		for _, entry := range group {
			date := entry.Occurrence.Start.Format("2006-01-02")
			bars = append(bars, TimelineBar{
				Row: fmt.Sprintf("%s, %s, %s  Date: %s  Tech Team: %s",
					entry.Record.CourseDescription, entry.Record.Component,
					entry.Record.ClassPattern(), date, entry.Record.TechTeam),
				Label: "Time: " + entry.Occurrence.Start.Format("15:04") + " - " + entry.Occurrence.End.Format("15:04"),
				Date:  date,
				Start: entry.Occurrence.Start.Format("15:04"),
				End:   entry.Occurrence.End.Format("15:04"),
			})
		}

		combos := distinctRowDates(bars)
		height := locationChartHeight(combos)
		charts = append(charts, TimelineChart{
			Title:    key.Location,
			Height:   height,
			BarWidth: locationBarWidth(combos, height),
			Bars:     bars,
		})
	}
	return charts
}
