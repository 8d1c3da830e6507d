package schedule

import (
	"time"

	"github.com/setlab/labsched/model"
)

// EventKey is the identity tuple used to deduplicate calendar events when
// multiple source rows describe the same physical session.
type EventKey struct {
	CourseDescription string
	Component         string
	Location          string
	Start             time.Time
	End               time.Time
	TechTeam          string
	ClassNumber       string
	PatternNumber     string
}

// CalendarEvent is one rendered calendar entry.
type CalendarEvent struct {
	CourseDescription string `json:"course_description"`
	Component         string `json:"component"`
	ClassPattern      string `json:"class_pattern"`
	Location          string `json:"location"`
	StartTime         string `json:"start_time"` // "15:04"
	EndTime           string `json:"end_time"`
	TechTeam          string `json:"tech_team"`
}

// DayCell is one cell of a month grid. Day 0 marks a positionally-present
// cell outside the target month, rendered empty.
type DayCell struct {
	Day    int             `json:"day"`
	Events []CalendarEvent `json:"events,omitempty"`
}

// MonthGrid is the full-week-aligned calendar layout for one month: week rows
// of seven Monday-first cells spanning from the Monday on/before the first of
// the month through the Sunday on/after its last day.
type MonthGrid struct {
	Label string      `json:"label"` // "January 2006"
	Year  int         `json:"year"`
	Month time.Month  `json:"month"`
	Weeks [][]DayCell `json:"weeks"`
}

func eventKey(rec model.ScheduleRecord, occ Occurrence) EventKey {
	return EventKey{
		CourseDescription: rec.CourseDescription,
		Component:         rec.Component,
		Location:          rec.Location(),
		Start:             occ.Start,
		End:               occ.End,
		TechTeam:          rec.TechTeam,
		ClassNumber:       rec.ClassNumber,
		PatternNumber:     rec.PatternNumber,
	}
}

func (k EventKey) event() CalendarEvent {
	pattern := "None"
	if k.ClassNumber != "" && k.PatternNumber != "" {
		pattern = k.ClassNumber + "_" + k.PatternNumber
	}
	return CalendarEvent{
		CourseDescription: k.CourseDescription,
		Component:         k.Component,
		ClassPattern:      pattern,
		Location:          k.Location,
		StartTime:         k.Start.Format("15:04"),
		EndTime:           k.End.Format("15:04"),
		TechTeam:          k.TechTeam,
	}
}

// BuildMonth assembles the grid for the month containing monthStart. Each
// in-month cell lists its day number and the deduplicated events whose start
// falls on that date, in the order they were discovered in entries.
func BuildMonth(monthStart time.Time, entries []Entry) MonthGrid {
	first := time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, monthStart.Location())
	last := first.AddDate(0, 1, -1)

	// Deduplicated events per in-month date, discovery order preserved.
	seen := make(map[EventKey]struct{})
	byDate := make(map[string][]CalendarEvent)
	for _, entry := range entries {
		occ := entry.Occurrence
		date := occ.Date()
		if date.Before(first) || date.After(last) {
			continue
		}
		key := eventKey(entry.Record, occ)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		iso := date.Format("2006-01-02")
		byDate[iso] = append(byDate[iso], key.event())
	}

	gridStart := first.AddDate(0, 0, -model.MondayIndex(first))
	gridEnd := last.AddDate(0, 0, 6-model.MondayIndex(last))

	var weeks [][]DayCell
	var week []DayCell
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		cell := DayCell{}
		if !day.Before(first) && !day.After(last) {
			cell.Day = day.Day()
			cell.Events = byDate[day.Format("2006-01-02")]
		}
		week = append(week, cell)
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = nil
		}
	}

	return MonthGrid{
		Label: first.Format("January 2006"),
		Year:  first.Year(),
		Month: first.Month(),
		Weeks: weeks,
	}
}

// BuildCalendar emits one grid per calendar month intersecting the window,
// from the month containing its start through the month containing its end,
// in chronological order. Months are independent.
func BuildCalendar(w Window, entries []Entry) []MonthGrid {
	var months []MonthGrid
	cursor := time.Date(w.Start.Year(), w.Start.Month(), 1, 0, 0, 0, 0, w.Start.Location())
	for !cursor.After(w.End) {
		months = append(months, BuildMonth(cursor, entries))
		cursor = cursor.AddDate(0, 1, 0)
	}
	return months
}
