package model

import (
	"fmt"
	"strings"
	"time"
)

// ScheduleRecord represents one normalized row of an uploaded class schedule:
// a recurring weekly meeting pattern for a single class section.
type ScheduleRecord struct {
	CourseID          string `json:"course_id"`
	ClassNumber       string `json:"class_number"`
	PatternNumber     string `json:"pattern_number"`
	Subject           string `json:"subject"`
	CatalogNumber     string `json:"catalog_number"`
	CourseDescription string `json:"course_description"`
	Component         string `json:"component"` // lecture/lab/etc., "Unknown" when absent

	BuildingCode        string `json:"building_code"`
	BuildingDescription string `json:"building_description"`
	Room                string `json:"room"`

	StartDate    time.Time `json:"start_date"` // inclusive
	EndDate      time.Time `json:"end_date"`   // inclusive
	MeetingStart string    `json:"meeting_start"` // time-of-day, "15:04:05"
	MeetingEnd   string    `json:"meeting_end"`

	Weekdays WeekdayFlags `json:"weekdays"`

	RoomCapacity       int `json:"room_capacity"`
	EnrollmentCapacity int `json:"enrollment_capacity"`

	TermCode int    `json:"term_code"`
	TechTeam string `json:"tech_team"` // full team name after lookup, or raw value passed through
}

// WeekdayFlags holds the Monday–Friday meeting pattern of a record.
// Weekend classes are not modeled.
type WeekdayFlags struct {
	Mo    bool `json:"mo"`
	Tues  bool `json:"tues"`
	Wed   bool `json:"wed"`
	Thurs bool `json:"thurs"`
	Fri   bool `json:"fri"`
}

// Enabled reports whether the flag for the given weekday abbreviation is set.
func (w WeekdayFlags) Enabled(abbr string) bool {
	switch abbr {
	case "Mo":
		return w.Mo
	case "Tues":
		return w.Tues
	case "Wed":
		return w.Wed
	case "Thurs":
		return w.Thurs
	case "Fri":
		return w.Fri
	}
	return false
}

// Any reports whether at least one weekday flag is set.
func (w WeekdayFlags) Any() bool {
	return w.Mo || w.Tues || w.Wed || w.Thurs || w.Fri
}

// Location combines building description and room. When the room is blank the
// building description stands alone.
func (r ScheduleRecord) Location() string {
	if strings.TrimSpace(r.Room) == "" {
		return r.BuildingDescription
	}
	return r.BuildingDescription + " " + r.Room
}

// SubjectCatalogue is the display form "SUBJ 1234".
func (r ScheduleRecord) SubjectCatalogue() string {
	return r.Subject + " " + r.CatalogNumber
}

// TermLabel resolves the record's term code to its human label.
func (r ScheduleRecord) TermLabel() string {
	return TermLabel(r.TermCode)
}

// ClassPattern is the "{class}_{pattern}" identifier shown on calendar events,
// or "None" when either number is missing.
func (r ScheduleRecord) ClassPattern() string {
	if r.ClassNumber == "" || r.PatternNumber == "" {
		return "None"
	}
	return fmt.Sprintf("%s_%s", r.ClassNumber, r.PatternNumber)
}
