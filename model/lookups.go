package model

import (
	"fmt"
	"time"
)

// WeekdayEntry pairs a spreadsheet weekday abbreviation with its Go weekday.
type WeekdayEntry struct {
	Abbr string
	Day  time.Weekday
}

// WeekdayMapping is the fixed Monday-first iteration order used by the
// recurrence expander. Only Monday–Friday classes are modeled.
var WeekdayMapping = []WeekdayEntry{
	{"Mo", time.Monday},
	{"Tues", time.Tuesday},
	{"Wed", time.Wednesday},
	{"Thurs", time.Thursday},
	{"Fri", time.Friday},
}

// MondayIndex returns the Monday-based weekday index of t (Monday=0 … Sunday=6).
func MondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// termLabels maps term codes to their human labels.
var termLabels = map[int]string{
	4410: "Semester 1",
	4420: "Semester 2",
	4405: "Summer School",
	4415: "Winter School",
	4433: "Trimester 1",
	4436: "Trimester 2",
	4439: "Trimester 3",
	4448: "Term 4",
}

// TermLabel returns the label for a term code, or "Unknown Term {code}" for
// codes outside the fixed table.
func TermLabel(code int) string {
	if label, ok := termLabels[code]; ok {
		return label
	}
	return fmt.Sprintf("Unknown Term %d", code)
}

// techTeamNames maps technical-services team abbreviations to full names.
var techTeamNames = map[string]string{
	"AFW": "Agriculture Food & Wine",
	"ASH": "Animal Sciences & Health",
	"CAS": "Chemical & Analytical Services",
	"DM":  "Design & Manufacturing",
	"D&M": "Design & Manufacturing",
	"EI":  "Electronics & Instrumentation",
	"E&I": "Electronics & Instrumentation",
	"LES": "Life and Earth Sciences",
	"SNR": "Structures and Natural Resources",
	"TSO": "Technical Support Operations",
}

// TechTeamName resolves a team abbreviation to its full name. Unmapped values
// pass through unchanged.
func TechTeamName(abbr string) string {
	if name, ok := techTeamNames[abbr]; ok {
		return name
	}
	return abbr
}
