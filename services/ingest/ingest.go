// Package ingest turns uploaded class-schedule spreadsheets into schedule
// records. Excel exports carry a banner row, so the header sits on the second
// row; CSV exports start with the header.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/setlab/labsched/model"
)

// Source column names as they appear in the timetable export.
const (
	ColTerm          = "Term"
	ColCourseID      = "Course ID"
	ColClassNbr      = "Class Nbr"
	ColPatternNbr    = "Pattern Nbr"
	ColSubject       = "Subject"
	ColCatalog       = "Catalog"
	ColCourseDescr   = "Course Descr"
	ColComponent     = "Component"
	ColBuilding      = "Building"
	ColBuildingDescr = "Building Descr"
	ColRoom          = "Room"
	ColStartDate     = "Start Date"
	ColEndDate       = "End Date"
	ColMeetingStart  = "Meeting Start"
	ColMeetingEnd    = "Meeting End"
	ColRoomCapacity  = "Room Capacity"
	ColEnrlCapacity  = "Enrl Capacity"
	ColTechTeam      = "Tech Team"
)

// requiredColumns are the columns the views depend on. An upload missing some
// of them is still adopted; the affected views fail individually.
var requiredColumns = []string{
	ColTerm, ColClassNbr, ColPatternNbr, ColSubject, ColCatalog,
	ColCourseDescr, ColComponent, ColBuildingDescr, ColRoom,
	ColStartDate, ColEndDate, ColMeetingStart, ColMeetingEnd,
	"Mo", "Tues", "Wed", "Thurs", "Fri",
	ColRoomCapacity, ColEnrlCapacity, ColTechTeam,
}

var ErrUnsupportedFileType = errors.New("unsupported file type")
var ErrEmptySheet = errors.New("no data rows found")

// ColumnError marks a view that needs a column the upload did not carry.
type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q not found", e.Column)
}

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", "02/01/2006"}

// Result is a parsed upload, ready to become a session dataset.
type Result struct {
	Records        []model.ScheduleRecord
	MissingColumns []string
	SkippedRows    int
	SourceName     string
}

// Parser reads timetable exports. Safe for concurrent use.
type Parser struct {
	log *zap.Logger
}

func NewParser(log *zap.Logger) *Parser {
	return &Parser{log: log}
}

// Parse reads an .xlsx, .xls, or .csv export. Rows with unreadable dates are
// skipped and counted; a file that cannot be read at all is rejected whole.
func (p *Parser) Parse(filename string, r io.Reader) (*Result, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		rows, err = readXLSX(r)
	case ".xls":
		rows, err = readXLS(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, ErrUnsupportedFileType
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	header := rows[0]
	result := &Result{SourceName: filepath.Base(filename)}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			result.MissingColumns = append(result.MissingColumns, name)
		}
	}

	for rowNum, row := range rows[1:] {
		rec, err := p.buildRecord(index, row)
		if err != nil {
			result.SkippedRows++
			p.log.Warn("skipping unreadable schedule row",
				zap.String("file", result.SourceName),
				zap.Int("row", rowNum+2),
				zap.Error(err),
			)
			continue
		}
		result.Records = append(result.Records, rec)
	}

	if len(result.Records) == 0 && result.SkippedRows == 0 {
		return nil, ErrEmptySheet
	}
	return result, nil
}

func (p *Parser) buildRecord(index map[string]int, row []string) (model.ScheduleRecord, error) {
	cell := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	startDate, err := parseDate(cell(ColStartDate))
	if err != nil {
		return model.ScheduleRecord{}, fmt.Errorf("start date: %w", err)
	}
	endDate, err := parseDate(cell(ColEndDate))
	if err != nil {
		return model.ScheduleRecord{}, fmt.Errorf("end date: %w", err)
	}

	component := cell(ColComponent)
	if component == "" {
		component = "Unknown"
	}

	rec := model.ScheduleRecord{
		CourseID:            cell(ColCourseID),
		ClassNumber:         cell(ColClassNbr),
		PatternNumber:       cell(ColPatternNbr),
		Subject:             cell(ColSubject),
		CatalogNumber:       cell(ColCatalog),
		CourseDescription:   cell(ColCourseDescr),
		Component:           component,
		BuildingCode:        cell(ColBuilding),
		BuildingDescription: cell(ColBuildingDescr),
		Room:                cell(ColRoom),
		StartDate:           startDate,
		EndDate:             endDate,
		MeetingStart:        cell(ColMeetingStart),
		MeetingEnd:          cell(ColMeetingEnd),
		Weekdays: model.WeekdayFlags{
			Mo:    cell("Mo") == "Y",
			Tues:  cell("Tues") == "Y",
			Wed:   cell("Wed") == "Y",
			Thurs: cell("Thurs") == "Y",
			Fri:   cell("Fri") == "Y",
		},
		RoomCapacity:       parseCapacity(cell(ColRoomCapacity)),
		EnrollmentCapacity: parseCapacity(cell(ColEnrlCapacity)),
		TermCode:           parseCapacity(cell(ColTerm)),
		// Abbreviations map to full team names on the way in; unmapped
		// values pass through unchanged.
		TechTeam: model.TechTeamName(cell(ColTechTeam)),
	}
	return rec, nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// parseCapacity tolerates exports that render integers as floats ("24.0").
// Missing or unreadable values become zero.
func parseCapacity(value string) int {
	if value == "" {
		return 0
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int(f)
	}
	return 0
}
