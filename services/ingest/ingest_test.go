package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const csvHeader = "Term,Course ID,Class Nbr,Pattern Nbr,Subject,Catalog,Course Descr,Component,Building,Building Descr,Room,Start Date,End Date,Meeting Start,Meeting End,Mo,Tues,Wed,Thurs,Fri,Room Capacity,Enrl Capacity,Tech Team"

func csvUpload(rows ...string) string {
	return csvHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

func TestParseCSV(t *testing.T) {
	p := NewParser(zap.NewNop())

	body := csvUpload(
		"4410,012345,1201,1,CHEM,2512,Analytical Chemistry II,Laboratory,MS,Molecular Sciences,G12,2024-03-04,2024-05-31,09:00:00,11:00:00,N,Y,N,Y,N,24,20,CAS",
	)

	result, err := p.Parse("timetable.csv", strings.NewReader(body))
	require.NoError(t, err)

	assert.Empty(t, result.MissingColumns)
	assert.Zero(t, result.SkippedRows)
	assert.Equal(t, "timetable.csv", result.SourceName)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Equal(t, 4410, rec.TermCode)
	assert.Equal(t, "1201", rec.ClassNumber)
	assert.Equal(t, "Analytical Chemistry II", rec.CourseDescription)
	assert.Equal(t, "Molecular Sciences G12", rec.Location())
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), rec.StartDate)
	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), rec.EndDate)
	assert.Equal(t, "09:00:00", rec.MeetingStart)
	assert.False(t, rec.Weekdays.Mo)
	assert.True(t, rec.Weekdays.Tues)
	assert.True(t, rec.Weekdays.Thurs)
	assert.Equal(t, 24, rec.RoomCapacity)
	assert.Equal(t, 20, rec.EnrollmentCapacity)
	// Team abbreviations expand at ingestion.
	assert.Equal(t, "Chemical & Analytical Services", rec.TechTeam)
}

func TestParseSkipsRowsWithBadDates(t *testing.T) {
	p := NewParser(zap.NewNop())

	body := csvUpload(
		"4410,012345,1201,1,CHEM,2512,Analytical Chemistry II,Laboratory,MS,Molecular Sciences,G12,not-a-date,2024-05-31,09:00:00,11:00:00,N,Y,N,N,N,24,20,CAS",
		"4410,012346,1202,1,CHEM,2512,Analytical Chemistry II,Laboratory,MS,Molecular Sciences,G14,2024-03-04,2024-05-31,11:00:00,13:00:00,N,Y,N,N,N,24,18,CAS",
	)

	result, err := p.Parse("timetable.csv", strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, 1, result.SkippedRows)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "G14", result.Records[0].Room)
}

func TestParseReportsMissingColumns(t *testing.T) {
	p := NewParser(zap.NewNop())

	body := "Course Descr,Start Date,End Date\n" +
		"Analytical Chemistry II,2024-03-04,2024-05-31\n"

	result, err := p.Parse("timetable.csv", strings.NewReader(body))
	require.NoError(t, err)

	assert.Contains(t, result.MissingColumns, "Tech Team")
	assert.Contains(t, result.MissingColumns, "Mo")
	assert.NotContains(t, result.MissingColumns, "Course Descr")
	// Rows still parse; absent fields default to their zero values.
	require.Len(t, result.Records, 1)
	assert.Zero(t, result.Records[0].RoomCapacity)
}

func TestParseDefaultsBlankComponentToUnknown(t *testing.T) {
	p := NewParser(zap.NewNop())

	body := csvUpload(
		"4410,012345,1201,1,CHEM,2512,Analytical Chemistry II,,MS,Molecular Sciences,G12,2024-03-04,2024-05-31,09:00:00,11:00:00,N,Y,N,N,N,24,20,CAS",
		"4410,012346,1202,1,CHEM,2512,Analytical Chemistry II,Laboratory,MS,Molecular Sciences,G14,2024-03-04,2024-05-31,11:00:00,13:00:00,N,Y,N,N,N,24,18,CAS",
	)

	result, err := p.Parse("timetable.csv", strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	// Every consumer sees the default, not an empty component.
	assert.Equal(t, "Unknown", result.Records[0].Component)
	assert.Equal(t, "Laboratory", result.Records[1].Component)
}

func TestParseTolerantCapacityValues(t *testing.T) {
	p := NewParser(zap.NewNop())

	body := csvUpload(
		"4410,012345,1201,1,CHEM,2512,Analytical Chemistry II,Laboratory,MS,Molecular Sciences,G12,2024-03-04,2024-05-31,09:00:00,11:00:00,Y,N,N,N,N,24.0,,CAS",
	)

	result, err := p.Parse("timetable.csv", strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	assert.Equal(t, 24, result.Records[0].RoomCapacity)
	assert.Zero(t, result.Records[0].EnrollmentCapacity)
}

func TestParseRejectsUnknownExtension(t *testing.T) {
	p := NewParser(zap.NewNop())

	_, err := p.Parse("timetable.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestParseXLSXSkipsBannerRow(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"SET Lab Timetable Export"}))
	header := strings.Split(csvHeader, ",")
	headerCells := make([]interface{}, len(header))
	for i, name := range header {
		headerCells[i] = name
	}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &headerCells))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{
		"4410", "012345", "1201", "1", "CHEM", "2512", "Analytical Chemistry II",
		"Laboratory", "MS", "Molecular Sciences", "G12", "2024-03-04", "2024-05-31",
		"09:00:00", "11:00:00", "N", "Y", "N", "N", "N", "24", "20", "CAS",
	}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	p := NewParser(zap.NewNop())
	result, err := p.Parse("timetable.xlsx", buf)
	require.NoError(t, err)

	assert.Empty(t, result.MissingColumns)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Analytical Chemistry II", result.Records[0].CourseDescription)
}
