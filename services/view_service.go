package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/setlab/labsched/model"
	"github.com/setlab/labsched/schedule"
	"github.com/setlab/labsched/services/ingest"
	"github.com/setlab/labsched/store"
)

// NoCoursesMessage is shown when a valid filter matches nothing.
const NoCoursesMessage = "No courses found in the selected date range."

// FilterRequest selects the slice of the working set a view renders.
type FilterRequest struct {
	Terms     []int    `json:"terms" validate:"required,min=1"`
	Courses   []string `json:"courses"`
	TechTeams []string `json:"tech_teams"`
	Buildings []string `json:"buildings"`
	Rooms     []string `json:"rooms"`
	StartDate string   `json:"start_date" validate:"required"`
	EndDate   string   `json:"end_date" validate:"required"`
}

// window parses the request's date bounds. Any unparseable or missing bound
// fails window validation, not date parsing.
func (f FilterRequest) window() (schedule.Window, error) {
	start, errStart := time.Parse("2006-01-02", f.StartDate)
	end, errEnd := time.Parse("2006-01-02", f.EndDate)
	if errStart != nil || errEnd != nil {
		return schedule.Window{}, schedule.ErrInvalidWindow
	}
	return schedule.NewWindow(start, end)
}

// ChartsView carries per-slot capacity groups.
type ChartsView struct {
	Empty   bool                  `json:"empty"`
	Message string                `json:"message,omitempty"`
	Groups  []schedule.ChartGroup `json:"groups"`
}

// TableView carries per-course occurrence tables.
type TableView struct {
	Empty   bool                  `json:"empty"`
	Message string                `json:"message,omitempty"`
	Courses []schedule.TableGroup `json:"courses"`
}

// TimelineView carries prebuilt timeline chart layouts.
type TimelineView struct {
	Empty   bool                     `json:"empty"`
	Message string                   `json:"message,omitempty"`
	Charts  []schedule.TimelineChart `json:"charts"`
}

// CalendarView carries one grid per month intersecting the window.
type CalendarView struct {
	Empty   bool                 `json:"empty"`
	Message string               `json:"message,omitempty"`
	Months  []schedule.MonthGrid `json:"months"`
}

// ViewService recomputes view payloads from a dataset snapshot on every
// request. Nothing is cached between calls.
type ViewService struct {
	store store.Storage
	log   *zap.Logger
}

// NewViewService creates a new view service
func NewViewService(storage store.Storage, log *zap.Logger) *ViewService {
	return &ViewService{store: storage, log: log}
}

// viewColumns must be present for any occurrence-based view.
var viewColumns = []string{
	ingest.ColTerm, ingest.ColCourseDescr,
	ingest.ColStartDate, ingest.ColEndDate,
	ingest.ColMeetingStart, ingest.ColMeetingEnd,
}

func (v *ViewService) snapshot(ctx context.Context, sessionID string) (*model.Dataset, error) {
	dataset, err := v.store.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for _, column := range viewColumns {
		if !dataset.HasColumn(column) {
			return nil, &ingest.ColumnError{Column: column}
		}
	}
	return dataset, nil
}

// applyFilters narrows the working set by term, course, team, building, and
// room. A room selection of "All" disables the room filter.
func applyFilters(records []model.ScheduleRecord, req FilterRequest) []model.ScheduleRecord {
	rooms := req.Rooms
	if containsString(rooms, "All") {
		rooms = nil
	}

	filtered := make([]model.ScheduleRecord, 0, len(records))
	for _, rec := range records {
		if !containsInt(req.Terms, rec.TermCode) {
			continue
		}
		if len(req.Courses) > 0 && !containsString(req.Courses, rec.CourseDescription) {
			continue
		}
		if len(req.TechTeams) > 0 && !containsString(req.TechTeams, rec.TechTeam) {
			continue
		}
		if len(req.Buildings) > 0 && !containsString(req.Buildings, rec.BuildingDescription) {
			continue
		}
		if len(rooms) > 0 && !containsString(rooms, rec.Room) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

// expandEntries expands each record and keeps the occurrences the window
// admits. A record with an unreadable meeting time is skipped and logged;
// its siblings still contribute.
func (v *ViewService) expandEntries(records []model.ScheduleRecord, w schedule.Window, policy schedule.Policy) []schedule.Entry {
	var entries []schedule.Entry
	for _, rec := range records {
		occurrences, err := schedule.Expand(rec)
		if err != nil {
			v.log.Warn("skipping record with unreadable meeting time",
				zap.String("course", rec.CourseDescription),
				zap.String("class", rec.ClassNumber),
				zap.Error(err),
			)
			continue
		}
		for _, occ := range occurrences {
			if w.Matches(occ, policy) {
				entries = append(entries, schedule.Entry{Record: rec, Occurrence: occ})
			}
		}
	}
	return entries
}

func (v *ViewService) entriesFor(ctx context.Context, sessionID string, req FilterRequest, policy schedule.Policy) ([]schedule.Entry, schedule.Window, error) {
	dataset, err := v.snapshot(ctx, sessionID)
	if err != nil {
		return nil, schedule.Window{}, err
	}

	w, err := req.window()
	if err != nil {
		return nil, schedule.Window{}, err
	}

	records := applyFilters(dataset.Records, req)
	return v.expandEntries(records, w, policy), w, nil
}

// Charts builds the capacity chart view. Mode "course" leads groups with the
// class component; mode "location" leads with the course description.
func (v *ViewService) Charts(ctx context.Context, sessionID, mode string, req FilterRequest) (*ChartsView, error) {
	chartMode, err := parseChartMode(mode)
	if err != nil {
		return nil, err
	}

	entries, _, err := v.entriesFor(ctx, sessionID, req, schedule.IntervalOverlap)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return &ChartsView{Empty: true, Message: NoCoursesMessage, Groups: []schedule.ChartGroup{}}, nil
	}
	return &ChartsView{Groups: schedule.BuildChartGroups(entries, chartMode)}, nil
}

// Table builds the per-course occurrence table view.
func (v *ViewService) Table(ctx context.Context, sessionID string, req FilterRequest) (*TableView, error) {
	entries, _, err := v.entriesFor(ctx, sessionID, req, schedule.IntervalOverlap)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return &TableView{Empty: true, Message: NoCoursesMessage, Courses: []schedule.TableGroup{}}, nil
	}
	return &TableView{Courses: schedule.BuildTableGroups(entries)}, nil
}

// Timeline builds the timeline chart layouts.
func (v *ViewService) Timeline(ctx context.Context, sessionID, mode string, req FilterRequest) (*TimelineView, error) {
	timelineMode, err := parseTimelineMode(mode)
	if err != nil {
		return nil, err
	}

	entries, _, err := v.entriesFor(ctx, sessionID, req, schedule.IntervalOverlap)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return &TimelineView{Empty: true, Message: NoCoursesMessage, Charts: []schedule.TimelineChart{}}, nil
	}
	return &TimelineView{Charts: schedule.BuildTimelines(entries, timelineMode)}, nil
}

// Calendar builds month grids covering the window.
func (v *ViewService) Calendar(ctx context.Context, sessionID string, req FilterRequest) (*CalendarView, error) {
	entries, w, err := v.entriesFor(ctx, sessionID, req, schedule.IntervalOverlap)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return &CalendarView{Empty: true, Message: NoCoursesMessage, Months: []schedule.MonthGrid{}}, nil
	}
	return &CalendarView{Months: schedule.BuildCalendar(w, entries)}, nil
}

// Day builds the single-day capacity view. Only occurrences starting on the
// probe date count.
func (v *ViewService) Day(ctx context.Context, sessionID string, date string, req FilterRequest) (*ChartsView, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, schedule.ErrInvalidWindow
	}
	w, err := schedule.DayWindow(day)
	if err != nil {
		return nil, err
	}

	dataset, err := v.snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	records := applyFilters(dataset.Records, req)
	entries := v.expandEntries(records, w, schedule.PointInWindow)
	if len(entries) == 0 {
		return &ChartsView{Empty: true, Message: NoCoursesMessage, Groups: []schedule.ChartGroup{}}, nil
	}
	return &ChartsView{Groups: schedule.BuildChartGroups(entries, schedule.ChartByCourse)}, nil
}

// ErrUnknownMode rejects view mode values other than course and location.
var ErrUnknownMode = errors.New("unknown view mode")

func parseChartMode(mode string) (schedule.ChartMode, error) {
	switch mode {
	case "", "course":
		return schedule.ChartByCourse, nil
	case "location":
		return schedule.ChartByLocation, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

func parseTimelineMode(mode string) (schedule.TimelineMode, error) {
	switch mode {
	case "", "course":
		return schedule.TimelineByCourse, nil
	case "location":
		return schedule.TimelineByLocation, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
