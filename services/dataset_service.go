package services

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/setlab/labsched/model"
	"github.com/setlab/labsched/services/ingest"
	"github.com/setlab/labsched/store"
)

// DatasetService owns the session dataset lifecycle: uploads, resets,
// metadata, and the dropdown option cascades derived from the working set.
type DatasetService struct {
	store  store.Storage
	parser *ingest.Parser
	log    *zap.Logger
}

// NewDatasetService creates a new dataset service
func NewDatasetService(storage store.Storage, parser *ingest.Parser, log *zap.Logger) *DatasetService {
	return &DatasetService{
		store:  storage,
		parser: parser,
		log:    log,
	}
}

// DatasetMeta describes the session's working set without its records.
type DatasetMeta struct {
	ID             string    `json:"id"`
	SourceName     string    `json:"source_name"`
	RowCount       int       `json:"row_count"`
	SkippedRows    int       `json:"skipped_rows"`
	MissingColumns []string  `json:"missing_columns,omitempty"`
	UploadedAt     time.Time `json:"uploaded_at"`
	Generation     uint64    `json:"generation"`
	// Date-picker bounds: min start date / max end date over all records.
	MinDate string `json:"min_date,omitempty"`
	MaxDate string `json:"max_date,omitempty"`
}

func metaOf(dataset *model.Dataset) *DatasetMeta {
	meta := &DatasetMeta{
		ID:             dataset.ID,
		SourceName:     dataset.SourceName,
		RowCount:       len(dataset.Records),
		SkippedRows:    dataset.SkippedRows,
		MissingColumns: dataset.MissingColumns,
		UploadedAt:     dataset.UploadedAt,
		Generation:     dataset.Generation,
	}
	if min, max, ok := dataset.DateBounds(); ok {
		meta.MinDate = min.Format("2006-01-02")
		meta.MaxDate = max.Format("2006-01-02")
	}
	return meta
}

// Upload parses the file and atomically replaces the session's dataset. A
// parse failure leaves the previous dataset untouched.
func (s *DatasetService) Upload(ctx context.Context, sessionID, filename string, r io.Reader) (*DatasetMeta, error) {
	result, err := s.parser.Parse(filename, r)
	if err != nil {
		return nil, err
	}

	dataset := &model.Dataset{
		ID:             uuid.NewString(),
		SourceName:     result.SourceName,
		Records:        result.Records,
		MissingColumns: result.MissingColumns,
		SkippedRows:    result.SkippedRows,
		UploadedAt:     time.Now().UTC(),
	}
	if err := s.store.Replace(ctx, sessionID, dataset); err != nil {
		return nil, err
	}

	s.log.Info("dataset replaced",
		zap.String("session", sessionID),
		zap.String("source", dataset.SourceName),
		zap.Int("rows", len(dataset.Records)),
		zap.Int("skipped", dataset.SkippedRows),
		zap.Strings("missing_columns", dataset.MissingColumns),
	)
	return metaOf(dataset), nil
}

// Current returns metadata for the session's dataset.
func (s *DatasetService) Current(ctx context.Context, sessionID string) (*DatasetMeta, error) {
	dataset, err := s.store.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return metaOf(dataset), nil
}

// Reset clears the session's dataset.
func (s *DatasetService) Reset(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

// TermOption pairs a term code with its display label.
type TermOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Terms lists the dataset's distinct term codes in first-seen order.
func (s *DatasetService) Terms(ctx context.Context, sessionID string) ([]TermOption, error) {
	dataset, err := s.snapshotWith(ctx, sessionID, ingest.ColTerm)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{})
	options := []TermOption{}
	for _, rec := range dataset.Records {
		if _, ok := seen[rec.TermCode]; ok {
			continue
		}
		seen[rec.TermCode] = struct{}{}
		options = append(options, TermOption{Value: rec.TermCode, Label: rec.TermLabel()})
	}
	return options, nil
}

// Courses lists distinct course descriptions, optionally narrowed to terms.
func (s *DatasetService) Courses(ctx context.Context, sessionID string, terms []int) ([]string, error) {
	dataset, err := s.snapshotWith(ctx, sessionID, ingest.ColCourseDescr)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	courses := []string{}
	for _, rec := range dataset.Records {
		if len(terms) > 0 && !containsInt(terms, rec.TermCode) {
			continue
		}
		if _, ok := seen[rec.CourseDescription]; ok {
			continue
		}
		seen[rec.CourseDescription] = struct{}{}
		courses = append(courses, rec.CourseDescription)
	}
	return courses, nil
}

// TeamOption pairs a tech team value with its display label. The empty value
// selects records that carry no team.
type TeamOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TechTeams lists the "None" option followed by distinct non-empty tech team
// names in first-seen order, so teamless records stay selectable.
func (s *DatasetService) TechTeams(ctx context.Context, sessionID string) ([]TeamOption, error) {
	dataset, err := s.snapshotWith(ctx, sessionID, ingest.ColTechTeam)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	options := []TeamOption{{Value: "", Label: "None"}}
	for _, rec := range dataset.Records {
		if rec.TechTeam == "" {
			continue
		}
		if _, ok := seen[rec.TechTeam]; ok {
			continue
		}
		seen[rec.TechTeam] = struct{}{}
		options = append(options, TeamOption{Value: rec.TechTeam, Label: rec.TechTeam})
	}
	return options, nil
}

// Buildings lists distinct building descriptions sorted alphabetically,
// optionally narrowed to tech teams.
func (s *DatasetService) Buildings(ctx context.Context, sessionID string, techTeams []string) ([]string, error) {
	dataset, err := s.snapshotWith(ctx, sessionID, ingest.ColBuildingDescr)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	buildings := []string{}
	for _, rec := range dataset.Records {
		if len(techTeams) > 0 && !containsString(techTeams, rec.TechTeam) {
			continue
		}
		if rec.BuildingDescription == "" {
			continue
		}
		if _, ok := seen[rec.BuildingDescription]; ok {
			continue
		}
		seen[rec.BuildingDescription] = struct{}{}
		buildings = append(buildings, rec.BuildingDescription)
	}
	sort.Strings(buildings)
	return buildings, nil
}

// Rooms lists distinct rooms narrowed to the selected buildings and teams.
func (s *DatasetService) Rooms(ctx context.Context, sessionID string, buildings, techTeams []string) ([]string, error) {
	dataset, err := s.snapshotWith(ctx, sessionID, ingest.ColRoom)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	rooms := []string{}
	for _, rec := range dataset.Records {
		if len(techTeams) > 0 && !containsString(techTeams, rec.TechTeam) {
			continue
		}
		if len(buildings) > 0 && !containsString(buildings, rec.BuildingDescription) {
			continue
		}
		if rec.Room == "" {
			continue
		}
		if _, ok := seen[rec.Room]; ok {
			continue
		}
		seen[rec.Room] = struct{}{}
		rooms = append(rooms, rec.Room)
	}
	return rooms, nil
}

// snapshotWith fetches the dataset and verifies the upload carried a column.
func (s *DatasetService) snapshotWith(ctx context.Context, sessionID, column string) (*model.Dataset, error) {
	dataset, err := s.store.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !dataset.HasColumn(column) {
		return nil, &ingest.ColumnError{Column: column}
	}
	return dataset, nil
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
