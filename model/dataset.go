package model

import "time"

// Dataset is the session-scoped working set: every record of the most recent
// upload plus bookkeeping. Datasets are immutable once stored; a new upload
// replaces the whole dataset and bumps the generation.
type Dataset struct {
	ID         string           `json:"id"`
	SourceName string           `json:"source_name"`
	Records    []ScheduleRecord `json:"records"`
	// MissingColumns lists required columns absent from the upload. The
	// dataset is still adopted; views that depend on a missing column fail
	// individually.
	MissingColumns []string  `json:"missing_columns,omitempty"`
	SkippedRows    int       `json:"skipped_rows"`
	UploadedAt     time.Time `json:"uploaded_at"`
	Generation     uint64    `json:"generation"`
}

// DateBounds returns the earliest start date and latest end date across all
// records, for constraining date pickers. ok is false for an empty dataset.
func (d *Dataset) DateBounds() (min, max time.Time, ok bool) {
	for _, rec := range d.Records {
		if rec.StartDate.IsZero() || rec.EndDate.IsZero() {
			continue
		}
		if !ok {
			min, max = rec.StartDate, rec.EndDate
			ok = true
			continue
		}
		if rec.StartDate.Before(min) {
			min = rec.StartDate
		}
		if rec.EndDate.After(max) {
			max = rec.EndDate
		}
	}
	return min, max, ok
}

// HasColumn reports whether the named required column was present in the
// upload that produced this dataset.
func (d *Dataset) HasColumn(name string) bool {
	for _, missing := range d.MissingColumns {
		if missing == name {
			return false
		}
	}
	return true
}
