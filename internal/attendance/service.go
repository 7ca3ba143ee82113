package attendance

import (
	"context"
	"fmt"
	"time"
)

// Store is the persistence surface the service depends on.
type Store interface {
	LastRecord(ctx context.Context, userID string) (*Record, error)
	InsertRecord(ctx context.Context, rec Record) (Record, error)
	ListUserRecords(ctx context.Context, userID string) ([]Record, error)
	ListRecords(ctx context.Context, filter RecordFilter) ([]DisplayRecord, error)
	CountProfiles(ctx context.Context) (int, error)
}

// Uploader stores screenshot bytes under a name and returns the public URL.
type Uploader interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

// Screenshot is an image attached to a submission.
type Screenshot struct {
	Filename string
	Data     []byte
}

// Service coordinates submissions, queries, and dashboard aggregation.
type Service struct {
	store   Store
	uploads Uploader
	now     func() time.Time
}

// NewService creates a service backed by a store and an upload backend.
func NewService(store Store, uploads Uploader) *Service {
	return &Service{store: store, uploads: uploads, now: time.Now}
}

// CheckedIn derives the user's current check-in state from their most
// recent record.
func (s *Service) CheckedIn(ctx context.Context, userID string) (bool, error) {
	last, err := s.store.LastRecord(ctx, userID)
	if err != nil {
		return false, &QueryError{Err: err}
	}
	return IsCheckedIn(last), nil
}

// SubmitAttendance toggles the user's check-in state: it uploads the
// screenshot, then inserts a check_in or check_out record carrying the
// issued URL. An insert failure leaves the uploaded object orphaned.
func (s *Service) SubmitAttendance(ctx context.Context, userID string, shot Screenshot) (Record, error) {
	if len(shot.Data) == 0 || shot.Filename == "" {
		return Record{}, ValidationError("a screenshot is required to record attendance")
	}

	last, err := s.store.LastRecord(ctx, userID)
	if err != nil {
		return Record{}, &QueryError{Err: err}
	}
	status := NextStatus(IsCheckedIn(last))

	now := s.now()
	url, err := s.uploads.Upload(ctx, objectName("attendance", shot.Filename, now), shot.Data)
	if err != nil {
		return Record{}, &UploadError{Err: err}
	}

	rec, err := s.store.InsertRecord(ctx, Record{
		UserID:        userID,
		Timestamp:     now,
		Status:        status,
		ScreenshotURL: &url,
	})
	if err != nil {
		return Record{}, &RecordCreateError{Err: err}
	}
	return rec, nil
}

// SubmitWorkUpdate records a work_update with a screenshot and a non-empty
// description.
func (s *Service) SubmitWorkUpdate(ctx context.Context, userID string, shot Screenshot, description string) (Record, error) {
	if len(shot.Data) == 0 || shot.Filename == "" {
		return Record{}, ValidationError("a screenshot is required for a work update")
	}
	if description == "" {
		return Record{}, ValidationError("a description of the work is required")
	}

	now := s.now()
	url, err := s.uploads.Upload(ctx, objectName("work", shot.Filename, now), shot.Data)
	if err != nil {
		return Record{}, &UploadError{Err: err}
	}

	rec, err := s.store.InsertRecord(ctx, Record{
		UserID:        userID,
		Timestamp:     now,
		Status:        StatusWorkUpdate,
		ScreenshotURL: &url,
		Description:   &description,
	})
	if err != nil {
		return Record{}, &RecordCreateError{Err: err}
	}
	return rec, nil
}

// Records returns one user's records newest-first.
func (s *Service) Records(ctx context.Context, userID string) ([]Record, error) {
	records, err := s.store.ListUserRecords(ctx, userID)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	return records, nil
}

// AllRecords returns every user's records newest-first, joined with owner
// identity and narrowed by the filter.
func (s *Service) AllRecords(ctx context.Context, filter RecordFilter) ([]DisplayRecord, error) {
	if filter.Date != "" {
		if _, _, err := dayRange(filter.Date, time.Local); err != nil {
			return nil, ValidationError(err.Error())
		}
	}
	records, err := s.store.ListRecords(ctx, filter)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	return records, nil
}

// Stats computes the dashboard tiles over the records matching the filter,
// dated against the service clock.
func (s *Service) Stats(ctx context.Context, filter RecordFilter) (DashboardStats, error) {
	records, err := s.AllRecords(ctx, filter)
	if err != nil {
		return DashboardStats{}, err
	}
	total, err := s.store.CountProfiles(ctx)
	if err != nil {
		return DashboardStats{}, &QueryError{Err: err}
	}
	return ComputeStats(total, records, s.now()), nil
}

// objectName builds the storage name for an uploaded screenshot:
// <prefix>_<epoch-millis>_<original-filename>.
func objectName(prefix, filename string, t time.Time) string {
	return fmt.Sprintf("%s_%d_%s", prefix, t.UnixMilli(), filename)
}
