// Package complaint provides the core logic for handling citizen complaints,
// including the reporting reward and change notifications.
package complaint

import (
	"context"
	"time"

	"ecosync/backend/internal/apperror"
	"ecosync/backend/internal/config"
	"ecosync/backend/internal/events"
	"ecosync/backend/internal/logger"
	"ecosync/backend/internal/models"
	"ecosync/backend/internal/query"
	"ecosync/backend/internal/storage"
)

// ListFields are the query parameters a complaint list may filter on and the
// columns it may be ordered by.
var ListFields = query.Fields{
	Filter: []string{"user_id", "status"},
	Order:  models.ComplaintColumns,
}

// Service handles the business logic for complaints.
type Service struct {
	Storage storage.Storage
	Events  events.Publisher
	Now     func() time.Time
}

// NewService creates a new complaint service. A nil publisher discards events.
func NewService(s storage.Storage, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.Discard
	}
	return &Service{Storage: s, Events: pub, Now: time.Now}
}

// List returns complaints, newest first and at most 50 unless p says otherwise.
func (s *Service) List(ctx context.Context, p query.ListParams) ([]storage.Row, error) {
	q := p.Apply(query.From(config.Collections.Complaints)).
		WithDefaults(config.DefaultOrderField, config.DefaultListLimit)
	return s.Storage.Select(ctx, q)
}

// Create stores a new complaint and rewards the reporter. The returned row
// is nil when the store echoed nothing back.
func (s *Service) Create(ctx context.Context, in models.NewComplaint) (storage.Row, error) {
	if in.Title == "" || in.Description == "" {
		return nil, apperror.Validation("title and description are required")
	}

	rows, err := s.Storage.Insert(ctx, config.Collections.Complaints, in.Row(storage.Timestamp(s.Now())))
	if err != nil {
		return nil, err
	}
	row := storage.First(rows)
	if row == nil {
		return nil, nil
	}

	if in.UserID != nil && *in.UserID != "" {
		s.awardPoints(ctx, *in.UserID, config.ComplaintReportPoints)
	}
	s.publish(ctx, events.ComplaintCreated, storage.String(row, "id"), row)
	return row, nil
}

// awardPoints is best effort: the complaint is already stored, so a failed
// award is logged and the request still succeeds.
func (s *Service) awardPoints(ctx context.Context, userID string, points int) {
	err := s.Storage.Call(ctx, config.AddPointsProcedure, storage.Row{"user_id": userID, "points": points})
	if err != nil {
		logger.FromContext(ctx).WithError(err).WithField("user_id", userID).Warn("failed to award complaint points")
	}
}

// Get returns one complaint.
func (s *Service) Get(ctx context.Context, id string) (storage.Row, error) {
	rows, err := s.Storage.Select(ctx, query.From(config.Collections.Complaints).Eq("id", id))
	if err != nil {
		return nil, err
	}
	row := storage.First(rows)
	if row == nil {
		return nil, apperror.NotFound("Complaint not found")
	}
	return row, nil
}

// Update writes the allow-listed fields of body. Marking a complaint resolved
// stamps resolved_at with the current time, overriding any supplied value.
func (s *Service) Update(ctx context.Context, id string, body map[string]any) (storage.Row, error) {
	values := storage.Pick(body, models.ComplaintUpdateFields)
	if status, ok := values["status"].(string); ok && status == models.StatusResolved {
		values["resolved_at"] = storage.Timestamp(s.Now())
	}

	rows, err := s.Storage.Update(ctx, query.From(config.Collections.Complaints).Eq("id", id), values)
	if err != nil {
		return nil, err
	}
	row := storage.First(rows)
	if row != nil && len(values) > 0 {
		s.publish(ctx, events.ComplaintUpdated, id, row)
	}
	return row, nil
}

// Delete removes a complaint. Deleting a missing id is not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Storage.Delete(ctx, query.From(config.Collections.Complaints).Eq("id", id)); err != nil {
		return err
	}
	s.publish(ctx, events.ComplaintDeleted, id, nil)
	return nil
}

// Stats counts complaints by status, over everybody or one reporter.
func (s *Service) Stats(ctx context.Context, userID string) (models.ComplaintStats, error) {
	q := query.From(config.Collections.Complaints).Select("status").EqIfSet("user_id", userID)
	rows, err := s.Storage.Select(ctx, q)
	if err != nil {
		return models.ComplaintStats{}, err
	}
	var stats models.ComplaintStats
	for _, r := range rows {
		stats.Count(storage.String(r, "status"))
	}
	return stats, nil
}

func (s *Service) publish(ctx context.Context, t events.Type, id string, data storage.Row) {
	if err := s.Events.Publish(ctx, events.New(t, id, data)); err != nil {
		logger.FromContext(ctx).WithError(err).WithField("complaint_id", id).Warn("failed to publish complaint change")
	}
}
