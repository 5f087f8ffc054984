// Package analytics computes dashboard figures from complaints and users.
// Everything is aggregated in process over full collection reads.
package analytics

import (
	"context"
	"math"
	"time"

	"ecosync/backend/internal/apperror"
	"ecosync/backend/internal/config"
	"ecosync/backend/internal/models"
	"ecosync/backend/internal/query"
	"ecosync/backend/internal/storage"
)

type Service struct {
	Storage storage.Storage
	Now     func() time.Time
}

// NewService creates an analytics service computing over complaint rows.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s, Now: time.Now}
}

// Overview counts complaints and users. The resolution rate is a percentage
// rounded to two decimals, 0 when there are no complaints.
func (s *Service) Overview(ctx context.Context) (models.Overview, error) {
	complaints, err := s.Storage.Select(ctx, query.From(config.Collections.Complaints))
	if err != nil {
		return models.Overview{}, err
	}
	users, err := s.Storage.Select(ctx, query.From(config.Collections.Users).Select("id, role"))
	if err != nil {
		return models.Overview{}, err
	}

	var o models.Overview
	o.TotalComplaints = len(complaints)
	for _, c := range complaints {
		switch storage.String(c, "status") {
		case models.StatusPending:
			o.PendingComplaints++
		case models.StatusResolved:
			o.ResolvedComplaints++
		}
	}
	for _, u := range users {
		switch storage.String(u, "role") {
		case models.RoleCitizen:
			o.TotalUsers++
		case models.RoleStaff:
			o.TotalStaff++
		}
	}
	o.ResolutionRate = ResolutionRate(o.ResolvedComplaints, o.TotalComplaints)
	return o, nil
}

// ResolutionRate returns resolved/total as a percentage with two decimals.
func ResolutionRate(resolved, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(resolved)/float64(total)*100*100) / 100
}

// Trends returns created_at and status of the complaints filed in the last
// days days. Rows whose created_at can not be parsed are left out.
func (s *Service) Trends(ctx context.Context, days int) ([]storage.Row, error) {
	if days < 1 {
		return nil, apperror.Validation("days must be a positive integer")
	}
	rows, err := s.Storage.Select(ctx, query.From(config.Collections.Complaints).Select("created_at, status"))
	if err != nil {
		return nil, err
	}

	since := s.Now().Add(-time.Duration(days) * 24 * time.Hour)
	out := make([]storage.Row, 0, len(rows))
	for _, r := range rows {
		created, ok := storage.Time(r["created_at"])
		if !ok || created.Before(since) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Performance returns the assignment and timing columns of resolved complaints.
func (s *Service) Performance(ctx context.Context) ([]storage.Row, error) {
	q := query.From(config.Collections.Complaints).
		Select("assigned_to, status, resolved_at, created_at").
		Eq("status", models.StatusResolved)
	return s.Storage.Select(ctx, q)
}
