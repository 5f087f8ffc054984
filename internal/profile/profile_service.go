// Package profile serves user profiles and the staff directory.
package profile

import (
	"context"

	"ecosync/backend/internal/apperror"
	"ecosync/backend/internal/config"
	"ecosync/backend/internal/models"
	"ecosync/backend/internal/query"
	"ecosync/backend/internal/storage"
)

// Service reads and edits users.
type Service struct {
	Storage storage.Storage
}

// NewService creates a profile service over the users collection.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// Get returns one user.
func (s *Service) Get(ctx context.Context, id string) (storage.Row, error) {
	rows, err := s.Storage.Select(ctx, query.From(config.Collections.Users).Eq("id", id))
	if err != nil {
		return nil, err
	}
	row := storage.First(rows)
	if row == nil {
		return nil, apperror.NotFound("User not found")
	}
	return row, nil
}

// Update writes the editable profile fields of body. role and total_points
// can not be changed here.
func (s *Service) Update(ctx context.Context, id string, body map[string]any) (storage.Row, error) {
	values := storage.Pick(body, models.UserUpdateFields)
	rows, err := s.Storage.Update(ctx, query.From(config.Collections.Users).Eq("id", id), values)
	if err != nil {
		return nil, err
	}
	return storage.First(rows), nil
}

// Staff lists every user with the staff role.
func (s *Service) Staff(ctx context.Context) ([]storage.Row, error) {
	return s.Storage.Select(ctx, query.From(config.Collections.Users).Eq("role", models.RoleStaff))
}
