// Package zone manages service areas.
package zone

import (
	"context"

	"ecosync/backend/internal/config"
	"ecosync/backend/internal/models"
	"ecosync/backend/internal/query"
	"ecosync/backend/internal/storage"
)

type Service struct {
	Storage storage.Storage
}

// NewService creates a zone service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// List returns every zone.
func (s *Service) List(ctx context.Context) ([]storage.Row, error) {
	return s.Storage.Select(ctx, query.From(config.Collections.Zones))
}

// Create stores a zone and returns the stored row, or nil.
func (s *Service) Create(ctx context.Context, in models.NewZone) (storage.Row, error) {
	rows, err := s.Storage.Insert(ctx, config.Collections.Zones, in.Row())
	if err != nil {
		return nil, err
	}
	return storage.First(rows), nil
}

// Update forwards body unfiltered. Unlike complaints and users, zones have
// no allow-list; unknown columns are rejected by the store itself.
func (s *Service) Update(ctx context.Context, id string, body map[string]any) (storage.Row, error) {
	rows, err := s.Storage.Update(ctx, query.From(config.Collections.Zones).Eq("id", id), body)
	if err != nil {
		return nil, err
	}
	return storage.First(rows), nil
}

// Delete removes a zone.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Storage.Delete(ctx, query.From(config.Collections.Zones).Eq("id", id))
}
