// Package rewards reports points and badges. Two point totals exist: the sum
// of a user's ledger entries, shown on their rewards page, and the
// users.total_points counter that ranks the leaderboard. They are read
// independently and never reconciled here.
package rewards

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

// NewService creates a rewards service reading the ledger, badges and users.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// ForUser returns the ledger total, the earned badges and the ledger itself.
func (s *Service) ForUser(ctx context.Context, userID string) (models.UserRewards, error) {
	ledger, err := s.Storage.Select(ctx, query.From(config.Collections.Rewards).Eq("user_id", userID))
	if err != nil {
		return models.UserRewards{}, err
	}
	badges, err := s.Storage.Select(ctx, query.From(config.Collections.UserBadges).Eq("user_id", userID))
	if err != nil {
		return models.UserRewards{}, err
	}

	var total float64
	for _, r := range ledger {
		if p, ok := storage.Float(r["points"]); ok {
			total += p
		}
	}
	return models.UserRewards{
		TotalPoints:  total,
		Badges:       nonNil(badges),
		Transactions: nonNil(ledger),
	}, nil
}

// Leaderboard returns the top users by their points counter.
func (s *Service) Leaderboard(ctx context.Context) ([]storage.Row, error) {
	q := query.From(config.Collections.Users).
		Select("id, full_name, total_points").
		OrderBy("total_points", true).
		Take(config.LeaderboardSize)
	return s.Storage.Select(ctx, q)
}

// Badges returns the badge catalog.
func (s *Service) Badges() []models.Badge {
	return models.BadgeCatalog()
}

func nonNil(rows []storage.Row) []map[string]any {
	if rows == nil {
		return []map[string]any{}
	}
	return rows
}
