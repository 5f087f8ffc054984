package models

import "time"

// RewardTransaction is one entry of the points ledger.
type RewardTransaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Points    int       `gorm:"not null" json:"points"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

// TableName specifies the table name for RewardTransaction.
func (RewardTransaction) TableName() string { return "rewards" }

// UserBadge records a badge a user earned.
type UserBadge struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   string    `gorm:"type:uuid;not null;index" json:"user_id"`
	BadgeID  int       `gorm:"not null" json:"badge_id"`
	EarnedAt time.Time `gorm:"not null;default:now()" json:"earned_at"`
}

// TableName specifies the table name for UserBadge.
func (UserBadge) TableName() string { return "user_badges" }

// UserRewards is the rewards summary of one user. TotalPoints is the ledger
// sum and is not reconciled with users.total_points.
type UserRewards struct {
	TotalPoints  float64          `json:"total_points"`
	Badges       []map[string]any `json:"badges"`
	Transactions []map[string]any `json:"transactions"`
}
