package storage

import (
	"fmt"

	"ecosync/backend/internal/config"
	"ecosync/backend/internal/models"

	"gorm.io/gorm"
)

// addUserPointsFunction appends to the ledger and bumps the denormalized
// counter. The two writes are not reconciled afterwards.
const addUserPointsFunction = `
CREATE OR REPLACE FUNCTION %s(user_id uuid, points integer)
RETURNS void
LANGUAGE plpgsql
AS $$
BEGIN
	INSERT INTO rewards (user_id, points, created_at) VALUES ($1, $2, now());
	UPDATE users SET total_points = COALESCE(total_points, 0) + $2 WHERE id = $1;
END;
$$;`

// Migrate creates the collections and the point-award procedure.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("enable pgcrypto: %w", err)
	}

	err := db.AutoMigrate(
		&models.Zone{},
		&models.User{},
		&models.Complaint{},
		&models.RewardTransaction{},
		&models.UserBadge{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.Exec(fmt.Sprintf(addUserPointsFunction, config.AddPointsProcedure)).Error; err != nil {
		return fmt.Errorf("create %s: %w", config.AddPointsProcedure, err)
	}
	return nil
}
