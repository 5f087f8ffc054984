package models

import (
	"encoding/json"

	"github.com/lib/pq"
)

// Zone is a service area with its assigned staff. Boundaries is an opaque
// geometry document stored as jsonb.
type Zone struct {
	ID            string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name          string          `gorm:"type:text" json:"name"`
	Description   *string         `gorm:"type:text" json:"description"`
	Boundaries    json.RawMessage `gorm:"type:jsonb" json:"boundaries"`
	AssignedStaff pq.StringArray  `gorm:"type:text[];not null;default:'{}'" json:"assigned_staff"`
}

// TableName specifies the table name for Zone.
func (Zone) TableName() string { return "zones" }

// NewZone is the body of a zone creation request.
type NewZone struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Boundaries    any      `json:"boundaries"`
	AssignedStaff []string `json:"assigned_staff"`
}

// Row builds the insert payload. assigned_staff defaults to an empty list.
func (n NewZone) Row() map[string]any {
	staff := n.AssignedStaff
	if staff == nil {
		staff = []string{}
	}
	return map[string]any{
		"name":           optional(n.Name),
		"description":    optional(n.Description),
		"boundaries":     n.Boundaries,
		"assigned_staff": staff,
	}
}
