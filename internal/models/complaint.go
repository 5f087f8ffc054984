package models

import "time"

// Complaint statuses.
const (
	StatusPending    = "pending"
	StatusAssigned   = "assigned"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
)

// Complaint priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ComplaintUpdateFields are the only columns a complaint update may write.
var ComplaintUpdateFields = []string{"status", "priority", "assigned_to", "notes", "resolved_at"}

// ComplaintColumns is the complaints column set.
var ComplaintColumns = []string{
	"id", "user_id", "title", "description", "category", "location", "latitude", "longitude",
	"status", "priority", "media_url", "assigned_to", "notes", "created_at", "resolved_at",
}

// Complaint is a citizen report in the complaints collection. The struct
// documents the column set and drives the SQL schema migration; handlers pass
// rows through as maps.
type Complaint struct {
	ID          string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      *string    `gorm:"type:uuid;index" json:"user_id"`
	Title       string     `gorm:"type:text;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Category    *string    `gorm:"type:text" json:"category"`
	Location    *string    `gorm:"type:text" json:"location"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	Status      string     `gorm:"type:text;not null;default:pending;index" json:"status"`
	Priority    string     `gorm:"type:text;not null;default:medium" json:"priority"`
	MediaURL    *string    `gorm:"type:text" json:"media_url"`
	AssignedTo  *string    `gorm:"type:uuid;index" json:"assigned_to"`
	Notes       *string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at"`
}

// TableName specifies the table name for Complaint.
func (Complaint) TableName() string { return "complaints" }

// NewComplaint is the body of a complaint creation request.
type NewComplaint struct {
	UserID      *string  `json:"user_id"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Category    *string  `json:"category"`
	Location    *string  `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Priority    *string  `json:"priority"`
	MediaURL    *string  `json:"media_url"`
}

// Row builds the insert payload: status starts as pending, priority falls
// back to medium, created_at is stamped by the caller.
func (n NewComplaint) Row(createdAt string) map[string]any {
	priority := PriorityMedium
	if n.Priority != nil && *n.Priority != "" {
		priority = *n.Priority
	}
	return map[string]any{
		"user_id":     optional(n.UserID),
		"title":       n.Title,
		"description": n.Description,
		"category":    optional(n.Category),
		"location":    optional(n.Location),
		"latitude":    optionalFloat(n.Latitude),
		"longitude":   optionalFloat(n.Longitude),
		"status":      StatusPending,
		"priority":    priority,
		"media_url":   optional(n.MediaURL),
		"created_at":  createdAt,
	}
}

// ComplaintStats counts complaints per status. Total counts every row, so
// rows with a status outside the four buckets make Total exceed their sum.
type ComplaintStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Assigned   int `json:"assigned"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
}

// Count adds one row with the given status.
func (s *ComplaintStats) Count(status string) {
	s.Total++
	switch status {
	case StatusPending:
		s.Pending++
	case StatusAssigned:
		s.Assigned++
	case StatusInProgress:
		s.InProgress++
	case StatusResolved:
		s.Resolved++
	}
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func optionalFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
