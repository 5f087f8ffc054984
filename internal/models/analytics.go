package models

// Overview is the headline analytics block.
type Overview struct {
	TotalComplaints    int     `json:"total_complaints"`
	PendingComplaints  int     `json:"pending_complaints"`
	ResolvedComplaints int     `json:"resolved_complaints"`
	TotalUsers         int     `json:"total_users"`
	TotalStaff         int     `json:"total_staff"`
	ResolutionRate     float64 `json:"resolution_rate"`
}
