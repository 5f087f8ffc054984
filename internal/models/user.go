package models

// User roles.
const (
	RoleCitizen = "citizen"
	RoleStaff   = "staff"
)

// UserUpdateFields are the profile columns a user update may write. Role and
// total_points are deliberately absent.
var UserUpdateFields = []string{"full_name", "phone", "address", "zone_id"}

// User is a profile row in the users collection.
// TotalPoints is the denormalized counter maintained by add_user_points and
// used for the leaderboard; the rewards ledger is summed separately.
type User struct {
	ID          string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName    string  `gorm:"type:text" json:"full_name"`
	Phone       *string `gorm:"type:text" json:"phone"`
	Address     *string `gorm:"type:text" json:"address"`
	ZoneID      *string `gorm:"type:uuid;index" json:"zone_id"`
	Role        string  `gorm:"type:text;not null;default:citizen;index" json:"role"`
	TotalPoints int     `gorm:"not null;default:0" json:"total_points"`
}

// TableName specifies the table name for User.
func (User) TableName() string { return "users" }

