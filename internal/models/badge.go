package models

// Badge is an entry of the static badge catalog.
type Badge struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Icon           string `json:"icon"`
	Description    string `json:"description"`
	PointsRequired int    `json:"points_required"`
}

// BadgeCatalog returns the fixed list of badges, in display order. A fresh
// slice is returned on every call.
func BadgeCatalog() []Badge {
	return []Badge{
		{ID: 1, Name: "First Report", Icon: "📝", Description: "Submit your first complaint", PointsRequired: 0},
		{ID: 2, Name: "Eco Beginner", Icon: "🌱", Description: "Reach 100 points", PointsRequired: 100},
		{ID: 3, Name: "Green Guardian", Icon: "🌿", Description: "Reach 500 points", PointsRequired: 500},
		{ID: 4, Name: "Waste Warrior", Icon: "♻️", Description: "Submit 20 reports", PointsRequired: 0},
		{ID: 5, Name: "Earth Champion", Icon: "🌍", Description: "Reach 1000 points", PointsRequired: 1000},
		{ID: 6, Name: "Eco Legend", Icon: "🏆", Description: "Reach 2500 points", PointsRequired: 2500},
	}
}
