package config

import "time"

const (
	// Points
	ComplaintReportPoints = 10
	AddPointsProcedure    = "add_user_points"

	// Listing
	DefaultListLimit   = 50
	DefaultOrderField  = "created_at"
	LeaderboardSize    = 10
	DefaultTrendWindow = 30

	// Change feed
	ChangeFeedChannel = "complaints-changes"
	FeedSendBuffer    = 64
	FeedWriteWait     = 10 * time.Second
	FeedPongWait      = 60 * time.Second
)

// Collections names the remote tables this service talks to.
var Collections = struct {
	Complaints string
	Users      string
	Zones      string
	Rewards    string
	UserBadges string
}{
	Complaints: "complaints",
	Users:      "users",
	Zones:      "zones",
	Rewards:    "rewards",
	UserBadges: "user_badges",
}
