package handler

import (
	"ecosync/backend/internal/analytics"
	"ecosync/backend/internal/apperror"
	"ecosync/backend/internal/complaint"
	"ecosync/backend/internal/events"
	"ecosync/backend/internal/profile"
	"ecosync/backend/internal/rewards"
	"ecosync/backend/internal/storage"
	"ecosync/backend/internal/zone"

	"github.com/gin-gonic/gin"
)

// Handler holds the services behind the HTTP routes.
type Handler struct {
	Complaints *complaint.Service
	Profiles   *profile.Service
	Zones      *zone.Service
	Rewards    *rewards.Service
	Analytics  *analytics.Service
	// Hub serves the realtime complaint feed. Nil disables the feed route.
	Hub *events.Hub
}

// NewHandler builds every service on top of one store handle. Complaint
// changes are announced through pub.
func NewHandler(s storage.Storage, pub events.Publisher, hub *events.Hub) *Handler {
	return &Handler{
		Complaints: complaint.NewService(s, pub),
		Profiles:   profile.NewService(s),
		Zones:      zone.NewService(s),
		Rewards:    rewards.NewService(s),
		Analytics:  analytics.NewService(s),
		Hub:        hub,
	}
}

var errBodyNotObject = apperror.Validation("request body must be a JSON object")

// bindObject reads a JSON object body of arbitrary fields.
func bindObject(c *gin.Context) (map[string]any, error) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil || body == nil {
		return nil, errBodyNotObject
	}
	return body, nil
}
