package handler

import (
	"ecosync/backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every route. origins are the browser origins allowed by
// CORS and by the feed's websocket handshake.
func NewRouter(h *Handler, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(), CORS(origins))

	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.GET("/health", h.APIHealth)

	complaints := api.Group("/complaints")
	complaints.GET("", h.ListComplaints)
	complaints.POST("", h.CreateComplaint)
	complaints.GET("/stats", h.ComplaintStats)
	complaints.GET("/:id", h.GetComplaint)
	complaints.PUT("/:id", h.UpdateComplaint)
	complaints.DELETE("/:id", h.DeleteComplaint)

	users := api.Group("/users")
	users.GET("/staff", h.ListStaff)
	users.GET("/:id", h.GetUser)
	users.PUT("/:id", h.UpdateUser)

	zones := api.Group("/zones")
	zones.GET("", h.ListZones)
	zones.POST("", h.CreateZone)
	zones.PUT("/:id", h.UpdateZone)
	zones.DELETE("/:id", h.DeleteZone)

	rewards := api.Group("/rewards")
	rewards.GET("/user/:id", h.UserRewards)
	rewards.GET("/leaderboard", h.Leaderboard)
	rewards.GET("/badges", h.Badges)

	analytics := api.Group("/analytics")
	analytics.GET("/overview", h.AnalyticsOverview)
	analytics.GET("/trends", h.AnalyticsTrends)
	analytics.GET("/performance", h.AnalyticsPerformance)

	if h.Hub != nil {
		api.GET("/realtime/complaints", h.ServeComplaintFeed(newUpgrader(origins)))
	}
	return r
}
