package handler

import (
	"ecosync/backend/internal/api/envelope"

	"github.com/gin-gonic/gin"
)

// UserRewards handles GET /api/rewards/user/:id.
func (h *Handler) UserRewards(c *gin.Context) {
	summary, err := h.Rewards.ForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	envelope.OK(c, summary)
}

// Leaderboard handles GET /api/rewards/leaderboard.
func (h *Handler) Leaderboard(c *gin.Context) {
	rows, err := h.Rewards.Leaderboard(c.Request.Context())
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	envelope.OK(c, rows)
}

// Badges handles GET /api/rewards/badges.
func (h *Handler) Badges(c *gin.Context) {
	envelope.OK(c, h.Rewards.Badges())
}
