package handler

import (
	"strconv"

	"ecosync/backend/internal/api/envelope"
	"ecosync/backend/internal/apperror"
	"ecosync/backend/internal/config"

	"github.com/gin-gonic/gin"
)

// AnalyticsOverview handles GET /api/analytics/overview.
func (h *Handler) AnalyticsOverview(c *gin.Context) {
	o, err := h.Analytics.Overview(c.Request.Context())
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	envelope.OK(c, o)
}

// AnalyticsTrends handles GET /api/analytics/trends?days=N.
func (h *Handler) AnalyticsTrends(c *gin.Context) {
	days := config.DefaultTrendWindow
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			envelope.Fail(c, apperror.Validation("days must be a positive integer"))
			return
		}
		days = n
	}

	rows, err := h.Analytics.Trends(c.Request.Context(), days)
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	envelope.OK(c, rows, envelope.WithMessage("Complaints created in the last "+strconv.Itoa(days)+" days"))
}

// AnalyticsPerformance handles GET /api/analytics/performance.
func (h *Handler) AnalyticsPerformance(c *gin.Context) {
	rows, err := h.Analytics.Performance(c.Request.Context())
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	envelope.OK(c, rows, envelope.WithMessage("Performance data"))
}
