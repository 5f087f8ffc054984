package handler

import (
	"ecosync/backend/internal/api/envelope"
	"ecosync/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// ListZones handles GET /api/zones.
func (h *Handler) ListZones(c *gin.Context) {
	rows, err := h.Zones.List(c.Request.Context())
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	envelope.OK(c, rows, envelope.WithCount(len(rows)))
}

// CreateZone handles POST /api/zones.
func (h *Handler) CreateZone(c *gin.Context) {
	var in models.NewZone
	if err := c.ShouldBindJSON(&in); err != nil {
		envelope.Fail(c, errBodyNotObject)
		return
	}
	row, err := h.Zones.Create(c.Request.Context(), in)
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	envelope.Created(c, row, envelope.WithMessage("Zone created successfully"))
}

// UpdateZone handles PUT /api/zones/:id.
func (h *Handler) UpdateZone(c *gin.Context) {
	body, err := bindObject(c)
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	row, err := h.Zones.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	envelope.OK(c, row, envelope.WithMessage("Zone updated successfully"))
}

// DeleteZone handles DELETE /api/zones/:id.
func (h *Handler) DeleteZone(c *gin.Context) {
	if err := h.Zones.Delete(c.Request.Context(), c.Param("id")); err != nil {
		envelope.Fail(c, err)
		return
	}
	envelope.Done(c, "Zone deleted successfully")
}
