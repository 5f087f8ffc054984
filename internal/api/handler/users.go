package handler

import (
	"ecosync/backend/internal/api/envelope"

	"github.com/gin-gonic/gin"
)

// GetUser handles GET /api/users/:id.
func (h *Handler) GetUser(c *gin.Context) {
	row, err := h.Profiles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	envelope.OK(c, row)
}

// UpdateUser handles PUT /api/users/:id. Only profile fields are written.
func (h *Handler) UpdateUser(c *gin.Context) {
	body, err := bindObject(c)
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	row, err := h.Profiles.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	envelope.OK(c, row, envelope.WithMessage("Profile updated successfully"))
}

// ListStaff handles GET /api/users/staff.
func (h *Handler) ListStaff(c *gin.Context) {
	rows, err := h.Profiles.Staff(c.Request.Context())
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	envelope.OK(c, rows, envelope.WithCount(len(rows)))
}
