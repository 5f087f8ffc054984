package handler

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"

	"ecosync/backend/internal/api/envelope"
	"ecosync/backend/internal/apperror"
	"ecosync/backend/internal/complaint"
	"ecosync/backend/internal/models"
	"ecosync/backend/internal/query"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ListComplaints handles GET /api/complaints.
func (h *Handler) ListComplaints(c *gin.Context) {
	params, err := query.ParseList(c.Request.URL.Query(), complaint.ListFields)
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	rows, err := h.Complaints.List(c.Request.Context(), params)
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	envelope.OK(c, rows, envelope.WithCount(len(rows)))
}

// CreateComplaint handles POST /api/complaints.
func (h *Handler) CreateComplaint(c *gin.Context) {
	var in models.NewComplaint
	if err := c.ShouldBindJSON(&in); err != nil {
		envelope.Fail(c, complaintBindError(err))
		return
	}

	row, err := h.Complaints.Create(c.Request.Context(), in)
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	envelope.Created(c, row, envelope.WithMessage("Complaint created successfully"))
}

// complaintBindError turns a create-body binding failure into the message the
// client sees. gin decodes JSON bodies with encoding/json.
func complaintBindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) || errors.Is(err, io.EOF) {
		return apperror.Validation("title and description are required")
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperror.Validation("%s must be %s", typeErr.Field, jsonKind(typeErr.Type))
	}
	return errBodyNotObject
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int32, reflect.Int64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	}
	return "a " + t.Kind().String()
}

// GetComplaint handles GET /api/complaints/:id.
func (h *Handler) GetComplaint(c *gin.Context) {
	row, err := h.Complaints.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	envelope.OK(c, row)
}

// UpdateComplaint handles PUT /api/complaints/:id.
func (h *Handler) UpdateComplaint(c *gin.Context) {
	body, err := bindObject(c)
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	row, err := h.Complaints.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	envelope.OK(c, row, envelope.WithMessage("Complaint updated successfully"))
}

// DeleteComplaint handles DELETE /api/complaints/:id.
func (h *Handler) DeleteComplaint(c *gin.Context) {
	if err := h.Complaints.Delete(c.Request.Context(), c.Param("id")); err != nil {
		envelope.Fail(c, err)
		return
	}
	envelope.Done(c, "Complaint deleted successfully")
}

// ComplaintStats handles GET /api/complaints/stats.
func (h *Handler) ComplaintStats(c *gin.Context) {
	stats, err := h.Complaints.Stats(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	envelope.OK(c, stats)
}
