// Package envelope renders every API response in one JSON shape:
// {"success": true, "data": ...} on success and {"success": false, "error": ...}
// on failure.
package envelope

import (
	"net/http"

	"ecosync/backend/internal/apperror"

	"github.com/gin-gonic/gin"
)

// Option adds an optional top-level field to a success body.
type Option func(gin.H)

// WithCount adds "count".
func WithCount(n int) Option {
	return func(h gin.H) { h["count"] = n }
}

// WithMessage adds "message".
func WithMessage(msg string) Option {
	return func(h gin.H) { h["message"] = msg }
}

// Success builds a success body. data is always present, null included.
func Success(data any, opts ...Option) gin.H {
	h := gin.H{"success": true, "data": data}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Message builds a success body without data.
func Message(msg string) gin.H {
	return gin.H{"success": true, "message": msg}
}

// Failure builds a failure body.
func Failure(err error) gin.H {
	return gin.H{"success": false, "error": err.Error()}
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// OK writes a 200 success.
func OK(c *gin.Context, data any, opts ...Option) {
	c.JSON(http.StatusOK, Success(data, opts...))
}

// Created writes a 201 success.
func Created(c *gin.Context, data any, opts ...Option) {
	c.JSON(http.StatusCreated, Success(data, opts...))
}

// Done writes a 200 success that carries only a message.
func Done(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Message(msg))
}

// Fail records err on the context for the access log and writes the failure
// body with the status of its kind.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(StatusOf(err), Failure(err))
}
