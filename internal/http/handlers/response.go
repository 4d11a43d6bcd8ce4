// Package handlers provides the HTTP handlers of the public API.
//
// This file defines the response helpers shared by every endpoint. Error
// responses always use ErrorResponse; fail() logs server-side failures with
// the request-scoped logger before writing.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"question_not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"question not found"`
}

// fail aborts the request with a structured error. Statuses >= 500 are
// logged at error level.
func fail(c *gin.Context, status int, code, msg string) { failWith(c, status, code, msg, nil) }

// failWith is fail with the underlying cause attached to the log line.
func failWith(c *gin.Context, status int, code, msg string, cause error) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Err(cause).
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// text writes a plain-text confirmation.
func text(c *gin.Context, msg string) {
	c.String(http.StatusOK, msg)
}
