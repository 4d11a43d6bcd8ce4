package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/http/middleware"
)

// BodyError marks a request body that could not be decoded or failed
// validation. It renders as 422.
type BodyError struct {
	Err error
}

func (e *BodyError) Error() string { return fmt.Sprintf("invalid request body: %v", e.Err) }

func (e *BodyError) Unwrap() error { return e.Err }

// abortWith records err for ErrorHandler and stops the chain.
func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler is the single place where errors become HTTP responses.
// Handlers and middleware record failures with c.Error and abort; once the
// chain unwinds, ErrorHandler renders the last recorded error unless a
// response has already been written.
//
// Register it before any middleware that may record errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}
		status, code, msg := classify(last.Err)
		if status < http.StatusInternalServerError {
			middleware.LoggerFrom(c).Debug().Err(last.Err).Int("status", status).Msg("request rejected")
		}
		failWith(c, status, code, msg, last.Err)
	}
}

// classify maps an error to (status, code, message). Application errors are
// checked first, then origin rejection, then body decoding; anything else
// is an opaque 500.
func classify(err error) (int, string, string) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return classifyApp(ae)
	}
	if errors.Is(err, middleware.ErrOriginForbidden) {
		return http.StatusForbidden, ErrCodeForbidden, err.Error()
	}
	var be *BodyError
	if errors.As(err, &be) {
		return http.StatusUnprocessableEntity, ErrCodeUnprocessable, be.Error()
	}
	return http.StatusInternalServerError, ErrCodeInternal, "internal server error"
}

func classifyApp(e *apperr.Error) (int, string, string) {
	switch e.Kind {
	case apperr.KindParse:
		return http.StatusBadRequest, ErrCodeParse, e.Error()
	case apperr.KindMissingParameters:
		return http.StatusBadRequest, ErrCodeMissingParameters, e.Error()
	case apperr.KindQuestionNotFound:
		return http.StatusNotFound, ErrCodeQuestionNotFound, e.Error()
	case apperr.KindDatabaseQuery:
		return http.StatusInternalServerError, ErrCodeDatabaseQuery, "database query failed"
	case apperr.KindExternalAPI:
		return http.StatusBadGateway, ErrCodeExternalAPI, "moderation service unreachable"
	case apperr.KindClient:
		return http.StatusFailedDependency, ErrCodeModerationClient, e.Error()
	case apperr.KindServer:
		return http.StatusServiceUnavailable, ErrCodeModerationServer, e.Error()
	default:
		return http.StatusInternalServerError, ErrCodeInternal, "internal server error"
	}
}
