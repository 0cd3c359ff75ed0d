// errors.go - Maps handler failures to HTTP status codes and {"error": ...} bodies

package handlers

import (
	"net/http"

	"attendance-tracker/middleware"
	"attendance-tracker/store"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// apiError is a failure with a client-facing status and message.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string { return e.message }

var (
	errMissingFields      = &apiError{http.StatusBadRequest, "Missing required fields"}
	errUserIDRequired     = &apiError{http.StatusBadRequest, "user_id is required"}
	errInvalidBody        = &apiError{http.StatusBadRequest, "Invalid request body"}
	errInvalidUserID      = &apiError{http.StatusBadRequest, "user_id must be an integer"}
	errUserNotFound       = &apiError{http.StatusNotFound, "User not found"}
	errAttendanceNotFound = &apiError{http.StatusNotFound, "Attendance record not found"}
	errInvalidCredentials = &apiError{http.StatusUnauthorized, "Invalid credentials"}
	errInternal           = &apiError{http.StatusInternalServerError, "Internal server error"}
)

// fail writes err as a JSON error response. Anything that is not a known client error
// is logged with the request details and answered with a generic 500.
func (h *Handler) fail(c *gin.Context, err error) {
	var apiErr *apiError
	switch {
	case errors.As(err, &apiErr):
	case errors.Is(err, store.ErrUsernameExists), errors.Is(err, store.ErrEmailExists):
		apiErr = &apiError{http.StatusBadRequest, errors.Cause(err).Error()}
	default:
		h.log.Error("request failed", err, map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(middleware.RequestIDKey),
		})
		apiErr = errInternal
	}
	c.JSON(apiErr.status, gin.H{"error": apiErr.message})
}

// Recovered answers a request whose handler panicked, for use with gin.CustomRecovery.
func (h *Handler) Recovered(c *gin.Context, recovered interface{}) {
	h.fail(c, errors.Errorf("panic: %v", recovered))
	c.Abort()
}
