// handlers.go - Handler construction and shared request helpers

package handlers

import (
	"io"
	"strconv"
	"time"

	"attendance-tracker/events"
	"attendance-tracker/logger"
	"attendance-tracker/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Deps are the collaborators a Handler needs. Publisher, Logger and Clock are optional.
type Deps struct {
	Store     *store.Store
	Publisher events.Publisher
	Logger    *logger.Logger
	JWTSecret string
	JWTExpiry time.Duration
	Clock     func() time.Time
}

// Handler serves the HTTP API. It holds no request state.
type Handler struct {
	store     *store.Store
	events    events.Publisher
	log       *logger.Logger
	jwtSecret string
	jwtExpiry time.Duration
	now       func() time.Time
}

func New(d Deps) *Handler {
	h := &Handler{
		store:     d.Store,
		events:    d.Publisher,
		log:       d.Logger,
		jwtSecret: d.JWTSecret,
		jwtExpiry: d.JWTExpiry,
		now:       d.Clock,
	}
	if h.events == nil {
		h.events = events.NopPublisher{}
	}
	if h.log == nil {
		h.log = logger.New(nil, "", "")
	}
	if h.jwtExpiry == 0 {
		h.jwtExpiry = 72 * time.Hour
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// Register mounts every endpoint on api.
func (h *Handler) Register(api gin.IRoutes) {
	api.GET("/health", Health)  // Liveness check
	api.POST("/login", h.Login) // Issue a login token

	api.GET("/users", h.ListUsers)         // All users
	api.POST("/users", h.CreateUser)       // New user
	api.GET("/users/:id", h.GetUser)       // One user
	api.PUT("/users/:id", h.UpdateUser)    // Partial update
	api.DELETE("/users/:id", h.DeleteUser) // User and their attendance

	api.GET("/attendance", h.ListAttendance)          // Filter by date and user_id
	api.POST("/attendance", h.MarkAttendance)         // Check in or check out
	api.GET("/attendance/:id", h.GetAttendance)       // One record
	api.PUT("/attendance/:id", h.UpdateAttendance)    // Partial update
	api.DELETE("/attendance/:id", h.DeleteAttendance) // Remove one record

	api.GET("/analytics/summary", h.Summary)      // Totals across all users
	api.GET("/analytics/user/:id", h.UserSummary) // Totals for one user
}

// bindJSON decodes the body into dst. Failed binding rules and an empty body map to
// missing; any other decode failure maps to errInvalidBody.
func bindJSON(c *gin.Context, dst interface{}, missing *apiError) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) || errors.Is(err, io.EOF) {
		return missing
	}
	return errInvalidBody
}

// pathID parses the :id parameter. A non-numeric id is reported as notFound, like an
// unknown one.
func pathID(c *gin.Context, notFound *apiError) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, notFound
	}
	return uint(id), nil
}
