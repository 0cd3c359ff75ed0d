// attendance.go - Attendance endpoints, including the check-in/check-out toggle

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"attendance-tracker/events"
	"attendance-tracker/models"
	"attendance-tracker/store"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type MarkAttendanceInput struct {
	UserID *uint   `json:"user_id" binding:"required"`
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// UpdateAttendanceInput only changes the fields present in the body.
// CheckOutTime is an ISO-8601 timestamp.
type UpdateAttendanceInput struct {
	Status       *string `json:"status"`
	Notes        *string `json:"notes"`
	CheckOutTime *string `json:"check_out_time"`
}

// Accepted check_out_time layouts. Timestamps without an offset are taken as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseISOTime(s string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.Errorf("invalid isoformat string: %q", s)
}

// ListAttendance handles GET /api/attendance?date=YYYY-MM-DD&user_id=N
func (h *Handler) ListAttendance(c *gin.Context) {
	var filter store.AttendanceFilter
	if date := c.Query("date"); date != "" {
		d, err := time.Parse(models.DateLayout, date)
		if err != nil {
			h.fail(c, errors.Wrap(err, "parse date filter"))
			return
		}
		filter.Date = d.Format(models.DateLayout)
	}
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.fail(c, errInvalidUserID)
			return
		}
		userID := uint(id)
		filter.UserID = &userID
	}

	records, err := h.store.ListAttendance(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AttendanceToResponse(records))
}

// MarkAttendance handles POST /api/attendance. The first call of the day checks the
// user in; the next call closes that session; the call after opens a new one.
func (h *Handler) MarkAttendance(c *gin.Context) {
	var input MarkAttendanceInput
	if err := bindJSON(c, &input, errUserIDRequired); err != nil {
		h.fail(c, err)
		return
	}

	now := h.now().UTC()
	entry := models.Attendance{
		UserID:      *input.UserID,
		CheckInTime: now,
		Date:        models.DateOf(now),
		Status:      models.StatusPresent,
	}
	if input.Status != nil && *input.Status != "" {
		entry.Status = *input.Status
	}
	if input.Notes != nil {
		entry.Notes = *input.Notes
	}

	res, found, err := h.store.MarkAttendance(c.Request.Context(), entry)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found {
		h.fail(c, errUserNotFound)
		return
	}

	kind, message := events.CheckIn, "Check-in recorded successfully"
	if res.CheckedOut {
		kind, message = events.CheckOut, "Check-out recorded successfully"
	}
	h.publish(kind, res.Record, now)

	c.JSON(http.StatusCreated, gin.H{"message": message, "record": res.Record.ToResponse()})
}

// publish sends the toggle event. Delivery failures are logged and never fail the request.
func (h *Handler) publish(kind string, rec models.Attendance, at time.Time) {
	err := h.events.Publish(events.Event{
		Kind:     kind,
		RecordID: rec.ID,
		UserID:   rec.UserID,
		Username: rec.User.Username,
		Date:     rec.Date,
		At:       models.FormatTimestamp(at),
	})
	if err != nil {
		h.log.Warn("attendance event not published", err)
	}
}

// GetAttendance handles GET /api/attendance/:id
func (h *Handler) GetAttendance(c *gin.Context) {
	id, err := pathID(c, errAttendanceNotFound)
	if err != nil {
		h.fail(c, err)
		return
	}
	rec, found, err := h.store.GetAttendance(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found {
		h.fail(c, errAttendanceNotFound)
		return
	}
	c.JSON(http.StatusOK, rec.ToResponse())
}

// UpdateAttendance handles PUT /api/attendance/:id
func (h *Handler) UpdateAttendance(c *gin.Context) {
	id, err := pathID(c, errAttendanceNotFound)
	if err != nil {
		h.fail(c, err)
		return
	}
	var input UpdateAttendanceInput
	if err := bindJSON(c, &input, errInvalidBody); err != nil {
		h.fail(c, err)
		return
	}

	patch := store.AttendancePatch{Status: input.Status, Notes: input.Notes}
	if input.CheckOutTime != nil {
		t, err := parseISOTime(*input.CheckOutTime)
		if err != nil {
			h.fail(c, err)
			return
		}
		patch.CheckOutTime = &t
	}

	rec, found, err := h.store.UpdateAttendance(c.Request.Context(), id, patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found {
		h.fail(c, errAttendanceNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendance updated successfully", "record": rec.ToResponse()})
}

// DeleteAttendance handles DELETE /api/attendance/:id
func (h *Handler) DeleteAttendance(c *gin.Context) {
	id, err := pathID(c, errAttendanceNotFound)
	if err != nil {
		h.fail(c, err)
		return
	}
	found, err := h.store.DeleteAttendance(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found {
		h.fail(c, errAttendanceNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendance record deleted successfully"})
}
