// analytics.go - Attendance summaries computed at request time

package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SummaryResponse struct {
	TotalUsers     int64   `json:"total_users"`
	TotalPresent   int64   `json:"total_present"`
	TotalAbsent    int64   `json:"total_absent"`
	TotalLate      int64   `json:"total_late"`
	AttendanceRate float64 `json:"attendance_rate"`
}

type UserSummaryResponse struct {
	Username             string  `json:"username"`
	TotalRecords         int64   `json:"total_records"`
	Present              int64   `json:"present"`
	Absent               int64   `json:"absent"`
	Late                 int64   `json:"late"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

// percentage returns part/whole*100 rounded to 2 decimals, or 0 when whole is 0.
func percentage(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*100*100) / 100
}

// Summary handles GET /api/analytics/summary. The rate leaves late and leave out of the
// denominator.
func (h *Handler) Summary(c *gin.Context) {
	ctx := c.Request.Context()
	users, err := h.store.CountUsers(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	counts, err := h.store.CountByStatus(ctx, nil)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{
		TotalUsers:     users,
		TotalPresent:   counts.Present,
		TotalAbsent:    counts.Absent,
		TotalLate:      counts.Late,
		AttendanceRate: percentage(counts.Present, counts.Present+counts.Absent),
	})
}

// UserSummary handles GET /api/analytics/user/:id
func (h *Handler) UserSummary(c *gin.Context) {
	id, err := pathID(c, errUserNotFound)
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	user, found, err := h.store.GetUser(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found {
		h.fail(c, errUserNotFound)
		return
	}
	counts, err := h.store.CountByStatus(ctx, &id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, UserSummaryResponse{
		Username:             user.Username,
		TotalRecords:         counts.Total,
		Present:              counts.Present,
		Absent:               counts.Absent,
		Late:                 counts.Late,
		AttendancePercentage: percentage(counts.Present, counts.Total),
	})
}
