package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		part, whole int64
		want        float64
	}{
		{0, 0, 0},
		{3, 0, 0},
		{1, 1, 100},
		{1, 2, 50},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{0, 5, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, percentage(tt.part, tt.whole), "%d/%d", tt.part, tt.whole)
	}
}

// mark checks a user in with status on the clock's current day, then moves to the next day
func (e *testEnv) mark(t *testing.T, userID uint, status string) {
	t.Helper()
	w := e.do("POST", "/api/attendance", map[string]interface{}{"user_id": userID, "status": status})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	e.clock.Advance(24 * time.Hour)
}

func TestSummary(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do("GET", "/api/analytics/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_users":0,"total_present":0,"total_absent":0,"total_late":0,"attendance_rate":0}`, w.Body.String())

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	env.mark(t, alice, "present")
	env.mark(t, alice, "present")
	env.mark(t, alice, "late")
	env.mark(t, bob, "absent")
	env.mark(t, bob, "leave")

	var got SummaryResponse
	decode(t, env.do("GET", "/api/analytics/summary", nil), &got)
	assert.Equal(t, SummaryResponse{
		TotalUsers:     2,
		TotalPresent:   2,
		TotalAbsent:    1,
		TotalLate:      1,
		AttendanceRate: 66.67,
	}, got)
}

func TestUserSummary(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createUser(t, "alice")
	path := fmt.Sprintf("/api/analytics/user/%d", alice)

	var empty UserSummaryResponse
	decode(t, env.do("GET", path, nil), &empty)
	assert.Equal(t, UserSummaryResponse{Username: "alice"}, empty)

	env.mark(t, alice, "present")
	env.mark(t, alice, "absent")
	env.mark(t, alice, "late")

	var got UserSummaryResponse
	decode(t, env.do("GET", path, nil), &got)
	assert.Equal(t, UserSummaryResponse{
		Username:             "alice",
		TotalRecords:         3,
		Present:              1,
		Absent:               1,
		Late:                 1,
		AttendancePercentage: 33.33,
	}, got)

	w := env.do("GET", "/api/analytics/user/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", errorOf(t, w))
}

// The check-in/check-out walk-through from a fresh database.
func TestAttendanceWalkthrough(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do("POST", "/api/users", map[string]string{"username": "alice", "email": "a@x.com", "password": "p"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do("POST", "/api/attendance", map[string]int{"user_id": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Check-in recorded successfully")

	w = env.do("POST", "/api/attendance", map[string]int{"user_id": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Check-out recorded successfully")

	var got UserSummaryResponse
	decode(t, env.do("GET", "/api/analytics/user/1", nil), &got)
	assert.Equal(t, int64(1), got.TotalRecords)
	assert.Equal(t, int64(1), got.Present)
	assert.Equal(t, 100.0, got.AttendancePercentage)
}
