package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPassword(t *testing.T) {
	var u User
	require.NoError(t, u.SetPassword("s3cret"))

	assert.NotEqual(t, "s3cret", u.Password)
	assert.True(t, u.CheckPassword("s3cret"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestUserLongPassword(t *testing.T) {
	long := strings.Repeat("p", 80)
	var u User
	require.NoError(t, u.SetPassword(long))

	assert.True(t, u.CheckPassword(long))
	assert.False(t, u.CheckPassword(long[:72]), "bytes past 72 must still count")
}

func TestUserResponseHidesPassword(t *testing.T) {
	u := User{
		ID:        7,
		Username:  "alice",
		Email:     "a@x.com",
		Password:  "$2a$10$hash",
		Role:      "user",
		CreatedAt: time.Date(2024, 3, 1, 9, 5, 7, 123, time.UTC),
	}

	body, err := json.Marshal(u.ToResponse())
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":7,"username":"alice","email":"a@x.com","role":"user","created_at":"2024-03-01 09:05:07"}`, string(body))
}

func TestAttendanceResponse(t *testing.T) {
	in := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	rec := Attendance{
		ID:          3,
		UserID:      7,
		User:        User{ID: 7, Username: "alice"},
		CheckInTime: in,
		Status:      StatusPresent,
		Date:        DateOf(in),
	}

	open := rec.ToResponse()
	assert.Equal(t, "alice", open.Username)
	assert.Equal(t, "2024-03-01 08:00:00", open.CheckInTime)
	assert.Nil(t, open.CheckOutTime)
	assert.Equal(t, "2024-03-01", open.Date)

	out := in.Add(8 * time.Hour)
	rec.CheckOutTime = &out
	closed := rec.ToResponse()
	require.NotNil(t, closed.CheckOutTime)
	assert.Equal(t, "2024-03-01 16:00:00", *closed.CheckOutTime)
}

func TestDateOfUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	assert.Equal(t, "2024-02-29", DateOf(time.Date(2024, 3, 1, 2, 0, 0, 0, loc)))
}
