// attendance.go - Defines the Attendance model for the database

package models

import "time"

// Conventional statuses. The column is free text and other values are stored as given.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusLeave   = "leave"
)

const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// Attendance is one check-in/check-out session. A nil CheckOutTime means the session is open.
type Attendance struct {
	ID           uint       `gorm:"primaryKey"`                                                       // Unique ID
	UserID       uint       `gorm:"not null;index:idx_attendance_user_date,priority:1"`               // Foreign key to users table
	User         User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Owning user
	CheckInTime  time.Time  `gorm:"not null"`                                                         // Session start
	CheckOutTime *time.Time // Session end, nil while open
	Status       string     `gorm:"size:20;default:'present'"`                                  // present, absent, late, leave
	Notes        string     `gorm:"size:255"`                                                   // Free text
	Date         string     `gorm:"size:10;not null;index:idx_attendance_user_date,priority:2"` // YYYY-MM-DD, same-day pairing key
}

// AttendanceResponse is the public representation of an Attendance record.
type AttendanceResponse struct {
	ID           uint    `json:"id"`
	UserID       uint    `json:"user_id"`
	Username     string  `json:"username"`
	CheckInTime  string  `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	Status       string  `json:"status"`
	Notes        string  `json:"notes"`
	Date         string  `json:"date"`
}

// ToResponse expects the User association to be loaded for the username.
func (a Attendance) ToResponse() AttendanceResponse {
	resp := AttendanceResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Username:    a.User.Username,
		CheckInTime: FormatTimestamp(a.CheckInTime),
		Status:      a.Status,
		Notes:       a.Notes,
		Date:        a.Date,
	}
	if a.CheckOutTime != nil {
		out := FormatTimestamp(*a.CheckOutTime)
		resp.CheckOutTime = &out
	}
	return resp
}

func AttendanceToResponse(records []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToResponse())
	}
	return out
}

// FormatTimestamp renders t in UTC as "YYYY-MM-DD HH:MM:SS".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// DateOf returns the calendar date of t in UTC as "YYYY-MM-DD".
func DateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
