package store

import (
	"context"

	"attendance-tracker/models"

	"github.com/pkg/errors"
)

// StatusCounts tallies attendance records. Total counts every status, including ones
// outside the conventional set.
type StatusCounts struct {
	Total   int64
	Present int64
	Absent  int64
	Late    int64
	Leave   int64
}

// CountByStatus tallies all attendance records, or only those of userID when it is non-nil.
func (s *Store) CountByStatus(ctx context.Context, userID *uint) (StatusCounts, error) {
	var rows []struct {
		Status string
		N      int64
	}
	tx := s.db.WithContext(ctx).Model(&models.Attendance{}).Select("status, COUNT(*) AS n")
	if userID != nil {
		tx = tx.Where("user_id = ?", *userID)
	}
	if err := tx.Group("status").Scan(&rows).Error; err != nil {
		return StatusCounts{}, errors.Wrap(err, "store: count attendance")
	}

	var c StatusCounts
	for _, r := range rows {
		c.Total += r.N
		switch r.Status {
		case models.StatusPresent:
			c.Present = r.N
		case models.StatusAbsent:
			c.Absent = r.N
		case models.StatusLate:
			c.Late = r.N
		case models.StatusLeave:
			c.Leave = r.N
		}
	}
	return c, nil
}
