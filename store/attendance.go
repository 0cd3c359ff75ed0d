package store

import (
	"context"
	"time"

	"attendance-tracker/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AttendanceFilter narrows ListAttendance. Zero fields do not filter.
type AttendanceFilter struct {
	Date   string // exact YYYY-MM-DD
	UserID *uint
}

// AttendancePatch lists the record fields an update may change. Nil fields are left alone.
type AttendancePatch struct {
	Status       *string
	Notes        *string
	CheckOutTime *time.Time
}

// MarkResult reports what MarkAttendance did.
type MarkResult struct {
	Record     models.Attendance
	CheckedOut bool // true when an open session was closed, false when a new one was opened
}

func (s *Store) ListAttendance(ctx context.Context, f AttendanceFilter) ([]models.Attendance, error) {
	tx := s.db.WithContext(ctx).Joins("User")
	if f.Date != "" {
		tx = tx.Where("attendances.date = ?", f.Date)
	}
	if f.UserID != nil {
		tx = tx.Where("attendances.user_id = ?", *f.UserID)
	}

	var records []models.Attendance
	if err := tx.Order("attendances.id").Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "store: list attendance")
	}
	return records, nil
}

func (s *Store) GetAttendance(ctx context.Context, id uint) (models.Attendance, bool, error) {
	var rec models.Attendance
	found, err := getAttendance(s.db.WithContext(ctx), &rec, id)
	return rec, found, errors.Wrap(err, "store: get attendance")
}

func getAttendance(tx *gorm.DB, rec *models.Attendance, id uint) (bool, error) {
	return first(tx.Joins("User"), rec, "attendances.id = ?", id)
}

// MarkAttendance toggles the session of entry.UserID on entry.Date.
//
// If the user has an open record for that date it is closed with entry.CheckInTime as the
// check-out time. Otherwise entry is inserted as a new open record. found is false when the
// user does not exist.
//
// Only open records are matched, oldest first, rather than the first record of the day.
// A closed session is never touched again: four marks on one day give in, out, in, out,
// and the fourth closes the second session instead of overwriting the first check-out.
//
// The lookup and the write share a transaction, but two concurrent marks for the same
// user and date can still both see no open record and insert two sessions on engines that
// do not serialize the reads.
func (s *Store) MarkAttendance(ctx context.Context, entry models.Attendance) (MarkResult, bool, error) {
	var res MarkResult
	var found bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		var err error
		if found, err = first(tx, &u, entry.UserID); err != nil || !found {
			return err
		}

		var open models.Attendance
		hasOpen, err := first(
			tx.Where("user_id = ? AND date = ? AND check_out_time IS NULL", entry.UserID, entry.Date).Order("id"),
			&open,
		)
		if err != nil {
			return err
		}

		var id uint
		if hasOpen {
			checkOut := entry.CheckInTime
			if err := tx.Model(&open).Update("check_out_time", &checkOut).Error; err != nil {
				return err
			}
			id = open.ID
			res.CheckedOut = true
		} else {
			entry.User = models.User{}
			if err := tx.Omit("User").Create(&entry).Error; err != nil {
				return err
			}
			id = entry.ID
		}
		_, err = getAttendance(tx, &res.Record, id)
		return err
	})
	return res, found, errors.Wrap(err, "store: mark attendance")
}

func (s *Store) UpdateAttendance(ctx context.Context, id uint, patch AttendancePatch) (models.Attendance, bool, error) {
	var rec models.Attendance
	var found bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if found, err = first(tx, &rec, id); err != nil || !found {
			return err
		}

		updates := map[string]interface{}{}
		if patch.Status != nil {
			updates["status"] = *patch.Status
		}
		if patch.Notes != nil {
			updates["notes"] = *patch.Notes
		}
		if patch.CheckOutTime != nil {
			updates["check_out_time"] = patch.CheckOutTime
		}
		if len(updates) > 0 {
			if err := tx.Model(&rec).Updates(updates).Error; err != nil {
				return err
			}
		}
		rec = models.Attendance{}
		_, err = getAttendance(tx, &rec, id)
		return err
	})
	return rec, found, errors.Wrap(err, "store: update attendance")
}

func (s *Store) DeleteAttendance(ctx context.Context, id uint) (bool, error) {
	var found bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec models.Attendance
		var err error
		if found, err = first(tx, &rec, id); err != nil || !found {
			return err
		}
		return tx.Delete(&rec).Error
	})
	return found, errors.Wrap(err, "store: delete attendance")
}
