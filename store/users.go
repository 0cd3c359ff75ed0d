package store

import (
	"context"

	"attendance-tracker/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// UserPatch lists the user fields an update may change. Nil fields are left alone.
type UserPatch struct {
	Username *string
	Email    *string
	Role     *string
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "store: list users")
	}
	return users, nil
}

func (s *Store) GetUser(ctx context.Context, id uint) (models.User, bool, error) {
	var u models.User
	found, err := first(s.db.WithContext(ctx), &u, id)
	return u, found, errors.Wrap(err, "store: get user")
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (models.User, bool, error) {
	var u models.User
	found, err := first(s.db.WithContext(ctx).Where("username = ?", username), &u)
	return u, found, errors.Wrap(err, "store: find user by username")
}

// CreateUser inserts u after checking username then email uniqueness.
// It returns ErrUsernameExists or ErrEmailExists without writing anything on a clash.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", u.Username).Count(&count).Error; err != nil {
			return errors.Wrap(err, "store: check username")
		}
		if count > 0 {
			return ErrUsernameExists
		}
		if err := tx.Model(&models.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
			return errors.Wrap(err, "store: check email")
		}
		if count > 0 {
			return ErrEmailExists
		}
		return errors.Wrap(tx.Create(u).Error, "store: create user")
	})
}

// UpdateUser applies patch to user id. Uniqueness is not re-checked here; a clash is left
// to the unique indexes and comes back as an ordinary error.
func (s *Store) UpdateUser(ctx context.Context, id uint, patch UserPatch) (models.User, bool, error) {
	var u models.User
	var found bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if found, err = first(tx, &u, id); err != nil || !found {
			return err
		}

		updates := map[string]interface{}{}
		if patch.Username != nil {
			updates["username"] = *patch.Username
		}
		if patch.Email != nil {
			updates["email"] = *patch.Email
		}
		if patch.Role != nil {
			updates["role"] = *patch.Role
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&u).Updates(updates).Error; err != nil {
			return err
		}
		_, err = first(tx, &u, id)
		return err
	})
	return u, found, errors.Wrap(err, "store: update user")
}

// DeleteUser removes user id together with all of its attendance records.
func (s *Store) DeleteUser(ctx context.Context, id uint) (bool, error) {
	var found bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		var err error
		if found, err = first(tx, &u, id); err != nil || !found {
			return err
		}
		// The FK cascades too, but not every engine enforces it (SQLite without the pragma).
		if err := tx.Where("user_id = ?", id).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		return tx.Delete(&u).Error
	})
	return found, errors.Wrap(err, "store: delete user")
}

// CountUsers returns the number of users.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, errors.Wrap(err, "store: count users")
}
