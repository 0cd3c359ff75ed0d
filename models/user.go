// user.go - Defines the User model for the database

package models

import (
	"crypto/sha256"
	"encoding/base64"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultRole is given to users created without a role.
const DefaultRole = "user"

// User is an employee account. Deleting a user cascades to its attendance records.
type User struct {
	ID        uint      `gorm:"primaryKey"`                    // Unique user ID (primary key)
	Username  string    `gorm:"size:80;uniqueIndex;not null"`  // Login name (unique)
	Email     string    `gorm:"size:120;uniqueIndex;not null"` // Email (unique)
	Password  string    `gorm:"size:255;not null"`             // bcrypt hash, never the plaintext
	Role      string    `gorm:"size:20;default:'user'"`        // admin, user, manager, ...
	CreatedAt time.Time `gorm:"<-:create"`                     // Set once on insert
}

// passwordDigest maps pwd to a fixed 44-byte input so passwords longer than bcrypt's
// 72-byte limit are accepted and every byte of them counts.
func passwordDigest(pwd string) []byte {
	sum := sha256.Sum256([]byte(pwd))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// SetPassword replaces the stored hash with a bcrypt hash of pwd.
func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword(passwordDigest(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether pwd matches the stored hash.
func (u *User) CheckPassword(pwd string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), passwordDigest(pwd)) == nil
}

// UserResponse is the public representation of a User. It never carries the hash.
type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func (u User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: FormatTimestamp(u.CreatedAt),
	}
}

// UsersToResponse maps a slice of users to their public representation.
func UsersToResponse(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	return out
}
