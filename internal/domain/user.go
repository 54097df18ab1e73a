// Package domain defines the data structures (database models) used by the
// application.
package domain

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Field length limits enforced before any user row is persisted.
const (
	NameMaxLen     = 20
	UsernameMaxLen = 20
)

// User is the account that owns the watchlist. The password is only ever
// stored as a bcrypt hash.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:20"`
	Username     string    `gorm:"size:20;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:256;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// SetPassword derives a bcrypt hash from the plaintext password and
// overwrites the stored hash.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// ValidatePassword reports whether the plaintext password matches the stored
// hash. Timing behavior is whatever bcrypt.CompareHashAndPassword provides.
func (u *User) ValidatePassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
