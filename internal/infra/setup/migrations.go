package setup

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"movie-watchlist/internal/domain"
	"movie-watchlist/internal/repository"
)

// MigrateDB creates or updates the user and movie tables. There is no
// migration history beyond "create if absent".
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Movie{}); err != nil {
		return fmt.Errorf("auto-migrate tables: %w", err)
	}
	logrus.Info("Database migration completed")
	return nil
}

// SeedAdmin creates the initial admin account on first run, but only when
// credentials were provided through configuration. Shipping a hardcoded
// default login would defeat the login gate, so an empty username simply
// skips seeding.
func SeedAdmin(ctx context.Context, users repository.UserRepository, username, password string) error {
	if username == "" || password == "" {
		logrus.Info("No ADMIN_USERNAME/ADMIN_PASSWORD configured; use the admin command to create the account")
		return nil
	}
	if utf8.RuneCountInString(username) > domain.UsernameMaxLen {
		return fmt.Errorf("admin username exceeds %d characters", domain.UsernameMaxLen)
	}

	_, err := users.First(ctx)
	if err == nil {
		// An account already exists; seeding never overwrites it.
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("check for existing user: %w", err)
	}

	user := &domain.User{Name: "Admin", Username: username}
	if err := user.SetPassword(password); err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if err := users.Save(ctx, user); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	logrus.WithField("username", username).Info("Seeded admin user")
	return nil
}
