// Command admin creates or updates the watchlist's admin account. It
// prompts for a username and a confirmed password and writes straight to
// the configured database.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	gormpersistence "movie-watchlist/internal/infra/persistence/gorm"
	"movie-watchlist/internal/infra/setup"
	"movie-watchlist/internal/service"
)

func main() {
	_ = godotenv.Load()

	db, err := setup.InitDB(os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_NAME"))
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	if err := setup.MigrateDB(db); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	authService := service.NewAuthService(gormpersistence.NewGormUserRepository(db))

	username, password, err := promptCredentials(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	created, err := authService.UpsertAdmin(context.Background(), username, password)
	if err != nil {
		logrus.Fatalf("Failed to save admin user: %v", err)
	}
	if created {
		fmt.Println("Creating user...")
	} else {
		fmt.Println("Updating user...")
	}
	fmt.Println("Done.")
}

// promptCredentials reads a username and a twice-entered hidden password.
func promptCredentials(in *os.File) (string, string, error) {
	reader := bufio.NewReader(in)

	fmt.Print("Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("read username: %w", err)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return "", "", fmt.Errorf("username cannot be empty")
	}

	password, err := readHidden(in, "Password: ")
	if err != nil {
		return "", "", err
	}
	confirm, err := readHidden(in, "Repeat for confirmation: ")
	if err != nil {
		return "", "", err
	}
	if password != confirm {
		return "", "", fmt.Errorf("passwords do not match")
	}
	if password == "" {
		return "", "", fmt.Errorf("password cannot be empty")
	}

	return username, password, nil
}

func readHidden(in *os.File, prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(in.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
