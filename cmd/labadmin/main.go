// Command labadmin creates or resets the administrator account directly
// against the database. It exists for recovery: when the web login is
// unusable (lost password, disabled account), an operator with database
// access can get back in without touching SQL by hand.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/rz2606/lab-website-sub002/internal/common"
	"github.com/rz2606/lab-website-sub002/internal/server/auth"
	"github.com/rz2606/lab-website-sub002/internal/server/config"
	"github.com/rz2606/lab-website-sub002/internal/server/models"
	"github.com/rz2606/lab-website-sub002/internal/server/repositories/repomanager"
)

const pingTimeout = 5 * time.Second

func main() {
	_ = godotenv.Load()

	dsn := flag.String("d", os.Getenv(config.EnvDatabaseDSN), "PostgreSQL DSN")
	username := flag.String("u", "admin", "admin username")
	email := flag.String("e", "", "admin email (required when creating)")
	flag.Parse()

	if strings.TrimSpace(*dsn) == "" {
		log.Fatal("database DSN required: pass -d or set DATABASE_DSN")
	}
	if strings.TrimSpace(*username) == "" {
		log.Fatal("username must not be empty")
	}

	password, err := promptPassword()
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatalf("db ping error: %v", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	repo := repomanager.NewPostgresRepositoryManager().Users(db)

	existing, err := repo.GetByUsername(ctx, *username)
	switch {
	case err == nil:
		// Reset path: new password, and make sure the account can log in.
		if !existing.IsAdmin() {
			fmt.Printf("promoting %q to admin\n", existing.Username)
		}
		existing.Role = models.RoleAdmin
		existing.IsActive = true
		if err := repo.Update(ctx, existing); err != nil {
			log.Fatalf("update account: %v", err)
		}
		if err := repo.UpdatePassword(ctx, existing.ID, hash); err != nil {
			log.Fatalf("reset password: %v", err)
		}
		fmt.Printf("password reset for %q\n", existing.Username)

	case errors.Is(err, common.ErrNotFound):
		if strings.TrimSpace(*email) == "" {
			log.Fatal("email required (-e) when creating a new admin")
		}
		user := &models.User{
			Username:     strings.TrimSpace(*username),
			Email:        strings.TrimSpace(*email),
			PasswordHash: hash,
			Role:         models.RoleAdmin,
			Name:         strings.TrimSpace(*username),
			IsActive:     true,
		}
		user, err := repo.Create(ctx, user)
		if err != nil {
			log.Fatalf("create admin: %v", err)
		}
		fmt.Printf("admin %q created (id %d)\n", user.Username, user.ID)

	default:
		log.Fatalf("lookup error: %v", err)
	}
}

// promptPassword reads the password twice without echo and requires the two
// entries to match.
func promptPassword() (string, error) {
	fmt.Print("Password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Print("Repeat password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	if len(first) < 8 {
		return "", errors.New("password must be at least 8 characters")
	}

	return string(first), nil
}
