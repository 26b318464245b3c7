package seeder

import (
	"context"
	"fmt"
	"os"
	"strings"

	"skillswap/internal/database"

	"golang.org/x/crypto/bcrypt"
)

// AdminSeeder provisions the bootstrap admin account. Email and password come
// from ADMIN_EMAIL and ADMIN_PASSWORD; without a password the seeder does
// nothing so production never ships a default credential.
type AdminSeeder struct{}

func (AdminSeeder) Name() string { return "admin" }

func (AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := strings.TrimSpace(os.Getenv("ADMIN_PASSWORD"))
	if email == "" {
		email = "admin@skillswap.com"
	}
	if password == "" {
		return nil
	}

	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "profiles", "id", "name", "is_admin"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (email) DO NOTHING`,
		email, string(hash),
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO profiles (id, name, is_public, is_admin)
		 SELECT u.id, 'Platform Admin', false, true FROM users u
		 WHERE u.email = $1
		 ON CONFLICT (id) DO UPDATE SET is_admin = true`,
		email,
	)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
