package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// SeedParams holds the credentials for the initial admin account.
type SeedParams struct {
	Username string
	Email    string
	Password string
}

// Seed creates the initial admin user when seeding is enabled and the
// account does not exist yet.
func Seed(ctx context.Context, db *sql.DB, enabled bool, params SeedParams) error {
	if !enabled {
		return nil
	}

	queries := New(db)

	_, err := queries.GetUserByUsername(ctx, params.Username)
	if err == nil {
		slog.Info("admin user already exists, skipping seed", "username", params.Username)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Username: params.Username,
		Email:    params.Email,
		Password: params.Password,
		Role:     RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created initial admin user", "id", user.ID, "username", user.Username)
	return nil
}
