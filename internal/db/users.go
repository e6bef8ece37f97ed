package db

import (
	"context"
	"database/sql"
	"fmt"
)

// GetUserRole looks up a user's role for the response shape. Identity
// management itself lives outside this service.
func (db *DB) GetUserRole(ctx context.Context, userID string) (string, error) {
	query := `SELECT role FROM users WHERE id = $1`

	var role string
	err := db.QueryRowContext(ctx, query, userID).Scan(&role)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user role: %w", err)
	}

	return role, nil
}

// GetUserLanguage returns a user's preferred language code.
func (db *DB) GetUserLanguage(ctx context.Context, userID string) (string, error) {
	query := `SELECT preferred_language FROM users WHERE id = $1`

	var language string
	err := db.QueryRowContext(ctx, query, userID).Scan(&language)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user language: %w", err)
	}

	return language, nil
}
