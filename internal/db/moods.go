package db

import (
	"context"
	"fmt"
)

// SaveMood records one self-reported mood entry.
func (db *DB) SaveMood(ctx context.Context, userID, mood string, note *string) (*Mood, error) {
	query := `
		INSERT INTO moods (user_id, mood, note)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, mood, note, created_at
	`

	m := &Mood{}
	err := db.QueryRowContext(ctx, query, userID, mood, note).Scan(
		&m.ID, &m.UserID, &m.Mood, &m.Note, &m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save mood: %w", err)
	}

	return m, nil
}

// GetRecentMoods returns the user's latest mood entries, newest first.
func (db *DB) GetRecentMoods(ctx context.Context, userID string, limit int) ([]Mood, error) {
	query := `
		SELECT id, user_id, mood, note, created_at
		FROM moods
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query moods: %w", err)
	}
	defer rows.Close()

	var moods []Mood
	for rows.Next() {
		var m Mood
		if err := rows.Scan(&m.ID, &m.UserID, &m.Mood, &m.Note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mood: %w", err)
		}
		moods = append(moods, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating moods: %w", err)
	}

	return moods, nil
}
