package db

import (
	"context"
	"fmt"

	"github.com/snorelax/snorelax-be/internal/history"
)

// DB implements the history store collaborator.
var _ history.Store = (*DB)(nil)

// AppendTurn persists one completed conversation turn.
func (db *DB) AppendTurn(ctx context.Context, turn *history.Turn) error {
	query := `
		INSERT INTO turns (user_id, user_message, translated_message, bot_reply, final_reply, language_code, provider_source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := db.QueryRowContext(ctx, query,
		turn.UserID, turn.UserMessage, turn.TranslatedMessage, turn.BotReply,
		turn.FinalReply, turn.LanguageCode, turn.ProviderSource, turn.CreatedAt,
	).Scan(&turn.ID)
	if err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}

	return nil
}

// FindTurnsByUser returns all turns for a user, oldest first.
func (db *DB) FindTurnsByUser(ctx context.Context, userID string) ([]history.Turn, error) {
	query := `
		SELECT id, user_id, user_message, translated_message, bot_reply, final_reply, language_code, provider_source, created_at
		FROM turns
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []history.Turn
	for rows.Next() {
		var t history.Turn
		if err := rows.Scan(&t.ID, &t.UserID, &t.UserMessage, &t.TranslatedMessage,
			&t.BotReply, &t.FinalReply, &t.LanguageCode, &t.ProviderSource, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating turns: %w", err)
	}

	return turns, nil
}
