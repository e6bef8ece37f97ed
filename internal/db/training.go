package db

import (
	"context"
	"fmt"

	"github.com/snorelax/snorelax-be/internal/recorder"
)

// DB implements the training corpus collaborator.
var _ recorder.CorpusStore = (*DB)(nil)

// AppendRecord appends one training record to the corpus.
func (db *DB) AppendRecord(ctx context.Context, record *recorder.TrainingRecord) error {
	query := `
		INSERT INTO training_records (id, user_id, user_message, bot_reply, language_code, provider_source, captured_at, processed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false)
	`

	_, err := db.ExecContext(ctx, query,
		record.ID, record.UserID, record.UserMessage, record.BotReply,
		record.LanguageCode, record.ProviderSource, record.CapturedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append training record: %w", err)
	}

	return nil
}

// MarkRecordProcessed flips the processed flag. Only the offline
// training consumer calls this; the live pipeline never updates records.
func (db *DB) MarkRecordProcessed(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `UPDATE training_records SET processed = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark record processed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ListUnprocessedRecords returns up to limit records awaiting the
// offline training job, oldest first.
func (db *DB) ListUnprocessedRecords(ctx context.Context, limit int) ([]recorder.TrainingRecord, error) {
	query := `
		SELECT id, user_id, user_message, bot_reply, language_code, provider_source, captured_at, processed
		FROM training_records
		WHERE processed = false
		ORDER BY captured_at ASC
		LIMIT $1
	`

	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query training records: %w", err)
	}
	defer rows.Close()

	var records []recorder.TrainingRecord
	for rows.Next() {
		var r recorder.TrainingRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.UserMessage, &r.BotReply,
			&r.LanguageCode, &r.ProviderSource, &r.CapturedAt, &r.Processed); err != nil {
			return nil, fmt.Errorf("failed to scan training record: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating training records: %w", err)
	}

	return records, nil
}
