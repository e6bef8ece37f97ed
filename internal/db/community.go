package db

import (
	"context"
	"fmt"
	"time"
)

// GroupMessage is one message posted to a community group.
type GroupMessage struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	SenderID  string    `json:"sender_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// PrivateMessage is one direct message between two users.
type PrivateMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// SaveGroupMessage persists a group message and returns the stored row.
func (db *DB) SaveGroupMessage(ctx context.Context, groupID, senderID, message string) (*GroupMessage, error) {
	query := `
		INSERT INTO group_messages (group_id, sender_id, message)
		VALUES ($1, $2, $3)
		RETURNING id, group_id, sender_id, message, created_at
	`

	m := &GroupMessage{}
	err := db.QueryRowContext(ctx, query, groupID, senderID, message).Scan(
		&m.ID, &m.GroupID, &m.SenderID, &m.Message, &m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save group message: %w", err)
	}

	return m, nil
}

// GetGroupMessages returns a group's latest messages, oldest first.
func (db *DB) GetGroupMessages(ctx context.Context, groupID string, limit int) ([]GroupMessage, error) {
	query := `
		SELECT id, group_id, sender_id, message, created_at
		FROM (
			SELECT id, group_id, sender_id, message, created_at
			FROM group_messages
			WHERE group_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC
	`

	rows, err := db.QueryContext(ctx, query, groupID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query group messages: %w", err)
	}
	defer rows.Close()

	var messages []GroupMessage
	for rows.Next() {
		var m GroupMessage
		if err := rows.Scan(&m.ID, &m.GroupID, &m.SenderID, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group message: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group messages: %w", err)
	}

	return messages, nil
}

// SavePrivateMessage persists a direct message and returns the stored row.
func (db *DB) SavePrivateMessage(ctx context.Context, senderID, receiverID, message string) (*PrivateMessage, error) {
	query := `
		INSERT INTO private_messages (sender_id, receiver_id, message)
		VALUES ($1, $2, $3)
		RETURNING id, sender_id, receiver_id, message, created_at
	`

	m := &PrivateMessage{}
	err := db.QueryRowContext(ctx, query, senderID, receiverID, message).Scan(
		&m.ID, &m.SenderID, &m.ReceiverID, &m.Message, &m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save private message: %w", err)
	}

	return m, nil
}
