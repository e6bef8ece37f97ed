package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/snorelax/snorelax-be/internal/recorder"
)

func TestAppendRecord(t *testing.T) {
	db, mock := newMockDB(t)

	record := &recorder.TrainingRecord{
		ID:             "rec-1",
		UserID:         "user-1",
		UserMessage:    "I feel stressed",
		BotReply:       "Try a short walk.",
		LanguageCode:   "en",
		ProviderSource: "default",
		CapturedAt:     time.Now(),
	}

	mock.ExpectExec(`INSERT INTO training_records`).
		WithArgs(record.ID, record.UserID, record.UserMessage, record.BotReply,
			record.LanguageCode, record.ProviderSource, record.CapturedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := db.AppendRecord(context.Background(), record); err != nil {
		t.Fatalf("AppendRecord: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMarkRecordProcessed(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "record updated",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectExec(`UPDATE training_records SET processed = true`).
					WithArgs("rec-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "record missing",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectExec(`UPDATE training_records SET processed = true`).
					WithArgs("rec-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setupMock(mock)

			err := db.MarkRecordProcessed(context.Background(), "rec-1")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("MarkRecordProcessed error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestListUnprocessedRecords(t *testing.T) {
	db, mock := newMockDB(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "user_message", "bot_reply", "language_code",
		"provider_source", "captured_at", "processed",
	}).
		AddRow("r1", "user-1", "hello", "hi", "en", "python", now.Add(-time.Hour), false).
		AddRow("r2", "user-2", "can't sleep", "Try a routine.", "en", "cohere", now, false)

	mock.ExpectQuery(`SELECT (.+) FROM training_records`).WithArgs(50).WillReturnRows(rows)

	records, err := db.ListUnprocessedRecords(context.Background(), 50)
	if err != nil {
		t.Fatalf("ListUnprocessedRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != "r1" {
		t.Errorf("oldest record first, got %q", records[0].ID)
	}
}
