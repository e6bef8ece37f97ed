package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/snorelax/snorelax-be/internal/db"
	"github.com/snorelax/snorelax-be/internal/history"
	"github.com/snorelax/snorelax-be/internal/recorder"
)

// Store is an in-memory stand-in for the database, used when the
// service runs without DATABASE_URL (local development and tests).
// Everything is lost on restart.
type Store struct {
	mu         sync.RWMutex
	turns      map[string][]history.Turn
	moods      map[string][]db.Mood
	records    []recorder.TrainingRecord
	maxPerUser int
}

// NewStore creates an in-memory store keeping at most maxPerUser turns
// per user.
func NewStore(maxPerUser int) *Store {
	if maxPerUser <= 0 {
		maxPerUser = 100
	}
	return &Store{
		turns:      make(map[string][]history.Turn),
		moods:      make(map[string][]db.Mood),
		maxPerUser: maxPerUser,
	}
}

// FindTurnsByUser returns the user's turns, oldest first.
func (s *Store) FindTurnsByUser(ctx context.Context, userID string) ([]history.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := make([]history.Turn, len(s.turns[userID]))
	copy(turns, s.turns[userID])
	return turns, nil
}

// AppendTurn stores one completed turn, evicting the oldest past the
// per-user cap.
func (s *Store) AppendTurn(ctx context.Context, turn *history.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if turn.ID == "" {
		turn.ID = uuid.NewString()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}

	turns := append(s.turns[turn.UserID], *turn)
	if len(turns) > s.maxPerUser {
		turns = turns[len(turns)-s.maxPerUser:]
	}
	s.turns[turn.UserID] = turns
	return nil
}

// AppendRecord stores one training record.
func (s *Store) AppendRecord(ctx context.Context, record *recorder.TrainingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, *record)
	return nil
}

// Records returns a copy of all stored training records.
func (s *Store) Records() []recorder.TrainingRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]recorder.TrainingRecord, len(s.records))
	copy(records, s.records)
	return records
}

// SaveMood records one mood entry.
func (s *Store) SaveMood(ctx context.Context, userID, mood string, note *string) (*db.Mood, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := db.Mood{
		ID:        uuid.NewString(),
		UserID:    userID,
		Mood:      mood,
		Note:      note,
		CreatedAt: time.Now(),
	}
	s.moods[userID] = append(s.moods[userID], m)
	return &m, nil
}

// GetRecentMoods returns the user's latest mood entries, newest first.
func (s *Store) GetRecentMoods(ctx context.Context, userID string, limit int) ([]db.Mood, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.moods[userID]
	var moods []db.Mood
	for i := len(all) - 1; i >= 0 && len(moods) < limit; i-- {
		moods = append(moods, all[i])
	}
	return moods, nil
}

// GetUserRole always reports the plain user role; there is no user
// table without a database.
func (s *Store) GetUserRole(ctx context.Context, userID string) (string, error) {
	return "user", nil
}

// SaveGroupMessage stores a community group message.
func (s *Store) SaveGroupMessage(ctx context.Context, groupID, senderID, message string) (*db.GroupMessage, error) {
	m := &db.GroupMessage{
		ID:        uuid.NewString(),
		GroupID:   groupID,
		SenderID:  senderID,
		Message:   message,
		CreatedAt: time.Now(),
	}
	return m, nil
}

// SavePrivateMessage stores a direct message.
func (s *Store) SavePrivateMessage(ctx context.Context, senderID, receiverID, message string) (*db.PrivateMessage, error) {
	m := &db.PrivateMessage{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    message,
		CreatedAt:  time.Now(),
	}
	return m, nil
}
