package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/snorelax/snorelax-be/internal/db"
)

type stubMoodStore struct {
	saved  []db.Mood
	moods  []db.Mood
	getErr error
}

func (s *stubMoodStore) SaveMood(ctx context.Context, userID, mood string, note *string) (*db.Mood, error) {
	m := db.Mood{ID: "m1", UserID: userID, Mood: mood, Note: note, CreatedAt: time.Now()}
	s.saved = append(s.saved, m)
	return &m, nil
}

func (s *stubMoodStore) GetRecentMoods(ctx context.Context, userID string, limit int) ([]db.Mood, error) {
	return s.moods, s.getErr
}

func newMoodRouter(store MoodStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewMoodHandler(store).RegisterRoutes(r.Group("/api"))
	return r
}

func TestSaveMood(t *testing.T) {
	store := &stubMoodStore{}
	r := newMoodRouter(store)

	w := postJSON(t, r, "/api/moods/user-1", map[string]string{
		"mood": "anxious",
		"note": "rough day at work",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if len(store.saved) != 1 {
		t.Fatalf("saved %d moods, want 1", len(store.saved))
	}
	if store.saved[0].UserID != "user-1" || store.saved[0].Mood != "anxious" {
		t.Errorf("saved mood = %+v", store.saved[0])
	}
	if store.saved[0].Note == nil || *store.saved[0].Note != "rough day at work" {
		t.Error("note should be stored")
	}
}

func TestSaveMoodRequiresMood(t *testing.T) {
	r := newMoodRouter(&stubMoodStore{})

	w := postJSON(t, r, "/api/moods/user-1", map[string]string{"note": "no mood given"})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetMoods(t *testing.T) {
	store := &stubMoodStore{moods: []db.Mood{
		{ID: "m1", Mood: "calm"},
		{ID: "m2", Mood: "tired"},
	}}
	r := newMoodRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/moods/user-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var moods []db.Mood
	if err := json.Unmarshal(w.Body.Bytes(), &moods); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(moods) != 2 {
		t.Errorf("got %d moods, want 2", len(moods))
	}
}

func TestGetMoodsEmptyIsArray(t *testing.T) {
	r := newMoodRouter(&stubMoodStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/moods/user-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Body.String(); got != "[]" {
		t.Errorf("body = %q, want empty JSON array", got)
	}
}

func TestGetMoodsStoreError(t *testing.T) {
	r := newMoodRouter(&stubMoodStore{getErr: errors.New("db down")})

	req := httptest.NewRequest(http.MethodGet, "/api/moods/user-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
