package api

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/snorelax/snorelax-be/internal/db"
)

// MoodStore is the mood persistence contract.
type MoodStore interface {
	SaveMood(ctx context.Context, userID, mood string, note *string) (*db.Mood, error)
	GetRecentMoods(ctx context.Context, userID string, limit int) ([]db.Mood, error)
}

// MoodHandler serves mood check-in endpoints.
type MoodHandler struct {
	store MoodStore
}

// NewMoodHandler creates the mood handler.
func NewMoodHandler(store MoodStore) *MoodHandler {
	return &MoodHandler{store: store}
}

// RegisterRoutes registers the mood routes
func (h *MoodHandler) RegisterRoutes(r *gin.RouterGroup) {
	moods := r.Group("/moods")
	moods.POST("/:userId", h.SaveMood)
	moods.GET("/:userId", h.GetMoods)
}

type moodRequest struct {
	Mood string `json:"mood"`
	Note string `json:"note"`
}

// SaveMood records one self-reported mood entry.
func (h *MoodHandler) SaveMood(c *gin.Context) {
	userID := c.Param("userId")

	var req moodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Mood == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mood is required"})
		return
	}

	var note *string
	if req.Note != "" {
		note = &req.Note
	}

	mood, err := h.store.SaveMood(c.Request.Context(), userID, req.Mood, note)
	if err != nil {
		log.Printf("Failed to save mood: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save mood"})
		return
	}

	c.JSON(http.StatusCreated, mood)
}

// GetMoods returns the user's latest mood entries.
func (h *MoodHandler) GetMoods(c *gin.Context) {
	userID := c.Param("userId")

	limit := 30
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	moods, err := h.store.GetRecentMoods(c.Request.Context(), userID, limit)
	if err != nil {
		log.Printf("Failed to get moods: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve moods"})
		return
	}

	if moods == nil {
		moods = []db.Mood{}
	}
	c.JSON(http.StatusOK, moods)
}
