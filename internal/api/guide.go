package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snorelax/snorelax-be/internal/mood"
)

// GuideHandler serves the AI wellness guide endpoint.
type GuideHandler struct {
	analyzer *mood.Analyzer
}

// NewGuideHandler creates the guide handler.
func NewGuideHandler(analyzer *mood.Analyzer) *GuideHandler {
	return &GuideHandler{analyzer: analyzer}
}

// RegisterRoutes registers the guide routes
func (h *GuideHandler) RegisterRoutes(r *gin.RouterGroup) {
	ai := r.Group("/ai")
	ai.POST("/guide", h.GetGuide)
}

type guideRequest struct {
	UserID string `json:"userId"`
}

// GetGuide builds a wellness guide from the user's history and moods.
// The analyzer always answers, falling back to its local rule-based
// generator when the provider is unavailable.
func (h *GuideHandler) GetGuide(c *gin.Context) {
	var req guideRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	guide := h.analyzer.Guide(c.Request.Context(), req.UserID)
	c.JSON(http.StatusOK, guide)
}
