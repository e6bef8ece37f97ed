package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TranslatorInterface is the translation dependency for the standalone
// translate endpoint.
type TranslatorInterface interface {
	Detect(ctx context.Context, text string) string
	Translate(ctx context.Context, text, source, target string) string
}

// TranslateHandler exposes translation directly, mirroring the backend
// the pipeline uses internally.
type TranslateHandler struct {
	translator TranslatorInterface
}

// NewTranslateHandler creates the translate handler.
func NewTranslateHandler(tr TranslatorInterface) *TranslateHandler {
	return &TranslateHandler{translator: tr}
}

// RegisterRoutes registers the translate routes
func (h *TranslateHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/translate", h.Translate)
	r.POST("/detect", h.Detect)
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Translate converts text between languages. Source "auto" or empty
// triggers detection first.
func (h *TranslateHandler) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Q) == "" || req.Target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q and target are required"})
		return
	}

	source := req.Source
	if source == "" || source == "auto" {
		source = h.translator.Detect(c.Request.Context(), req.Q)
	}

	translated := h.translator.Translate(c.Request.Context(), req.Q, source, req.Target)
	c.JSON(http.StatusOK, gin.H{
		"translatedText": translated,
		"detectedSource": source,
	})
}

type detectRequest struct {
	Q string `json:"q"`
}

// Detect returns the detected language of the text.
func (h *TranslateHandler) Detect(c *gin.Context) {
	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Q) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"language": h.translator.Detect(c.Request.Context(), req.Q)})
}
