package api

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/snorelax/snorelax-be/internal/chat"
	"github.com/snorelax/snorelax-be/internal/history"
	"github.com/snorelax/snorelax-be/internal/language"
)

// EngineInterface is the reply pipeline contract the handler depends on.
type EngineInterface interface {
	ProcessMessage(ctx context.Context, req chat.Request) chat.Response
}

// RoleStore looks up the role echoed back in chatbot responses.
type RoleStore interface {
	GetUserRole(ctx context.Context, userID string) (string, error)
}

// ChatbotHandler serves the main conversational endpoint.
type ChatbotHandler struct {
	engine      EngineInterface
	roles       RoleStore
	turns       history.Store
	langManager *language.Manager
}

// NewChatbotHandler creates the chatbot handler. roles may be nil when
// the service runs without a user table.
func NewChatbotHandler(engine EngineInterface, roles RoleStore, turns history.Store, lm *language.Manager) *ChatbotHandler {
	return &ChatbotHandler{engine: engine, roles: roles, turns: turns, langManager: lm}
}

// RegisterRoutes registers the chatbot routes
func (h *ChatbotHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/chatbot", h.HandleMessage)
	r.GET("/history", h.GetHistory)
	r.GET("/languages", h.ListLanguages)
}

type chatbotRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
	Lang    string `json:"lang"`
}

type chatbotResponse struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
	Source string `json:"source"`
	Role   string `json:"role"`
	Lang   string `json:"lang"`
}

// HandleMessage runs one message through the reply pipeline. The
// endpoint never returns a provider error to the client; the pipeline
// itself degrades to a default reply.
func (h *ChatbotHandler) HandleMessage(c *gin.Context) {
	var req chatbotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	// An authenticated identity always wins over the body field.
	if id, ok := c.Get("user_id"); ok {
		req.UserID = id.(string)
	}

	resp := h.engine.ProcessMessage(c.Request.Context(), chat.Request{
		UserID:   req.UserID,
		Message:  req.Message,
		Language: req.Lang,
	})

	role := "user"
	if h.roles != nil {
		if r, err := h.roles.GetUserRole(c.Request.Context(), req.UserID); err == nil && r != "" {
			role = r
		} else if err != nil {
			log.Printf("Chatbot: role lookup failed for user=%s: %v", req.UserID, err)
		}
	}

	c.JSON(http.StatusOK, chatbotResponse{
		Sender: "bot",
		Text:   resp.DisplayText,
		Source: resp.ProviderSource,
		Role:   role,
		Lang:   resp.LanguageCode,
	})
}

type historyEntry struct {
	UserMessage string `json:"userMessage"`
	BotReply    string `json:"botReply"`
}

// GetHistory returns a user's past turns, oldest first, in the compact
// shape chat clients render.
func (h *ChatbotHandler) GetHistory(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	turns, err := h.turns.FindTurnsByUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Failed to get chat history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}

	entries := make([]historyEntry, 0, len(turns))
	for _, t := range turns {
		entries = append(entries, historyEntry{
			UserMessage: t.UserMessage,
			BotReply:    t.FinalReply,
		})
	}
	c.JSON(http.StatusOK, entries)
}

// ListLanguages returns the stock supported languages.
func (h *ChatbotHandler) ListLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": h.langManager.GetSupportedLanguages()})
}
