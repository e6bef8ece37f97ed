package history

import (
	"context"
	"time"
)

// Turn is one user message plus the reply produced for it. A turn is
// immutable once recorded; the store owns it after AppendTurn.
type Turn struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	UserMessage       string    `json:"user_message"`       // original language
	TranslatedMessage string    `json:"translated_message"` // English
	BotReply          string    `json:"bot_reply"`          // English
	FinalReply        string    `json:"final_reply"`        // user language
	LanguageCode      string    `json:"language_code"`
	ProviderSource    string    `json:"provider_source"`
	CreatedAt         time.Time `json:"created_at"`
}

// Store is the history collaborator. Reads are best-effort snapshots;
// stale data is acceptable.
type Store interface {
	FindTurnsByUser(ctx context.Context, userID string) ([]Turn, error)
	AppendTurn(ctx context.Context, turn *Turn) error
}

// Window bounds a conversation context to the most recent n turns,
// preserving chronological order (most recent last).
func Window(turns []Turn, n int) []Turn {
	if n <= 0 || len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}
