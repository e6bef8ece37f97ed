package prompt

import (
	"strings"

	"github.com/snorelax/snorelax-be/internal/history"
)

// Builder assembles generation prompts from conversation history.
type Builder struct{}

// NewBuilder creates a new prompt builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Build concatenates prior turns chronologically as "User:"/"Bot:" pairs
// and appends the new message with an open bot slot. No length cap is
// applied here; each provider adapter truncates to its own context budget.
func (b *Builder) Build(context []history.Turn, newMessageEnglish string) string {
	var sb strings.Builder
	sb.Grow(256 + len(context)*128)

	for _, turn := range context {
		sb.WriteString("User: ")
		sb.WriteString(turn.TranslatedMessage)
		sb.WriteString("\nBot: ")
		sb.WriteString(turn.BotReply)
		sb.WriteString("\n")
	}

	sb.WriteString("User: ")
	sb.WriteString(newMessageEnglish)
	sb.WriteString("\nBot:")

	return sb.String()
}

// LastUserMessage extracts the most recent user line from a prompt built
// by Build. Adapters with a single-utterance contract use it as the most
// recency-biased truncation possible.
func LastUserMessage(prompt string) string {
	idx := strings.LastIndex(prompt, "User: ")
	if idx == -1 {
		return strings.TrimSpace(prompt)
	}

	rest := prompt[idx+len("User: "):]
	if end := strings.Index(rest, "\nBot:"); end != -1 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}
