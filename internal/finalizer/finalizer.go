package finalizer

import (
	"context"
	"strings"
)

// Translator is the back-translation dependency; internal/translator
// satisfies it with pass-through degrade semantics.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) string
}

// Finalizer cleans a provider reply and renders it in the user's
// language.
type Finalizer struct {
	translator Translator
}

// New creates a finalizer around the given translator.
func New(translator Translator) *Finalizer {
	return &Finalizer{translator: translator}
}

// Role labels some backends prepend to their own reply.
var roleLabels = []string{"Bot:", "Assistant:", "AI:", "Response:"}

// Finalize strips provider boilerplate, keeps only the first paragraph
// (models prompted for concise replies sometimes hallucinate further
// turns) and back-translates to the target language. Translation failure
// passes the English text through.
func (f *Finalizer) Finalize(ctx context.Context, replyEnglish, targetLanguageCode string) string {
	cleaned := Clean(replyEnglish)
	if cleaned == "" {
		return cleaned
	}
	return f.translator.Translate(ctx, cleaned, "en", targetLanguageCode)
}

// Clean applies the provider-artifact stripping without translation.
func Clean(reply string) string {
	text := strings.TrimSpace(reply)

	for _, label := range roleLabels {
		if strings.HasPrefix(text, label) {
			text = strings.TrimSpace(strings.TrimPrefix(text, label))
			break
		}
	}

	// Keep the first coherent paragraph; a later "User:" line means the
	// model kept talking to itself.
	if idx := strings.Index(text, "\n\n"); idx != -1 {
		text = text[:idx]
	}
	if idx := strings.Index(text, "\nUser:"); idx != -1 {
		text = text[:idx]
	}

	return strings.TrimSpace(text)
}
