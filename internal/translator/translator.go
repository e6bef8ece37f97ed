package translator

import (
	"context"
	"log"
	"strings"
)

const defaultLanguage = "en"

// Backend is the raw translation endpoint contract. pkg/libretranslate
// implements it; tests substitute failing or canned backends.
type Backend interface {
	Detect(ctx context.Context, text string) (string, error)
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Translator wraps a translation backend with the pipeline's degrade
// policy: translation is best-effort enrichment, never a hard dependency.
// Neither method returns an error to the caller.
type Translator struct {
	backend Backend
}

// New creates a translator around the given backend.
func New(backend Backend) *Translator {
	return &Translator{backend: backend}
}

// Detect returns the language code of the text, falling back to "en"
// whenever the backend fails or answers nonsense.
func (t *Translator) Detect(ctx context.Context, text string) string {
	code, err := t.backend.Detect(ctx, text)
	if err != nil {
		log.Printf("Language detection failed, assuming %q: %v", defaultLanguage, err)
		return defaultLanguage
	}

	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return defaultLanguage
	}
	return code
}

// Translate converts text between language codes. On any failure the
// original text passes through untranslated. Translating a language to
// itself is a no-op and skips the backend call entirely.
func (t *Translator) Translate(ctx context.Context, text, source, target string) string {
	if text == "" || source == target || target == "" {
		return text
	}

	translated, err := t.backend.Translate(ctx, text, source, target)
	if err != nil {
		log.Printf("Translation %s->%s failed, passing through: %v", source, target, err)
		return text
	}
	if strings.TrimSpace(translated) == "" {
		return text
	}
	return translated
}
