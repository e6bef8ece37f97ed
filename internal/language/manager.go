package language

import (
	"strings"
	"sync"
)

// DefaultLanguage is the pipeline's working language; prompts and
// provider replies are always English internally.
const DefaultLanguage = "en"

// CodeAuto asks the pipeline to detect the language of the message.
const CodeAuto = "auto"

// Info describes one supported language.
type Info struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}

// ValidationResult represents the result of language validation
type ValidationResult struct {
	Code         string `json:"code"`
	NeedsDetect  bool   `json:"needs_detect"`
	UsedFallback bool   `json:"used_fallback"`
}

// Manager handles language support and validation
type Manager struct {
	languages map[string]Info
	mu        sync.RWMutex
}

// NewManager creates a manager seeded with the stock languages.
func NewManager() *Manager {
	return &Manager{
		languages: map[string]Info{
			"en": {Code: "en", Name: "English", NativeName: "English"},
			"es": {Code: "es", Name: "Spanish", NativeName: "Español"},
			"fr": {Code: "fr", Name: "French", NativeName: "Français"},
			"hi": {Code: "hi", Name: "Hindi", NativeName: "हिन्दी"},
		},
	}
}

// IsSupported checks if a language code is supported
func (m *Manager) IsSupported(code string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.languages[code]
	return exists
}

// Validate normalizes a requested language code. Empty and "auto"
// request detection; unsupported codes fall back to the default.
func (m *Manager) Validate(code string) ValidationResult {
	code = strings.ToLower(strings.TrimSpace(code))

	if code == "" || code == CodeAuto {
		return ValidationResult{Code: CodeAuto, NeedsDetect: true}
	}

	if m.IsSupported(code) {
		return ValidationResult{Code: code}
	}

	return ValidationResult{Code: DefaultLanguage, UsedFallback: true}
}

// GetSupportedLanguages returns all supported languages
func (m *Manager) GetSupportedLanguages() []Info {
	m.mu.RLock()
	defer m.mu.RUnlock()

	languages := make([]Info, 0, len(m.languages))
	for _, lang := range m.languages {
		languages = append(languages, lang)
	}
	return languages
}

// AddLanguage registers an additional language
func (m *Manager) AddLanguage(info Info) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.languages[info.Code] = info
}
