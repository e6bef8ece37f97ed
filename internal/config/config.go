package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/snorelax/snorelax-be/internal/provider"
)

// Provider names used across config, the cascade and recorded turns.
const (
	ProviderPython      = "python"
	ProviderCohere      = "cohere"
	ProviderHuggingFace = "huggingface"
)

// QualityProvider is the provider whose replies are treated as
// training-grade.
const QualityProvider = ProviderCohere

// Config carries all runtime settings, read once at startup.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	CohereAPIKey         string
	HFAPIKey             string
	LibreTranslateURL    string
	LibreTranslateAPIKey string

	// PythonScript is the path of the local responder script; empty
	// disables the subprocess provider.
	PythonScript string

	// TrainingScript is the offline training entrypoint; empty disables
	// the training trigger.
	TrainingScript string

	DefaultReply   string
	HistoryWindow  int
	OverallTimeout time.Duration

	// AllowedOrigins restricts CORS; empty allows every origin.
	AllowedOrigins []string
}

// Load reads configuration from the environment.
func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),

		CohereAPIKey:         getEnv("COHERE_API_KEY", ""),
		HFAPIKey:             getEnv("HF_API_KEY", ""),
		LibreTranslateURL:    getEnv("LIBRETRANSLATE_URL", ""),
		LibreTranslateAPIKey: getEnv("LIBRETRANSLATE_API_KEY", ""),

		PythonScript:   getEnv("PYTHON_SCRIPT", ""),
		TrainingScript: getEnv("TRAINING_SCRIPT", ""),

		DefaultReply:   getEnv("DEFAULT_REPLY", ""),
		HistoryWindow:  getEnvInt("HISTORY_WINDOW", 10),
		OverallTimeout: getEnvDuration("OVERALL_TIMEOUT", 30*time.Second),

		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
	}
}

// Providers builds the cascade's provider table. A provider missing its
// key or script stays in the table disabled, so the cascade order is
// stable across deployments.
func (c Config) Providers() []provider.Spec {
	return []provider.Spec{
		{
			Name:              ProviderPython,
			Kind:              provider.KindSubprocess,
			Priority:          1,
			PerAttemptTimeout: 3 * time.Second,
			Enabled:           c.PythonScript != "",
		},
		{
			Name:              ProviderCohere,
			Kind:              provider.KindHostedAPI,
			Priority:          2,
			PerAttemptTimeout: 10 * time.Second,
			Enabled:           c.CohereAPIKey != "",
			Quality:           true,
		},
		{
			Name:              ProviderHuggingFace,
			Kind:              provider.KindHostedAPI,
			Priority:          3,
			PerAttemptTimeout: 10 * time.Second,
			Enabled:           c.HFAPIKey != "",
		},
	}
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
