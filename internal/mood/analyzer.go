package mood

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/snorelax/snorelax-be/internal/db"
	"github.com/snorelax/snorelax-be/internal/history"
)

// Recommendation is one suggested wellness activity.
type Recommendation struct {
	Title           string   `json:"title"`
	Type            string   `json:"type"` // "yoga" | "exercise" | "breathing" | "lifestyle"
	DurationMinutes int      `json:"durationMinutes"`
	Intensity       string   `json:"intensity"` // "low" | "moderate" | "high"
	Steps           []string `json:"steps"`
}

// Guide is the mood/habit analysis result.
type Guide struct {
	Summary         string           `json:"summary"`
	Urgent          bool             `json:"urgent"`
	Recommendations []Recommendation `json:"recommendations"`
}

// MoodStore is the slice of the database the analyzer reads.
type MoodStore interface {
	GetRecentMoods(ctx context.Context, userID string, limit int) ([]db.Mood, error)
}

// Generator asks the quality provider for a structured guide. Optional;
// without one the analyzer always uses the local rule-based generator.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Analyzer produces wellness guides from chat history and mood entries.
// Guides are cached per user so the side-effect path can warm them
// without the endpoint re-paying provider latency.
type Analyzer struct {
	history history.Store
	moods   MoodStore
	gen     Generator

	mu    sync.Mutex
	cache map[string]cachedGuide
}

type cachedGuide struct {
	guide Guide
	at    time.Time
}

const cacheTTL = 10 * time.Minute

// NewAnalyzer creates an analyzer. gen may be nil.
func NewAnalyzer(historyStore history.Store, moods MoodStore, gen Generator) *Analyzer {
	return &Analyzer{
		history: historyStore,
		moods:   moods,
		gen:     gen,
		cache:   make(map[string]cachedGuide),
	}
}

type compactTurn struct {
	UserMessage string `json:"userMessage"`
	BotReply    string `json:"botReply"`
}

type compactMood struct {
	Mood string    `json:"mood"`
	Note string    `json:"note,omitempty"`
	Date time.Time `json:"date"`
}

type compactInput struct {
	History []compactTurn `json:"history"`
	Moods   []compactMood `json:"moods"`
}

const guidePreamble = "You are SnoBot, a compassionate mental health assistant. " +
	"Given the user's concise history and mood data, produce a short JSON object with keys: " +
	"summary (one short paragraph), urgent (true/false), recommendations (array of objects with " +
	"title, type(\"yoga\"|\"exercise\"|\"breathing\"|\"lifestyle\"), durationMinutes, " +
	"intensity(\"low\"|\"moderate\"|\"high\"), steps (array of short step instructions)). " +
	"Keep responses safe and do not provide medical diagnoses. User data:\n"

// Guide returns the wellness guide for a user, serving a fresh cached
// copy when one exists.
func (a *Analyzer) Guide(ctx context.Context, userID string) Guide {
	a.mu.Lock()
	if cached, ok := a.cache[userID]; ok && time.Since(cached.at) < cacheTTL {
		a.mu.Unlock()
		return cached.guide
	}
	a.mu.Unlock()

	guide := a.build(ctx, userID)

	a.mu.Lock()
	a.cache[userID] = cachedGuide{guide: guide, at: time.Now()}
	a.mu.Unlock()

	return guide
}

// Analyze refreshes the cached guide for a user. It satisfies the
// side-effect recorder's analyzer contract.
func (a *Analyzer) Analyze(ctx context.Context, userID string) error {
	guide := a.build(ctx, userID)

	a.mu.Lock()
	a.cache[userID] = cachedGuide{guide: guide, at: time.Now()}
	a.mu.Unlock()

	return nil
}

func (a *Analyzer) build(ctx context.Context, userID string) Guide {
	input := a.gather(ctx, userID)

	if a.gen != nil {
		if guide, err := a.askProvider(ctx, input); err == nil {
			return guide
		} else {
			log.Printf("Mood: provider guide failed for user=%s, using local generator: %v", userID, err)
		}
	}

	return localGuide(input)
}

func (a *Analyzer) gather(ctx context.Context, userID string) compactInput {
	var input compactInput

	turns, err := a.history.FindTurnsByUser(ctx, userID)
	if err != nil {
		log.Printf("Mood: history read failed for user=%s: %v", userID, err)
	}
	for _, t := range history.Window(turns, 20) {
		input.History = append(input.History, compactTurn{
			UserMessage: t.TranslatedMessage,
			BotReply:    t.BotReply,
		})
	}

	moods, err := a.moods.GetRecentMoods(ctx, userID, 7)
	if err != nil {
		log.Printf("Mood: mood read failed for user=%s: %v", userID, err)
	}
	for _, m := range moods {
		cm := compactMood{Mood: m.Mood, Date: m.CreatedAt}
		if m.Note != nil {
			cm.Note = *m.Note
		}
		input.Moods = append(input.Moods, cm)
	}

	return input
}

func (a *Analyzer) askProvider(ctx context.Context, input compactInput) (Guide, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return Guide{}, fmt.Errorf("failed to marshal guide input: %w", err)
	}

	text, err := a.gen.Generate(ctx, guidePreamble+string(data)+"\nRespond ONLY with valid JSON.")
	if err != nil {
		return Guide{}, err
	}

	return parseGuide(text)
}

// parseGuide extracts the JSON object from a provider reply that may
// carry leading chatter.
func parseGuide(text string) (Guide, error) {
	start := strings.Index(text, "{")
	if start == -1 {
		return Guide{}, fmt.Errorf("no JSON object in provider reply")
	}

	var guide Guide
	if err := json.Unmarshal([]byte(text[start:]), &guide); err != nil {
		return Guide{}, fmt.Errorf("failed to parse guide JSON: %w", err)
	}
	return guide, nil
}
