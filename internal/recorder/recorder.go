package recorder

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/snorelax/snorelax-be/internal/history"
)

// TrainingRecord is one captured interaction destined for offline model
// improvement. Append-only from this pipeline's side; only the offline
// consumer flips Processed.
type TrainingRecord struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	UserMessage    string    `json:"user_message"`
	BotReply       string    `json:"bot_reply"`
	LanguageCode   string    `json:"language_code"`
	ProviderSource string    `json:"provider_source"`
	CapturedAt     time.Time `json:"captured_at"`
	Processed      bool      `json:"processed"`
}

// CorpusStore is the training corpus collaborator.
type CorpusStore interface {
	AppendRecord(ctx context.Context, record *TrainingRecord) error
}

// Trigger kicks the downstream offline training job. Never awaited.
type Trigger interface {
	TriggerOfflineJob()
}

// Analyzer refreshes the auxiliary mood/habit analysis for a user.
type Analyzer interface {
	Analyze(ctx context.Context, userID string) error
}

// Recorder persists completed turns off the critical path. Every write
// is fire-and-forget: the reply has already been returned to the user,
// so failures here are logged and dropped. Work may be silently lost on
// process crash; this is best-effort capture, not a ledger.
type Recorder struct {
	history         history.Store
	corpus          CorpusStore
	trigger         Trigger  // optional
	analyzer        Analyzer // optional
	qualityProvider string
	timeout         time.Duration

	wg sync.WaitGroup
}

// New creates a recorder. trigger and analyzer may be nil.
func New(historyStore history.Store, corpus CorpusStore, trigger Trigger, analyzer Analyzer, qualityProvider string) *Recorder {
	return &Recorder{
		history:         historyStore,
		corpus:          corpus,
		trigger:         trigger,
		analyzer:        analyzer,
		qualityProvider: qualityProvider,
		timeout:         15 * time.Second,
	}
}

// Record detaches the persistence work for one completed turn. It
// returns immediately; the caller's latency and deadline are unaffected.
// preferQuality is the heuristic's verdict for this turn and, together
// with the quality provider having answered, decides whether the turn is
// worth queueing for offline training.
func (r *Recorder) Record(turn history.Turn, preferQuality bool) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				log.Printf("Recorder: panic recovered: %v", p)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if turn.CreatedAt.IsZero() {
			turn.CreatedAt = time.Now()
		}

		if err := r.history.AppendTurn(ctx, &turn); err != nil {
			log.Printf("Recorder: failed to append turn for user=%s: %v", turn.UserID, err)
		}

		record := &TrainingRecord{
			ID:             uuid.NewString(),
			UserID:         turn.UserID,
			UserMessage:    turn.UserMessage,
			BotReply:       turn.BotReply,
			LanguageCode:   turn.LanguageCode,
			ProviderSource: turn.ProviderSource,
			CapturedAt:     turn.CreatedAt,
		}
		if err := r.corpus.AppendRecord(ctx, record); err != nil {
			log.Printf("Recorder: failed to append training record for user=%s: %v", turn.UserID, err)
		}

		if r.trigger != nil && (preferQuality || turn.ProviderSource == r.qualityProvider) {
			go r.trigger.TriggerOfflineJob()
		}

		if r.analyzer != nil {
			if err := r.analyzer.Analyze(ctx, turn.UserID); err != nil {
				log.Printf("Recorder: mood analysis failed for user=%s: %v", turn.UserID, err)
			}
		}
	}()
}

// Wait blocks until all detached work has finished. Used by tests and
// graceful shutdown; the request path never calls it.
func (r *Recorder) Wait() {
	r.wg.Wait()
}
