package chat

import (
	"context"
	"log"
	"time"

	"github.com/snorelax/snorelax-be/internal/cascade"
	"github.com/snorelax/snorelax-be/internal/fallback"
	"github.com/snorelax/snorelax-be/internal/history"
	"github.com/snorelax/snorelax-be/internal/intent"
	"github.com/snorelax/snorelax-be/internal/language"
	"github.com/snorelax/snorelax-be/internal/privacy"
)

// Request contains all data needed to process one user message.
type Request struct {
	UserID   string
	Message  string
	Language string
}

// Response is the finalized reply for one message.
type Response struct {
	DisplayText    string
	ProviderSource string
	LanguageCode   string
}

// Interfaces for dependencies
type TranslatorInterface interface {
	Detect(ctx context.Context, text string) string
	Translate(ctx context.Context, text, source, target string) string
}

type PromptInterface interface {
	Build(context []history.Turn, newMessageEnglish string) string
}

type IntentInterface interface {
	Classify(translatedMessage string) intent.Result
}

type CascadeInterface interface {
	Resolve(ctx context.Context, prompt string, pref intent.Result) (string, string)
}

type FinalizerInterface interface {
	Finalize(ctx context.Context, replyEnglish, targetLanguageCode string) string
}

type RecorderInterface interface {
	Record(turn history.Turn, preferQuality bool)
}

type LanguageInterface interface {
	Validate(code string) language.ValidationResult
}

// Engine runs the reply pipeline for one message: language resolution,
// inbound translation, prompt assembly, the provider cascade, reply
// finalization and detached side-effect recording.
type Engine struct {
	translator     TranslatorInterface
	historyStore   history.Store
	promptBuilder  PromptInterface
	heuristic      IntentInterface
	cascade        CascadeInterface
	finalizer      FinalizerInterface
	recorder       RecorderInterface
	langManager    LanguageInterface
	historyWindow  int
	overallTimeout time.Duration
}

// NewEngine creates the transport-agnostic reply engine. Non-positive
// historyWindow and overallTimeout values get sensible defaults.
func NewEngine(
	tr TranslatorInterface,
	store history.Store,
	pb PromptInterface,
	h IntentInterface,
	casc CascadeInterface,
	fin FinalizerInterface,
	rec RecorderInterface,
	lm LanguageInterface,
	historyWindow int,
	overallTimeout time.Duration,
) *Engine {
	if historyWindow <= 0 {
		historyWindow = 10
	}
	if overallTimeout <= 0 {
		overallTimeout = 30 * time.Second
	}
	return &Engine{
		translator:     tr,
		historyStore:   store,
		promptBuilder:  pb,
		heuristic:      h,
		cascade:        casc,
		finalizer:      fin,
		recorder:       rec,
		langManager:    lm,
		historyWindow:  historyWindow,
		overallTimeout: overallTimeout,
	}
}

// ProcessMessage runs the full pipeline and always returns a displayable
// reply. A panic anywhere in the pipeline degrades to a localized
// apology instead of crashing the transport.
func (e *Engine) ProcessMessage(ctx context.Context, req Request) (resp Response) {
	lang := language.DefaultLanguage

	defer func() {
		if p := recover(); p != nil {
			log.Printf("Engine: panic recovered for user=%s: %v", req.UserID, p)
			resp = Response{
				DisplayText:    fallback.GetApology(lang),
				ProviderSource: cascade.DefaultSource,
				LanguageCode:   lang,
			}
		}
	}()

	log.Printf("Processing message: userID=%s, length=%d", req.UserID, len(req.Message))

	validated := e.langManager.Validate(req.Language)
	if validated.NeedsDetect {
		// Detected codes pass through unvalidated; the translation
		// backend supports more languages than the stock list.
		lang = e.translator.Detect(ctx, req.Message)
		log.Printf("Detected language %q for user=%s", lang, req.UserID)
	} else {
		lang = validated.Code
		if validated.UsedFallback {
			log.Printf("Unsupported language %q requested, using %q", req.Language, lang)
		}
	}

	// The message leaves the service twice, for translation and for
	// generation. Only the redacted form goes out; the stored turn keeps
	// the original.
	outbound := privacy.RedactSensitiveData(req.Message)
	if outbound != req.Message {
		log.Printf("Engine: redacted PII in message from user=%s", req.UserID)
	}

	english := e.translator.Translate(ctx, outbound, lang, language.DefaultLanguage)

	// History is enrichment. A read failure means a context-free prompt,
	// never a failed reply.
	turns, err := e.historyStore.FindTurnsByUser(ctx, req.UserID)
	if err != nil {
		log.Printf("Engine: history read failed for user=%s, continuing without context: %v", req.UserID, err)
		turns = nil
	}
	window := history.Window(turns, e.historyWindow)

	promptText := e.promptBuilder.Build(window, english)
	pref := e.heuristic.Classify(english)
	log.Printf("Heuristic: matched=%d preferQuality=%t", pref.MatchedKeywords, pref.PreferQuality)

	cascadeCtx, cancel := context.WithTimeout(ctx, e.overallTimeout)
	replyEnglish, source := e.cascade.Resolve(cascadeCtx, promptText, pref)
	cancel()

	display := e.finalizer.Finalize(ctx, replyEnglish, lang)
	if display == "" {
		display = fallback.GetApology(lang)
		source = cascade.DefaultSource
	}

	e.recorder.Record(history.Turn{
		UserID:            req.UserID,
		UserMessage:       req.Message,
		TranslatedMessage: english,
		BotReply:          replyEnglish,
		FinalReply:        display,
		LanguageCode:      lang,
		ProviderSource:    source,
		CreatedAt:         time.Now(),
	}, pref.PreferQuality)

	return Response{
		DisplayText:    display,
		ProviderSource: source,
		LanguageCode:   lang,
	}
}
