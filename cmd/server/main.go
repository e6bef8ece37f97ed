package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/snorelax/snorelax-be/internal/api"
	"github.com/snorelax/snorelax-be/internal/api/middleware"
	"github.com/snorelax/snorelax-be/internal/cascade"
	"github.com/snorelax/snorelax-be/internal/chat"
	"github.com/snorelax/snorelax-be/internal/config"
	"github.com/snorelax/snorelax-be/internal/db"
	"github.com/snorelax/snorelax-be/internal/fallback"
	"github.com/snorelax/snorelax-be/internal/finalizer"
	"github.com/snorelax/snorelax-be/internal/history"
	"github.com/snorelax/snorelax-be/internal/intent"
	"github.com/snorelax/snorelax-be/internal/language"
	"github.com/snorelax/snorelax-be/internal/memory"
	"github.com/snorelax/snorelax-be/internal/mood"
	"github.com/snorelax/snorelax-be/internal/prompt"
	"github.com/snorelax/snorelax-be/internal/provider"
	"github.com/snorelax/snorelax-be/internal/recorder"
	"github.com/snorelax/snorelax-be/internal/training"
	"github.com/snorelax/snorelax-be/internal/translator"
	"github.com/snorelax/snorelax-be/internal/ws"
	"github.com/snorelax/snorelax-be/pkg/cohere"
	"github.com/snorelax/snorelax-be/pkg/hfinference"
	"github.com/snorelax/snorelax-be/pkg/libretranslate"
)

// dataStore is everything the pipeline needs from persistence, satisfied
// by both *db.DB and the in-memory memory.Store.
type dataStore interface {
	history.Store
	recorder.CorpusStore
	ws.MessageStore
	SaveMood(ctx context.Context, userID, mood string, note *string) (*db.Mood, error)
	GetRecentMoods(ctx context.Context, userID string, limit int) ([]db.Mood, error)
	GetUserRole(ctx context.Context, userID string) (string, error)
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Persistence: Postgres when configured, in-memory otherwise.
	var store dataStore
	if cfg.DatabaseURL != "" {
		database, err := db.NewFromURL(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()
		store = database
		log.Println("✅ Database connected")
	} else {
		store = memory.NewStore(100)
		log.Println("⚠️  DATABASE_URL not set, using in-memory storage")
	}

	// Translation
	ltClient := libretranslate.NewClient(libretranslate.Config{
		BaseURL: cfg.LibreTranslateURL,
		APIKey:  cfg.LibreTranslateAPIKey,
	})
	trans := translator.New(ltClient)

	// Provider clients and adapters, keyed off the config table.
	cohereClient := cohere.NewClient(cohere.Config{APIKey: cfg.CohereAPIKey})
	hfClient := hfinference.NewClient(hfinference.Config{APIKey: cfg.HFAPIKey})

	adapters := map[string]provider.Adapter{
		config.ProviderPython: provider.NewSubprocess(
			config.ProviderPython,
			[]string{"python3", "python"},
			[]string{cfg.PythonScript},
		),
		config.ProviderCohere:      provider.NewCohere(config.ProviderCohere, cohereClient, 4000),
		config.ProviderHuggingFace: provider.NewHuggingFace(config.ProviderHuggingFace, hfClient),
	}

	var entries []cascade.Entry
	for _, spec := range cfg.Providers() {
		adapter, ok := adapters[spec.Name]
		if !ok {
			log.Fatalf("No adapter for provider %s", spec.Name)
		}
		entries = append(entries, cascade.Entry{Spec: spec, Adapter: adapter})
		log.Printf("Provider %s: enabled=%t priority=%d", spec.Name, spec.Enabled, spec.Priority)
	}

	defaultReply := cfg.DefaultReply
	if defaultReply == "" {
		defaultReply = fallback.DefaultReply
	}
	orchestrator := cascade.New(entries, defaultReply)

	// Offline training trigger (optional)
	var trigger recorder.Trigger
	if cfg.TrainingScript != "" {
		trigger = training.NewSubprocessTrigger("python3", cfg.TrainingScript)
		log.Println("✅ Training trigger initialized")
	}

	// Mood analysis: quality provider when available, local rules otherwise.
	var guideGen mood.Generator
	if cfg.CohereAPIKey != "" {
		guideGen = cohereClient
	}
	analyzer := mood.NewAnalyzer(store, store, guideGen)

	rec := recorder.New(store, store, trigger, analyzer, config.QualityProvider)

	langMgr := language.NewManager()
	engine := chat.NewEngine(
		trans,
		store,
		prompt.NewBuilder(),
		intent.NewHeuristic(),
		orchestrator,
		finalizer.New(trans),
		rec,
		langMgr,
		cfg.HistoryWindow,
		cfg.OverallTimeout,
	)

	// Initialize handlers
	chatbotHandler := api.NewChatbotHandler(engine, store, store, langMgr)
	moodHandler := api.NewMoodHandler(store)
	guideHandler := api.NewGuideHandler(analyzer)
	translateHandler := api.NewTranslateHandler(trans)
	communityHub := ws.NewHub(store, cfg.JWTSecret)

	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.PerIP(100.0/60.0, 200)) // ~100 req/min per IP

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	// Public routes: the chatbot itself and translation.
	apiGroup := router.Group("/api")
	chatbotHandler.RegisterRoutes(apiGroup)
	translateHandler.RegisterRoutes(apiGroup)

	// Protected routes: mood check-ins and guides carry personal data.
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuth(cfg.JWTSecret))
	protected.Use(middleware.PerUser(500.0/3600.0, 100)) // 500/hour per user
	moodHandler.RegisterRoutes(protected)
	guideHandler.RegisterRoutes(protected)

	// Community WebSocket (protected via query param/header)
	router.GET("/ws/community", communityHub.HandleCommunity)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("🚀 Server starting on http://localhost:%s", cfg.Port)
		log.Printf("📝 API endpoints:")
		log.Printf("   POST   /api/chatbot")
		log.Printf("   GET    /api/languages")
		log.Printf("   POST   /api/moods/:userId")
		log.Printf("   GET    /api/moods/:userId")
		log.Printf("   POST   /api/ai/guide")
		log.Printf("   POST   /api/translate")
		log.Printf("   POST   /api/detect")
		log.Printf("   WS     /ws/community")
		log.Printf("")
		log.Printf("Press Ctrl+C to stop")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Let detached turn recording drain before exit.
	rec.Wait()

	log.Println("Server exited")
}
