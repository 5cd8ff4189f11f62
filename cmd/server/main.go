package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordmemo/internal/audio"
	"wordmemo/internal/catalog"
	"wordmemo/internal/config"
	"wordmemo/internal/database"
	"wordmemo/internal/handlers"
	"wordmemo/internal/repository"
	"wordmemo/internal/security"
	"wordmemo/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	handlers.SetCurrentStep(handlers.StepDatabase)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	handlers.CompleteStep(handlers.StepDatabase)

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	handlers.SetCurrentStep(handlers.StepMigrations)
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	handlers.CompleteStep(handlers.StepMigrations)

	log.Println("Migrations completed successfully")

	handlers.SetCurrentStep(handlers.StepCatalog)
	words, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load word catalog: %v", err)
	}
	handlers.CompleteStep(handlers.StepCatalog)

	log.Printf("Word catalog loaded: %v", catalog.CountByDifficulty(words))

	handlers.SetCurrentStep(handlers.StepServices)
	store := repository.NewWordStore(repository.NewKVRepository(db))
	picker := service.NewWordPicker(service.NewRecencyHistory(service.HistorySize), nil)
	teacherService := service.NewTeacherService(store, picker, words)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	reportService, err := service.NewReportService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.ReportEmail, cfg.Debug)
	if err != nil {
		log.Printf("Warning: session reports unavailable: %v", err)
	}

	sessionsCfg := service.ClientSessionsConfig{
		Play: service.PlayOptions{
			GuessTimeLimit:    cfg.GuessTimeLimit,
			WordCompleteDelay: cfg.WordCompleteDelay,
		},
		HashPins:    cfg.HashTeacherPin,
		IdleTimeout: cfg.SessionDuration,
		Debug:       cfg.Debug,
	}
	if reportService != nil && reportService.IsEnabled() {
		sessionsCfg.OnSessionOver = reportService.HandleSessionOver
	}
	sessions := service.NewClientSessions(teacherService, store, sessionsCfg)

	if cfg.SessionSecret == "change-me-in-production" {
		log.Println("Warning: SESSION_SECRET is not set; using the insecure default")
	}
	signer := security.NewSessionSigner(cfg.SessionSecret, cfg.SessionDuration)
	csrf := security.NewCSRFGenerator(cfg.SessionSecret)
	limiter := security.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	go limiter.Run(ctx, 10*time.Minute)

	ttsService := audio.NewTTSService(cfg.AudioPath, cfg.TTSEnabled)

	// Initialize handlers
	middleware := handlers.NewMiddleware(sessions, signer, csrf, limiter, cfg.Debug)
	modeHandler := handlers.NewModeHandler(csrf)
	teacherHandler := handlers.NewTeacherHandler(teacherService)
	playHandler := handlers.NewPlayHandler(teacherService, ttsService)
	handlers.CompleteStep(handlers.StepServices)

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, middleware, modeHandler, teacherHandler, playHandler)

	// Wrap with logging middleware
	handler := handlers.Logging(handlers.RequireReady(mux))

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(ctx, sessions)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()
	handlers.MarkReady()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	sessions.CloseAll()
}

// cleanupExpiredSessions periodically removes idle client sessions
func cleanupExpiredSessions(ctx context.Context, sessions *service.ClientSessions) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := sessions.CleanupExpired(); removed > 0 {
				log.Printf("Expired client sessions cleaned up: %d", removed)
			}
		}
	}
}
