package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/agrofisco/invoice-agent/internal/api/handlers"
	"github.com/agrofisco/invoice-agent/internal/api/middleware"
	"github.com/agrofisco/invoice-agent/internal/classifier"
	"github.com/agrofisco/invoice-agent/internal/config"
	"github.com/agrofisco/invoice-agent/internal/extractor"
	"github.com/agrofisco/invoice-agent/internal/llm"
	"github.com/agrofisco/invoice-agent/internal/logger"
	"github.com/agrofisco/invoice-agent/internal/pipeline"
	"github.com/agrofisco/invoice-agent/internal/registry"
	"github.com/agrofisco/invoice-agent/internal/store"
	"github.com/agrofisco/invoice-agent/internal/texttosql"
)

func main() {
	// Parse command-line flags
	var (
		port      = flag.String("port", "8080", "HTTP server port")
		rulesFile = flag.String("rules", "", "YAML file overriding the built-in classification rules")
	)
	flag.Parse()

	// Initialize logger
	log := logger.New()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found; relying on the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	// External collaborators, constructed once and passed by reference.
	st, err := store.NewClient(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create store client")
	}

	gen, err := llm.NewGemini(ctx, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create model client")
	}

	rules := classifier.Default()
	if *rulesFile != "" {
		rules, err = classifier.Load(*rulesFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", *rulesFile).Msg("Failed to load classification rules")
		}
		log.Info().Str("file", *rulesFile).Int("rules", len(rules)).Msg("Loaded classification rules")
	}

	verifier := registry.NewVerifier(st, log)
	persister := registry.NewPersister(st, log)
	pipe := pipeline.New(extractor.PDFText{}, extractor.NewAgent(gen), rules, verifier, log)
	orchestrator := texttosql.NewOrchestrator(gen, st, log)

	// Initialize handlers
	invoicesHandler := handlers.NewInvoicesHandler(pipe, persister, log)
	questionsHandler := handlers.NewQuestionsHandler(orchestrator, log)

	// Create router
	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS)

	r.Post("/api/invoices/extract", invoicesHandler.Extract)
	r.Post("/api/invoices", invoicesHandler.Save)
	r.Post("/api/ask", questionsHandler.Ask)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Create HTTP server. Model calls are slow; give writes generous room.
	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
