package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"legalpad/internal/config"
	padRepo "legalpad/internal/domain/repositories/legalpad"
	"legalpad/internal/handler"
	"legalpad/internal/middleware"
	filestore "legalpad/internal/repository/file"
	"legalpad/internal/repository/postgres"
	padSvc "legalpad/internal/service/legalpad"
	serviceLLM "legalpad/internal/service/llm"
	"legalpad/internal/service/studyaids"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logOutput := io.Writer(os.Stdout)
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"default_model", cfg.DefaultModel,
	)

	ctx := context.Background()

	// Select the pad store: Postgres when DATABASE_URL is set, local file
	// otherwise. Both persist the full tree snapshot on every mutation.
	var store padRepo.TreeStore
	if cfg.DatabaseURL != "" {
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		tables := postgres.NewTableNames(cfg.TablePrefix)
		store, err = postgres.NewTreeStore(ctx, pool, tables, logger)
		if err != nil {
			log.Fatalf("Failed to create pad store: %v", err)
		}
		logger.Info("pad store ready", "backend", "postgres", "table", tables.LegalPads)
	} else {
		var err error
		store, err = filestore.NewTreeStore(cfg.DataDir, logger)
		if err != nil {
			log.Fatalf("Failed to create pad store: %v", err)
		}
		logger.Info("pad store ready", "backend", "file", "data_dir", cfg.DataDir)
	}

	// Load the pad (seed tree on first run)
	pad, err := padSvc.NewPad(ctx, store, logger)
	if err != nil {
		log.Fatalf("Failed to load pad: %v", err)
	}
	drag := padSvc.NewDragController(pad)

	// Setup LLM providers
	providerRegistry, err := serviceLLM.SetupProviders(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to setup LLM providers: %v", err)
	}

	// Create study-aid service
	studyService, err := studyaids.NewService(providerRegistry, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to setup study-aid service: %v", err)
	}

	// Create handlers
	padHandler := handler.NewPadHandler(pad, logger)
	dragHandler := handler.NewDragHandler(drag, logger)
	studyHandler := handler.NewStudyHandler(studyService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", padHandler.HealthCheck)

	// Pad tree and selection
	mux.HandleFunc("GET /api/pad/tree", padHandler.GetTree)
	mux.HandleFunc("POST /api/pad/select", padHandler.Select)

	// Folder routes
	mux.HandleFunc("POST /api/pad/folders", padHandler.CreateFolder)
	mux.HandleFunc("POST /api/pad/folders/reorder", padHandler.ReorderFolders) // Must come before {id} routes
	mux.HandleFunc("PATCH /api/pad/folders/{id}", padHandler.RenameFolder)
	mux.HandleFunc("DELETE /api/pad/folders/{id}", padHandler.DeleteFolder)
	mux.HandleFunc("POST /api/pad/folders/{id}/toggle", padHandler.ToggleFolder)
	mux.HandleFunc("POST /api/pad/folders/{id}/merge", padHandler.MergeFolder)
	mux.HandleFunc("POST /api/pad/folders/{id}/notes", padHandler.CreateNote)

	// Note routes
	mux.HandleFunc("PATCH /api/pad/notes/{id}", padHandler.UpdateNote)
	mux.HandleFunc("DELETE /api/pad/notes/{id}", padHandler.DeleteNote)
	mux.HandleFunc("POST /api/pad/notes/{id}/move", padHandler.MoveNote)

	// Drag routes
	mux.HandleFunc("POST /api/pad/drag/start", dragHandler.Start)
	mux.HandleFunc("POST /api/pad/drag/drop", dragHandler.Drop)
	mux.HandleFunc("POST /api/pad/drag/cancel", dragHandler.Cancel)

	// Study-aid routes
	mux.HandleFunc("POST /api/study/statutes/explain", studyHandler.ExplainStatute)
	mux.HandleFunc("POST /api/study/cases/digest", studyHandler.DigestCase)
	mux.HandleFunc("POST /api/study/quiz/question", studyHandler.QuizQuestion)
	mux.HandleFunc("POST /api/study/contracts/draft", studyHandler.DraftContract)

	// Build middleware chain (wrapped in reverse order)
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)

	// CORS outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	})
	h = corsHandler.Handler(h)

	// Create HTTP server. WriteTimeout is generous because a generation call
	// is bounded only by the underlying transport.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
