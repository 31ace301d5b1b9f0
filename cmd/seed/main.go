package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"legalpad/internal/config"
	padRepo "legalpad/internal/domain/repositories/legalpad"
	filestore "legalpad/internal/repository/file"
	"legalpad/internal/repository/postgres"
	padSvc "legalpad/internal/service/legalpad"

	"github.com/joho/godotenv"
)

// Seeds the pad store with sample study content so a fresh install has
// something to look at. With --reset the existing pad is replaced.
func main() {
	reset := flag.Bool("reset", false, "Replace any existing pad with the sample content")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	// SAFETY: never clobber a production pad
	if cfg.Environment == "prod" && *reset {
		log.Fatalf("BLOCKED: cannot run --reset in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()

	var store padRepo.TreeStore
	if cfg.DatabaseURL != "" {
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		tables := postgres.NewTableNames(cfg.TablePrefix)
		store, err = postgres.NewTreeStore(ctx, pool, tables, logger)
		if err != nil {
			log.Fatalf("Failed to create pad store: %v", err)
		}
	} else {
		var err error
		store, err = filestore.NewTreeStore(cfg.DataDir, logger)
		if err != nil {
			log.Fatalf("Failed to create pad store: %v", err)
		}
	}

	if !*reset {
		existing, err := store.Load(ctx)
		if err != nil {
			log.Fatalf("Failed to load pad: %v", err)
		}
		// The seed tree has one folder with one note; anything beyond that
		// means real content exists.
		if existing.NoteCount() > 1 || len(existing.Folders) > 1 {
			log.Printf("Pad already has content; re-run with --reset to replace it")
			return
		}
	}

	pad, err := padSvc.NewPad(ctx, store, logger)
	if err != nil {
		log.Fatalf("Failed to load pad: %v", err)
	}

	seedSamples(ctx, pad, logger)
	log.Printf("Seeded sample pad (environment: %s)", cfg.Environment)
}

// seedSamples adds a couple of folders with starter notes through the normal
// mutation surface so the persisted snapshot is exactly what the app writes.
func seedSamples(ctx context.Context, pad *padSvc.Pad, logger *slog.Logger) {
	samples := []struct {
		folder string
		notes  []struct{ title, content string }
	}{
		{
			folder: "Constitutional Law",
			notes: []struct{ title, content string }{
				{"Judicial Review", "Marbury v. Madison established the judiciary's power to strike down unconstitutional statutes."},
				{"Commerce Clause", "Congress may regulate channels, instrumentalities, and activities substantially affecting interstate commerce."},
			},
		},
		{
			folder: "Contracts",
			notes: []struct{ title, content string }{
				{"Offer and Acceptance", "A contract requires mutual assent: a definite offer and an unequivocal acceptance."},
			},
		},
	}

	for _, sample := range samples {
		folder, err := pad.CreateFolder(ctx, sample.folder)
		if err != nil {
			logger.Warn("skipping sample folder", "name", sample.folder, "error", err)
			continue
		}
		// CreateNote prepends, so seed in reverse to keep display order
		for i := len(sample.notes) - 1; i >= 0; i-- {
			note, err := pad.CreateNote(ctx, folder.ID)
			if err != nil {
				logger.Warn("skipping sample note", "title", sample.notes[i].title, "error", err)
				continue
			}
			if err := pad.UpdateNoteField(ctx, note.ID, folder.ID, padSvc.FieldTitle, sample.notes[i].title); err != nil {
				logger.Warn("failed to title sample note", "error", err)
			}
			if err := pad.UpdateNoteField(ctx, note.ID, folder.ID, padSvc.FieldContent, sample.notes[i].content); err != nil {
				logger.Warn("failed to fill sample note", "error", err)
			}
		}
	}
}
