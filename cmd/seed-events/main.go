package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"gp1-tickets/internal/config"
	"gp1-tickets/internal/models"
	"gp1-tickets/internal/repositories"
)

// Writes the default season catalog into the local event store, skipping
// events that already exist.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if cfg.Store.Mode != config.StoreModeLocal {
		log.Fatal("Seeding requires STORE_MODE=local")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Store.DataPath), 0o755); err != nil {
		log.Fatal("Failed to create data directory:", err)
	}
	repo, err := repositories.NewLocalEventRepository(cfg.Store.DataPath, zerolog.New(os.Stderr))
	if err != nil {
		log.Fatal("Failed to open local event store:", err)
	}
	defer repo.Close()

	ctx := context.Background()
	for _, event := range models.SeedEvents() {
		_, err := repo.CreateEvent(ctx, &event)
		switch {
		case errors.Is(err, models.ErrDuplicateEvent):
			fmt.Printf("Skipped %s (already exists)\n", event.ID)
		case err != nil:
			log.Fatal("Failed to seed event:", err)
		default:
			fmt.Printf("Seeded %s with %d tickets\n", event.ID, len(event.Tickets))
		}
	}
}
