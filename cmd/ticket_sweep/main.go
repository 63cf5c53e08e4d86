package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"museumguide/internal/config"
	"museumguide/internal/database"
	"museumguide/internal/modules/ticket"
	"museumguide/internal/repository"
)

// Periodic consistency backstop: expires every active ticket whose validity
// window has elapsed. Run from cron; reads never depend on it because status
// is also derived lazily on access.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	svc := ticket.NewService(
		repository.NewTicketRepository(db),
		repository.NewMuseumRepository(db),
		cfg.TicketValidity,
	)

	n, err := svc.Sweep(context.Background())
	if err != nil {
		log.Fatalf("ticket sweep failed: %v", err)
	}

	log.Printf("ticket sweep completed: expired=%d", n)
}
