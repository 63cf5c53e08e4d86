package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"museumguide/internal/config"
	"museumguide/internal/database"
	"museumguide/internal/domain"
	"museumguide/internal/modules/ticket"
	"museumguide/internal/modules/upload"
	"museumguide/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}
	if err := db.AutoMigrate(&upload.Upload{}); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// clean old data, children first
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM tickets")
	db.Exec("DELETE FROM objects")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM museums")

	ctx := context.Background()
	museumRepo := repository.NewMuseumRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	objectRepo := repository.NewObjectRepository(db)
	userRepo := repository.NewUserRepository(db)
	ticketRepo := repository.NewTicketRepository(db)

	// ================== MUSEUMS ==================
	log.Println("Creating museums...")
	history := &domain.Museum{
		Title:       "National History Museum",
		Description: "From antiquity to the twentieth century",
	}
	art := &domain.Museum{
		Title:       "Museum of Modern Art",
		Description: "Painting and sculpture after 1945",
	}
	for _, m := range []*domain.Museum{history, art} {
		if err := museumRepo.Create(ctx, m); err != nil {
			log.Fatal("seed museum failed:", err)
		}
	}

	// ================== USERS ==================
	log.Println("Creating users...")
	superHash, _ := bcrypt.GenerateFromPassword([]byte("super123"), bcrypt.DefaultCost)
	if err := userRepo.Create(ctx, &domain.User{
		Name:         "Superadmin",
		Email:        "super@museumguide.kz",
		PasswordHash: string(superHash),
		Role:         domain.RoleSuperadmin,
	}); err != nil {
		log.Fatal("seed superadmin failed:", err)
	}
	log.Println("Superadmin created: super@museumguide.kz / super123")

	for i, m := range []*domain.Museum{history, art} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		museumID := m.ID
		if err := userRepo.Create(ctx, &domain.User{
			Name:         fmt.Sprintf("Admin %d", i+1),
			Email:        fmt.Sprintf("admin%d@museumguide.kz", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
			MuseumID:     &museumID,
		}); err != nil {
			log.Fatal("seed admin failed:", err)
		}
	}

	// ================== ROOMS & OBJECTS ==================
	log.Println("Creating rooms and objects...")
	rooms := []struct {
		museum *domain.Museum
		title  string
		desc   string
	}{
		{history, "Antiquity", "Greek and Roman collections"},
		{history, "Medieval", "Europe in the middle ages"},
		{art, "Sculpture", "Postwar sculpture"},
	}
	for _, spec := range rooms {
		room := &domain.Room{
			MuseumID:    spec.museum.ID,
			Title:       spec.title,
			Description: spec.desc,
		}
		if err := roomRepo.Create(ctx, room); err != nil {
			log.Fatal("seed room failed:", err)
		}
		for j := 1; j <= 3; j++ {
			if err := objectRepo.Create(ctx, &domain.Object{
				RoomID:      room.ID,
				Title:       fmt.Sprintf("%s Exhibit %d", spec.title, j),
				Description: "Audio guide available",
			}); err != nil {
				log.Fatal("seed object failed:", err)
			}
		}
	}

	// ================== TICKETS ==================
	log.Println("Creating tickets...")
	ticketService := ticket.NewService(ticketRepo, museumRepo, cfg.TicketValidity)
	for _, m := range []*domain.Museum{history, art} {
		t, err := ticketService.Create(ctx, m.ID)
		if err != nil {
			log.Fatal("seed ticket failed:", err)
		}
		log.Printf("Ticket for %s: %s", m.Title, t.Code)
	}

	// one already-lapsed ticket so the sweep has work to do
	now := time.Now()
	if err := ticketRepo.Create(ctx, &domain.Ticket{
		MuseumID:       history.ID,
		Code:           "0000000001",
		PurchaseTime:   now.Add(-48 * time.Hour),
		ExpirationTime: now.Add(-24 * time.Hour),
		Status:         domain.TicketActive,
	}); err != nil {
		log.Fatal("seed expired ticket failed:", err)
	}

	log.Println("Seed completed")
}
