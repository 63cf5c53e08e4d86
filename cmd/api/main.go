package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"museumguide/internal/config"
	"museumguide/internal/database"
	"museumguide/internal/middleware"
	"museumguide/internal/modules/admin"
	"museumguide/internal/modules/auth"
	"museumguide/internal/modules/catalog"
	"museumguide/internal/modules/guide"
	"museumguide/internal/modules/ticket"
	"museumguide/internal/modules/upload"
	jwtsvc "museumguide/internal/pkg/jwt"
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
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(&upload.Upload{}); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	museumRepo := repository.NewMuseumRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	objectRepo := repository.NewObjectRepository(db)
	ticketRepo := repository.NewTicketRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	catalogHandler := catalog.NewHandler(catalog.NewService(museumRepo, roomRepo, objectRepo))
	adminHandler := admin.NewHandler(admin.NewService(userRepo, museumRepo))
	uploadHandler := upload.NewHandler(upload.NewService(upload.NewRepository(db), cfg.UploadDir, cfg.StaticBase))

	ticketService := ticket.NewService(ticketRepo, museumRepo, cfg.TicketValidity)
	ticketHandler := ticket.NewHandler(ticketService)

	guideService := guide.NewService(ticketService, roomRepo, objectRepo)
	guideHandler := guide.NewHandler(guideService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.Static(cfg.StaticBase, cfg.UploadDir)

	v1 := r.Group("/api/v1")
	{
		// public: login/register, ticket verification and the visitor guide
		authHandler.RegisterPublicRoutes(v1)
		ticketHandler.RegisterPublicRoutes(v1)
		guideHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)

			staff := protected.Group("/")
			staff.Use(middleware.StaffOnly())
			{
				ticketHandler.RegisterRoutes(staff)
				catalogHandler.RegisterStaffRoutes(staff)
				uploadHandler.RegisterStaffRoutes(staff)
			}

			superadmin := protected.Group("/")
			superadmin.Use(middleware.SuperadminOnly())
			{
				catalogHandler.RegisterSuperadminRoutes(superadmin)
				adminHandler.RegisterRoutes(superadmin)
				uploadHandler.RegisterSuperadminRoutes(superadmin)
			}
		}
	}

	log.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
