package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-portal-system/handlers"
	"quiz-portal-system/models"
	"quiz-portal-system/services"
	"quiz-portal-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New()

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Session-Token",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Game{},
		&models.Play{},
		&models.PlayLevel{},
		&models.GameBestScore{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	sessionTTL := 24 * time.Hour
	if hours, err := strconv.Atoi(os.Getenv("SESSION_TTL_HOURS")); err == nil && hours > 0 {
		sessionTTL = time.Duration(hours) * time.Hour
	}

	levelConfig := services.DefaultLevelConfig

	authService := services.NewAuthService(db, sessionTTL)
	catalogService := services.NewCatalogService(db)
	playService := services.NewPlayService(db, levelConfig)
	scoreService := services.NewScoreService(db, levelConfig)
	historyService := services.NewHistoryService(db)

	if err := catalogService.SeedGames(); err != nil {
		log.Fatal("failed to seed game catalog:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cleaner := workers.NewSessionCleaner(db)
	go workers.PollSessions(ctx, cleaner, 10*time.Minute)

	catalogService.StartBestScoreScheduler()

	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupPlayRoutes(app, authService, playService, scoreService)
	handlers.SetupHistoryRoutes(app, authService, catalogService, historyService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Session cleanup worker running (every 10m)")
	log.Println("✅ Best-score scheduler running (every 1m)")
	log.Printf("✅ CORS configured for origins: %s", allowedOrigins)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
