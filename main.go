package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"lingo-learn-system/handlers"
	"lingo-learn-system/middleware"
	"lingo-learn-system/models"
	"lingo-learn-system/services"
	"lingo-learn-system/utils"
	"lingo-learn-system/workers"

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

	app := fiber.New(fiber.Config{})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-User-ID, X-Username, X-User-Roles, X-Service-Token",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
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
		&models.Account{},
		&models.Lesson{},
		&models.Flashcard{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	clock := utils.RealClock{}

	lessonService := services.NewLessonService(db)
	progressionService := services.NewProgressionService(db, clock)
	decayService := services.NewDecayService(services.NewGormAccountStore(db))
	leaderboardService := services.NewLeaderboardService(db, clock)

	// Snapshot archiving is optional — without SNAPSHOT_S3_* config the
	// weekly job simply stays off; lazy resets don't depend on it.
	snapshotsEnabled := true
	if err := utils.InitSnapshotStore(); err != nil {
		log.Printf("⚠️  Leaderboard snapshot archiving disabled: %v", err)
		snapshotsEnabled = false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Profile sync: keeps one Account row per registered user ---
	profileSyncURL := os.Getenv("PROFILE_SYNC_URL")
	serviceToken := os.Getenv("LEARNING_SERVICE_TOKEN")
	if profileSyncURL != "" {
		syncWorker := workers.NewProfileSyncWorker(db, profileSyncURL, "/api/v1/public/profiles", serviceToken)
		syncWorker.Start(ctx)
	} else {
		log.Println("⚠️  PROFILE_SYNC_URL not set — accounts are created lazily on first progress request")
	}

	if snapshotsEnabled {
		leaderboardService.StartSnapshotScheduler()
	}

	// ✅ Setup routes — enforced Gateway auth, user context where needed
	handlers.SetupLessonRoutes(app, lessonService)
	handlers.SetupProgressRoutes(app, progressionService, decayService, leaderboardService, clock)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
