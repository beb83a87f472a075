package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"perk-boost-system/events"
	"perk-boost-system/handlers"
	"perk-boost-system/middleware"
	"perk-boost-system/models"
	"perk-boost-system/services"
	"perk-boost-system/utils"
	"perk-boost-system/workers"

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

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB — perk icons are the largest upload
	})

	// 🔐 GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

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
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-User-ID, X-User-Roles, X-Service-Token",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Perk{},
		&models.PlayerPerkOwnership{},
		&models.ActiveBoost{},
		&models.BoostUsageRecord{},
		&models.AnalyticsEvent{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	// The bus lives here, in the composition root — subscribers attach
	// before any publisher starts, so nothing fires into the void.
	bus := events.NewBus()

	analyticsService := services.NewAnalyticsService(db)
	inventoryService := services.NewInventoryService(db)
	boostService := services.NewBoostService(db, bus, inventoryService, analyticsService)
	catalogService := services.NewCatalogService(db)

	workers.AttachNotifier(bus, workers.NewNotifyClient())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := workers.NewBoostSweeper(db, bus, analyticsService, time.Minute)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	handlers.SetupPerkRoutes(app, catalogService)
	handlers.SetupInventoryRoutes(app, inventoryService)
	handlers.SetupBoostRoutes(app, boostService, sweeper)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Boost sweeper scheduled (eager run at startup)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
