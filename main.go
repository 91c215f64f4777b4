package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"traffic-manager-system/config"
	"traffic-manager-system/handlers"
	"traffic-manager-system/middleware"
	"traffic-manager-system/models"
	"traffic-manager-system/services"
	"traffic-manager-system/utils"

	"traffic-manager-system/workers"

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

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // 50MB, attachments only
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware(cfg.ServiceToken))
	app.Use(middleware.RequestMetrics())

	allowedOriginsList := strings.Split(cfg.AllowedOrigins, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Session-Token, X-Service-Token, X-User-ID, X-User-Email",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Test{},
		&models.TestAttachment{},
		&models.Offer{},
		&models.FinancialData{},
		&models.Transaction{},
		&models.Workspace{},
		&models.WorkspaceMember{},
		&models.Invitation{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	authClient := services.NewAuthServiceClient(cfg.AuthServiceURL, cfg.ServiceToken)

	testService := services.NewTestService(db)
	offerService := services.NewOfferService(db)
	financialService := services.NewFinancialService(db)
	workspaceService := services.NewWorkspaceService(db)
	invitationService := services.NewInvitationService(db, authClient, cfg.InvitationTTL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reconcileWorker := workers.NewReconcileWorker(db, cfg.ReconcileInterval)
	reconcileWorker.Start(ctx)

	memberSyncWorker := workers.NewMemberSyncWorker(db, cfg.AuthServiceURL, cfg.ServiceToken)
	memberSyncWorker.Start(ctx)

	invitationService.StartExpirySweeper()

	handlers.SetupTestRoutes(app, testService)
	handlers.SetupOfferRoutes(app, offerService)
	handlers.SetupFinancialRoutes(app, financialService)
	handlers.SetupWorkspaceRoutes(app, workspaceService, invitationService)

	app.Get("/metrics", middleware.MetricsHandler())
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.Port)
	log.Println("✅ Financial Reconcile Worker running")
	log.Println("✅ Member Sync Worker running")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
