package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"match-tracker/config"
	"match-tracker/handlers"
	"match-tracker/middleware"
	"match-tracker/services"
	"match-tracker/utils"
	"match-tracker/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := openStorage(cfg)
	if err != nil {
		log.Fatal("failed to open storage: ", err)
	}

	session := services.NewSessionStore(storage)
	if err := session.Load(ctx); err != nil {
		log.Fatal("failed to restore session: ", err)
	}

	api := utils.NewAPIClient(cfg.APIURL, session, cfg.APITimeout)
	// A token the backend rejects ends the session.
	api.OnUnauthorized = func(ctx context.Context) {
		log.Println("🔒 Backend rejected the stored token, logging out")
		if err := session.Logout(context.WithoutCancel(ctx)); err != nil {
			log.Printf("failed to clear session: %v", err)
		}
	}

	locale := services.NewLocale(cfg.Locale, cfg.Location)
	authService := services.NewAuthService(api)
	matchService := services.NewMatchService(api)

	var uploader services.ObjectUploader
	if cfg.ExportEnabled() {
		r2, err := utils.NewR2Uploader(ctx, utils.R2Options{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			Bucket:          cfg.R2Bucket,
			PublicBaseURL:   cfg.CDNBaseURL,
		})
		if err != nil {
			log.Fatal("failed to initialize R2 client: ", err)
		}
		uploader = r2
	} else {
		log.Println("⚠️  R2 credentials not set, history export disabled")
	}
	exportService := services.NewExportService(matchService, session, uploader, locale)

	app := fiber.New(fiber.Config{
		AppName:      "match-tracker",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-Access-Token",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	app.Use(middleware.AccessTokenMiddleware(cfg.AccessToken))

	views := &handlers.Views{
		Auth:    authService,
		Matches: matchService,
		Session: session,
		Export:  exportService,
		Locale:  locale,
	}
	handlers.SetupAuthRoutes(app, views)
	handlers.SetupMatchRoutes(app, views)

	if cfg.ProfileSyncInterval > 0 {
		workers.NewProfileSyncWorker(authService, session, cfg.ProfileSyncInterval).Start(ctx)
	}

	if cfg.ExportInterval > 0 && uploader != nil {
		sched, err := exportService.StartExportScheduler(ctx, cfg.ExportInterval)
		if err != nil {
			log.Fatal("failed to start export scheduler: ", err)
		}
		defer func() {
			if err := sched.Shutdown(); err != nil {
				log.Printf("scheduler shutdown: %v", err)
			}
		}()
	}

	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			log.Printf("Server error: %v", err)
			stop()
		}
	}()

	log.Printf("✅ Server running on %s", cfg.HTTPAddr)
	log.Printf("✅ Backend API at %s", cfg.APIURL)
	log.Printf("✅ CORS configured for origins: %s", cfg.AllowedOrigins)
	if cfg.AccessToken != "" {
		log.Println("✅ AccessTokenMiddleware enforced globally")
	}

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func openStorage(cfg config.Config) (utils.Storage, error) {
	if cfg.DatabaseURL != "" {
		log.Println("💾 Using postgres session storage")
		return utils.OpenDBStorage(cfg.DatabaseURL)
	}
	log.Printf("💾 Using file session storage at %s", cfg.StoragePath)
	return utils.NewFileStorage(cfg.StoragePath)
}
