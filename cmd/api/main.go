package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/config"
	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/handler"
	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/middleware"
	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/repository"
	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/service"
	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/validator"
	"github.com/dreamteamservicespvt/rebuild-studio-server/pkg/database"
)

func main() {
	// A local .env is a development convenience; missing is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	initLogger(cfg)

	ctx := context.Background()

	// Initialize database pool with retry
	pool, err := database.NewPool(ctx, cfg.DB.DSN(), 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to apply database schema")
	}

	app := fiber.New(fiber.Config{
		AppName:      "Rebuild Studio Server",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())

	validate := validator.New()

	// Repositories
	couponRepo := repository.NewCouponRepository(pool)
	redemptionRepo := repository.NewRedemptionRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	// Services
	couponService := service.NewCouponService(pool, couponRepo, redemptionRepo, serviceRepo)
	bookingService := service.NewBookingService(pool, bookingRepo, couponRepo, redemptionRepo, serviceRepo)
	resetService := service.NewResetService(pool, couponRepo, redemptionRepo)
	catalogService := service.NewCatalogService(serviceRepo)
	authService := service.NewAuthService(cfg.Auth)

	// Handlers
	couponHandler := handler.NewCouponHandler(couponService, validate)
	validateHandler := handler.NewValidateHandler(couponService, validate)
	bookingHandler := handler.NewBookingHandler(bookingService, validate)
	redemptionHandler := handler.NewRedemptionHandler(couponService, resetService, validate)
	catalogHandler := handler.NewCatalogHandler(catalogService, validate)
	authHandler := handler.NewAuthHandler(authService, validate)
	healthHandler := handler.NewHealthHandler(pool)

	app.Get("/health", healthHandler.Check)

	// Public routes
	app.Post("/api/admin/login", authHandler.Login)
	app.Post("/api/coupons/validate", validateHandler.ValidateCoupon)
	app.Post("/api/bookings", bookingHandler.CreateBooking)
	app.Get("/api/services", catalogHandler.ListServices)
	app.Get("/api/services/:id", catalogHandler.GetService)

	// Admin routes
	admin := app.Group("/api", middleware.AdminAuth(authService))
	admin.Post("/coupons", couponHandler.CreateCoupon)
	admin.Get("/coupons", couponHandler.ListCoupons)
	admin.Get("/coupons/:code", couponHandler.GetCoupon)
	admin.Patch("/coupons/:code/status", couponHandler.UpdateCouponStatus)
	admin.Delete("/coupons/:code/permanent", couponHandler.PermanentDeleteCoupon)
	admin.Delete("/coupons/:code", couponHandler.DeleteCoupon)
	admin.Post("/services", catalogHandler.CreateService)
	admin.Put("/services/:id", catalogHandler.UpdateService)
	admin.Delete("/services/:id", catalogHandler.DeleteService)
	admin.Get("/bookings", bookingHandler.ListBookings)
	admin.Get("/redemptions", redemptionHandler.ListRedemptions)
	admin.Get("/redemptions/count", redemptionHandler.GetRedemptionCount)
	admin.Get("/redemptions/resets", redemptionHandler.ListResets)
	admin.Post("/redemptions/reset", redemptionHandler.ResetRedemptions)

	// Start server with graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	log.Info().Int("timeout_seconds", cfg.Server.ShutdownTimeout).Msg("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	log.Info().Msg("waiting for in-flight requests to complete...")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	// Close database pool AFTER server shutdown (even if shutdown timed out)
	log.Info().Msg("closing database connections...")
	pool.Close()
	log.Info().Msg("database connections closed")
	log.Info().Msg("server stopped")
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Log.Pretty {
		// Human-readable output for development
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		// JSON output for production
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
