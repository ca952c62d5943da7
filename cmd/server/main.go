package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"cleanhome/internal/app"
	"cleanhome/internal/auth"
	"cleanhome/internal/config"
	"cleanhome/internal/handler"
	"cleanhome/internal/middleware"
	"cleanhome/internal/pricing"
	internalRedis "cleanhome/internal/redis"
	"cleanhome/internal/repository/postgres"
	"cleanhome/internal/service"
	"cleanhome/internal/wizard"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// New Relic first so the database and Redis clients get instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	if cfg.Database.RunMigrations {
		if err := app.RunMigrations(db, cfg.Database.MigrationsPath); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
		log.Printf("Migrations applied path=%s", cfg.Database.MigrationsPath)
	}

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 10*time.Minute)
	stopLimiter := make(chan struct{})
	go limiter.Run(stopLimiter)

	server := wireServer(db, redisClient, nrApp, limiter, cfg)

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	close(stopLimiter)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	db *sql.DB,
	redisClient *redis.Client,
	nrApp *newrelic.Application,
	limiter *middleware.RateLimiter,
	cfg *config.Config,
) *http.Server {
	// Redis stores.
	locationStore := internalRedis.NewLocationStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient, internalRedis.CacheTTLs{
		Availability: cfg.Booking.AvailabilityTTL,
		Catalog:      cfg.Booking.CatalogTTL,
		BadgeCounts:  cfg.Booking.BadgeCountsTTL,
	})
	draftStore := internalRedis.NewDraftStore(redisClient, cfg.Booking.DraftTTL)

	// Repositories.
	userRepo := postgres.NewUserRepository(db)
	addressRepo := postgres.NewAddressRepository(db)
	cleanerRepo := postgres.NewCleanerRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	transactor := postgres.NewTransactor(db)

	tokens := auth.NewTokenManager(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	// Services.
	notificationService := service.NewNotificationService()
	receiptService := service.NewReceiptService(notificationService)
	paymentService := service.NewPaymentService(paymentRepo, service.NewMockPSP())
	userService := service.NewUserService(userRepo, tokens)
	addressService := service.NewAddressService(addressRepo, cfg.Booking.Country)
	catalogService := service.NewCatalogService(catalogRepo, cacheStore)
	cleanerService := service.NewCleanerService(cleanerRepo, locationStore, cacheStore)
	availabilityService := service.NewAvailabilityService(cleanerRepo, bookingRepo, cacheStore)
	travelService := service.NewTravelService(locationStore, pricing.TravelPolicy{
		FreeRadiusKm: cfg.Travel.FreeRadiusKm,
		PerKm:        cfg.Travel.PerKm,
		MaxFee:       cfg.Travel.MaxFee,
	})
	bookingService := service.NewBookingService(service.BookingDeps{
		Transactor:    transactor,
		Bookings:      bookingRepo,
		Addresses:     addressRepo,
		Cleaners:      cleanerRepo,
		Catalog:       catalogService,
		Availability:  availabilityService,
		Travel:        travelService,
		Payments:      paymentService,
		Receipts:      receiptService,
		Notifications: notificationService,
		LockStore:     lockStore,
		CacheStore:    cacheStore,
	}, service.BookingConfig{
		Country: cfg.Booking.Country,
		LockTTL: cfg.Booking.LockTTL,
	})
	lifecycleService := service.NewLifecycleService(bookingService)
	wizardService := service.NewWizardService(
		draftStore,
		catalogService,
		addressRepo,
		availabilityService,
		bookingService,
		wizard.WithCountry(cfg.Booking.Country),
		wizard.WithLookupTimeout(cfg.Booking.LookupTimeout),
		wizard.WithSubmitTimeout(cfg.Booking.SubmitTimeout),
	)

	router := app.NewRouter(app.RouterDeps{
		UserHandler:    handler.NewUserHandler(userService),
		CatalogHandler: handler.NewCatalogHandler(catalogService, cleanerService),
		AddressHandler: handler.NewAddressHandler(addressService),
		CleanerHandler: handler.NewCleanerHandler(cleanerService, availabilityService),
		BookingHandler: handler.NewBookingHandler(bookingService, lifecycleService, receiptService),
		WizardHandler:  handler.NewWizardHandler(wizardService),
		Tokens:         tokens,
		RateLimiter:    limiter,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
