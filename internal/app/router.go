package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"cleanhome/internal/auth"
	"cleanhome/internal/domain"
	"cleanhome/internal/handler"
	"cleanhome/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	UserHandler    *handler.UserHandler
	CatalogHandler *handler.CatalogHandler
	AddressHandler *handler.AddressHandler
	CleanerHandler *handler.CleanerHandler
	BookingHandler *handler.BookingHandler
	WizardHandler  *handler.WizardHandler
	Tokens         *auth.TokenManager
	RateLimiter    *middleware.RateLimiter
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins))
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}
	router.Use(middleware.MetricsMiddleware())
	if deps.RequestTimeout > 0 {
		router.Use(middleware.TimeoutMiddleware(deps.RequestTimeout))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")

	// Public routes. Limited per IP.
	public := v1.Group("")
	if deps.RateLimiter != nil {
		public.Use(middleware.RateLimitMiddleware(deps.RateLimiter))
	}
	{
		public.POST("/users/register", deps.UserHandler.Register)
		public.POST("/auth/login", deps.UserHandler.Login)
		public.POST("/auth/refresh", deps.UserHandler.Refresh)
		public.GET("/catalog", deps.CatalogHandler.GetCatalog)
		public.GET("/tier-rate-ranges", deps.CatalogHandler.TierRateRanges)
	}

	// Authenticated routes. Limited per user, replay-safe with Idempotency-Key.
	api := v1.Group("")
	api.Use(auth.Middleware(deps.Tokens))
	if deps.RateLimiter != nil {
		api.Use(middleware.RateLimitMiddleware(deps.RateLimiter))
	}
	api.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	api.GET("/users/me", deps.UserHandler.Me)

	addresses := api.Group("/addresses")
	{
		addresses.GET("", deps.AddressHandler.List)
		addresses.POST("", deps.AddressHandler.Create)
	}

	cleaners := api.Group("/cleaners")
	{
		cleaners.GET("/available", deps.CleanerHandler.Available)

		own := cleaners.Group("", auth.RequireRole(domain.RoleCleaner))
		own.PUT("/profile", deps.CleanerHandler.SetupProfile)
		own.GET("/profile", deps.CleanerHandler.GetProfile)
		own.POST("/location", deps.CleanerHandler.UpdateLocation)
	}

	bookings := api.Group("/bookings")
	{
		bookings.POST("", auth.RequireRole(domain.RoleCustomer), deps.BookingHandler.Create)
		bookings.GET("", deps.BookingHandler.List)
		bookings.GET("/counts", deps.BookingHandler.Counts)
		bookings.GET("/:id", deps.BookingHandler.Get)
		bookings.GET("/:id/receipt", deps.BookingHandler.Receipt)
		bookings.POST("/:id/confirm", deps.BookingHandler.Confirm)
		bookings.POST("/:id/start", deps.BookingHandler.Start)
		bookings.POST("/:id/complete", deps.BookingHandler.Complete)
		bookings.POST("/:id/cancel", deps.BookingHandler.Cancel)
		bookings.POST("/:id/no-show", deps.BookingHandler.NoShow)
	}

	drafts := api.Group("/wizard", auth.RequireRole(domain.RoleCustomer))
	{
		drafts.POST("", deps.WizardHandler.Start)
		drafts.GET("/:id", deps.WizardHandler.Get)
		drafts.PATCH("/:id", deps.WizardHandler.Select)
		drafts.DELETE("/:id", deps.WizardHandler.Discard)
		drafts.POST("/:id/add-ons/:addOnId/toggle", deps.WizardHandler.ToggleAddOn)
		drafts.POST("/:id/next", deps.WizardHandler.Next)
		drafts.POST("/:id/back", deps.WizardHandler.Back)
		drafts.POST("/:id/refresh", deps.WizardHandler.Refresh)
		drafts.POST("/:id/submit", deps.WizardHandler.Submit)
	}

	return router
}
