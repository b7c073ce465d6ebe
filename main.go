package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"

	"vivaha-be/internal/cache"
	"vivaha-be/internal/config"
	"vivaha-be/internal/controllers"
	"vivaha-be/internal/database"
	"vivaha-be/internal/email"
	"vivaha-be/internal/entities"
	"vivaha-be/internal/jwt"
	"vivaha-be/internal/llm"
	"vivaha-be/internal/logger"
	"vivaha-be/internal/middleware"
	"vivaha-be/internal/repository"
	"vivaha-be/internal/service"
	"vivaha-be/internal/telemetry"
	"vivaha-be/internal/yelp"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	shutdownTracing, err := telemetry.Setup(cfg.ServiceName, cfg.TracingStdout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up tracing")
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close() // Close connection when program exits

	// Run database migrations
	if err := database.RunMigrations(db, logger.Component(log, "migrations")); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to Redis. Continuing without cache.")
			cacheClient = nil
		} else {
			log.Info().Msg("Connected to Redis cache")
			defer cacheClient.Close()
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	weddingRepo := repository.NewWeddingRepository(db)
	shareLinkRepo := repository.NewShareLinkRepository(db)
	tripRepo := repository.NewBachelorTripRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTL)*time.Hour,
	)

	llmClient := llm.NewClient(llm.Config{
		APIKey:   cfg.GroqAPIKey,
		Endpoint: cfg.GroqEndpoint,
		Model:    cfg.GroqModel,
		Timeout:  cfg.AITimeout,
	}, logger.Component(log, "llm"))
	if !llmClient.Configured() {
		log.Warn().Msg("GROQ_API_KEY not set. AI endpoints will answer 500.")
	}

	yelpClient := yelp.NewClient(yelp.Config{
		APIKey:   cfg.YelpAPIKey,
		Endpoint: cfg.YelpEndpoint,
	}, logger.Component(log, "yelp"))
	if !yelpClient.Configured() {
		log.Warn().Msg("YELP_API_KEY not set. Vendor search will return no businesses.")
	}

	var mailer service.WelcomeSender
	sender := email.NewSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppURL, logger.Component(log, "email"))
	if sender.Configured() {
		mailer = sender
	} else {
		log.Warn().Msg("RESEND_API_KEY not set. Welcome emails are disabled.")
	}

	// Initialize services
	weddingService := service.NewWeddingService(weddingRepo)
	svc := services{
		ai:         service.NewAIService(llmClient, cacheClient, logger.Component(log, "ai")),
		auth:       service.NewAuthService(userRepo, jwtService, mailer, logger.Component(log, "auth")),
		onboarding: service.NewOnboardingService(userRepo, weddingService),
		wedding:    weddingService,
		guests:     service.NewGuestService(weddingRepo),
		budget:     service.NewBudgetService(weddingRepo),
		todos:      service.NewTodoService(weddingRepo),
		vendors:    service.NewVendorService(weddingRepo),
		seating:    service.NewSeatingService(weddingRepo),
		search:     service.NewVendorSearchService(yelpClient, cacheClient, logger.Component(log, "vendors")),
		sharing:    service.NewSharingService(shareLinkRepo, weddingService, cacheClient, cfg.ClientURL, logger.Component(log, "sharing")),
		admin:      service.NewAdminService(userRepo),
		trip:       service.NewBachelorTripService(tripRepo),
		attendees:  service.NewTripAttendeeService(tripRepo),
		expenses:   service.NewTripExpenseService(tripRepo),
		flights:    service.NewTripFlightService(tripRepo),
		stays:      service.NewTripStayService(tripRepo),
	}

	// Initialize rate limiters
	limiters := rateLimiters{
		general: middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		auth:    middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst),
		ai:      middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAIRPS), cfg.RateLimitAIBurst),
	}
	defer limiters.stop()

	router := newRouter(cfg, log, jwtService, svc, limiters)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Tracer shutdown failed")
	}
}

type services struct {
	ai         service.AIService
	auth       service.AuthService
	onboarding service.OnboardingService
	wedding    service.WeddingService
	guests     service.CollectionService[entities.Guest]
	budget     service.CollectionService[entities.BudgetCategory]
	todos      service.CollectionService[entities.Todo]
	vendors    service.CollectionService[entities.Vendor]
	seating    service.CollectionService[entities.SeatingTable]
	search     service.VendorSearchService
	sharing    service.SharingService
	admin      service.AdminService
	trip       service.BachelorTripService
	attendees  service.CollectionService[entities.TripAttendee]
	expenses   service.CollectionService[entities.TripExpense]
	flights    service.CollectionService[entities.TripFlight]
	stays      service.CollectionService[entities.TripStay]
}

type rateLimiters struct {
	general *middleware.RateLimiter
	auth    *middleware.RateLimiter
	ai      *middleware.RateLimiter
}

func (l rateLimiters) stop() {
	l.general.Stop()
	l.auth.Stop()
	l.ai.Stop()
}

func newRouter(cfg *config.Config, log zerolog.Logger, jwtService *jwt.JWTService, svc services, limiters rateLimiters) *gin.Engine {
	// Initialize controllers
	aiController := controllers.NewAIController(svc.ai)
	authController := controllers.NewAuthController(svc.auth)
	onboardingController := controllers.NewOnboardingController(svc.onboarding)
	weddingController := controllers.NewWeddingController(svc.wedding)
	sharingController := controllers.NewSharingController(svc.sharing)
	qrcodeController := controllers.NewQRCodeController(svc.sharing)
	adminController := controllers.NewAdminController(svc.admin)
	vendorSearchController := controllers.NewVendorSearchController(svc.search)
	tripController := controllers.NewBachelorTripController(svc.trip)

	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(cfg.ServiceName), middleware.RequestLogger(logger.Component(log, "http")))

	api := router.Group("/api")

	// Health check endpoint (no rate limiting)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Vivaha API is running",
		})
	})

	// AI proxy with the strictest rate limiting
	ai := api.Group("/ai")
	ai.Use(limiters.ai.LimitMiddleware())
	{
		ai.POST("/chat", aiController.Chat)
		ai.POST("/budget-suggestions", aiController.BudgetSuggestions)
	}

	// Auth routes with stricter rate limiting
	auth := api.Group("/auth")
	auth.Use(limiters.auth.LimitMiddleware())
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/me", middleware.AuthMiddleware(jwtService), authController.Me)
	}

	general := api.Group("")
	general.Use(limiters.general.LimitMiddleware())

	// Public share routes
	general.GET("/sharing/access/:token", sharingController.Shared)
	general.GET("/shared/:token", sharingController.Shared)
	general.GET("/sharing/:token/qrcode", qrcodeController.GenerateQRCode)

	// Protected routes - require JWT authentication
	protected := general.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/onboarding", onboardingController.Get)
		protected.POST("/onboarding", onboardingController.Save)
		protected.PUT("/onboarding", onboardingController.Save)
		protected.GET("/onboarding/bachelor-party", onboardingController.BachelorParty)
		protected.POST("/onboarding/bachelor-party", onboardingController.SelectBachelorParty)

		protected.GET("/wedding", weddingController.Get)
		protected.PUT("/wedding", weddingController.Update)
		protected.DELETE("/wedding", weddingController.Delete)
		protected.GET("/wedding/summary", weddingController.Summary)

		controllers.NewCollectionController(svc.guests, "Guest").Mount(protected.Group("/guests"))
		controllers.NewCollectionController(svc.budget, "Budget category").Mount(protected.Group("/budget"))
		controllers.NewCollectionController(svc.todos, "Todo").Mount(protected.Group("/todos"))
		protected.GET("/vendors/search", vendorSearchController.Search)
		controllers.NewCollectionController(svc.vendors, "Vendor").Mount(protected.Group("/vendors"))
		controllers.NewCollectionController(svc.seating, "Table").Mount(protected.Group("/seating"))

		trip := protected.Group("/bachelor-trip")
		trip.GET("", tripController.Get)
		trip.POST("/create", tripController.Plan)
		trip.DELETE("", tripController.Delete)
		trip.PUT("/expenses/:id/paid", tripController.MarkPaid)
		controllers.NewCollectionController(svc.attendees, "Attendee").Mount(trip.Group("/attendees"))
		controllers.NewCollectionController(svc.expenses, "Expense").Mount(trip.Group("/expenses"))
		controllers.NewCollectionController(svc.flights, "Flight").Mount(trip.Group("/flights"))
		controllers.NewCollectionController(svc.stays, "Stay").Mount(trip.Group("/stays"))

		protected.POST("/sharing/generate", sharingController.Generate)
		protected.GET("/sharing/links", sharingController.List)
		protected.DELETE("/sharing/:token", sharingController.Revoke)

		protected.GET("/admin/users", middleware.RequireAdmin(svc.admin), adminController.ListUsers)
	}

	return router
}
