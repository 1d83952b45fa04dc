// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"log"
	"time"

	_ "foodgram/docs" // swagger docs
	"foodgram/internal/cache"
	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/middleware"
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo         repository.UserRepository
	tagRepo          repository.TagRepository
	ingredientRepo   repository.IngredientRepository
	recipeRepo       repository.RecipeRepository
	followRepo       repository.FollowRepository
	shoppingListRepo repository.ShoppingListRepository

	userService         *service.UserService
	tagService          *service.TagService
	ingredientService   *service.IngredientService
	recipeService       *service.RecipeService
	followService       *service.FollowService
	shoppingListService *service.ShoppingListService
	imageService        *service.ImageService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	server := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   middleware.InitMetrics("foodgram-api"),
		userRepo:         repository.NewUserRepository(db),
		tagRepo:          repository.NewTagRepository(db),
		ingredientRepo:   repository.NewIngredientRepository(db),
		recipeRepo:       repository.NewRecipeRepository(db),
		followRepo:       repository.NewFollowRepository(db),
		shoppingListRepo: repository.NewShoppingListRepository(db),
	}

	server.imageService = service.NewImageService(cfg)
	server.userService = service.NewUserService(server.userRepo, server.followRepo)
	server.tagService = service.NewTagService(server.tagRepo)
	server.ingredientService = service.NewIngredientService(server.ingredientRepo)
	server.recipeService = service.NewRecipeService(
		server.recipeRepo,
		server.tagRepo,
		server.ingredientRepo,
		server.followRepo,
		server.imageService,
		server.isAdminByUserID,
	)
	server.followService = service.NewFollowService(server.followRepo, server.userRepo, server.recipeRepo)
	server.shoppingListService = service.NewShoppingListService(server.shoppingListRepo, server.userRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Foodgram Backend Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Stored recipe images
	app.Static("/media", s.config.MediaDir)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// User routes. Specific paths before the generic /:id.
	users := api.Group("/users")
	users.Get("/", middleware.AuthOptional, s.GetUsers)
	users.Get("/me", middleware.AuthRequired, s.GetMyProfile)
	users.Post("/set_password", middleware.AuthRequired, s.SetPassword)
	users.Get("/subscriptions", middleware.AuthRequired, s.GetSubscriptions)
	users.Post("/:id/subscribe", middleware.AuthRequired, s.Subscribe)
	users.Delete("/:id/subscribe", middleware.AuthRequired, s.Unsubscribe)
	users.Get("/:id", middleware.AuthOptional, s.GetUserProfile)

	// Tag catalog
	tags := api.Group("/tags")
	tags.Get("/", s.GetTags)
	tags.Post("/", middleware.AuthRequired, s.AdminRequired(), s.CreateTag)
	tags.Get("/:id", s.GetTag)

	// Ingredient catalog
	ingredients := api.Group("/ingredients")
	ingredients.Get("/", s.GetIngredients)
	ingredients.Get("/:id", s.GetIngredient)

	// Recipe routes. download_shopping_cart must precede the generic /:id.
	recipes := api.Group("/recipes")
	recipes.Get("/", middleware.AuthOptional, s.GetRecipes)
	recipes.Post("/", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 10, time.Minute, "create_recipe"), s.CreateRecipe)
	recipes.Get("/download_shopping_cart", middleware.AuthRequired, s.DownloadShoppingCart)
	recipes.Post("/:id/favorite", middleware.AuthRequired, s.FavoriteRecipe)
	recipes.Delete("/:id/favorite", middleware.AuthRequired, s.UnfavoriteRecipe)
	recipes.Post("/:id/shopping_cart", middleware.AuthRequired, s.AddToShoppingCart)
	recipes.Delete("/:id/shopping_cart", middleware.AuthRequired, s.RemoveFromShoppingCart)
	recipes.Get("/:id", middleware.AuthOptional, s.GetRecipe)
	recipes.Patch("/:id", middleware.AuthRequired, s.UpdateRecipe)
	recipes.Put("/:id", middleware.AuthRequired, s.UpdateRecipe)
	recipes.Delete("/:id", middleware.AuthRequired, s.DeleteRecipe)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// The cache is optional; its absence degrades but does not break the API.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		admin, err := s.isAdminByUserID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}
		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Foodgram API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
