// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/SumitDutta007/Social-Media-Backend/internal/cache"
	"github.com/SumitDutta007/Social-Media-Backend/internal/config"
	"github.com/SumitDutta007/Social-Media-Backend/internal/database"
	"github.com/SumitDutta007/Social-Media-Backend/internal/middleware"
	"github.com/SumitDutta007/Social-Media-Backend/internal/models"
	"github.com/SumitDutta007/Social-Media-Backend/internal/repository"
	"github.com/SumitDutta007/Social-Media-Backend/internal/service"
	"github.com/SumitDutta007/Social-Media-Backend/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// RelationshipManager maintains the mirrored follow edge between two users.
type RelationshipManager interface {
	Follow(ctx context.Context, actorID, targetID uint) error
	Unfollow(ctx context.Context, actorID, targetID uint) error
}

// TimelineComposer builds ordered post feeds.
type TimelineComposer interface {
	ComposeTimeline(ctx context.Context, userID uint) ([]models.Post, error)
	ComposeProfileFeed(ctx context.Context, username string) ([]models.Post, error)
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	relationships  RelationshipManager
	timeline       TimelineComposer
	userService    *service.UserService
	postService    *service.PostService
	media          storage.Storage
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	media, err := storage.NewLocalStorage(cfg.UploadDir+"/posts", "/images/posts")
	if err != nil {
		return nil, fmt.Errorf("media storage init failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, cache.GetClient(), media)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, media storage.Storage) (*Server, error) {
	timeout := cfg.StoreTimeout()
	userRepo := repository.NewUserRepository(db, timeout)
	postRepo := repository.NewPostRepository(db, timeout)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("social-media-api"),
		userRepo:       userRepo,
		postRepo:       postRepo,
		relationships:  service.NewRelationshipService(db, timeout),
		timeline:       service.NewTimelineService(userRepo, postRepo),
		userService:    service.NewUserService(userRepo),
		postService:    service.NewPostService(postRepo, userRepo),
		media:          media,
	}

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Distributed tracing spans (before context middleware so traceID lands in locals)
	app.Use(middleware.TracingMiddleware())

	// Context middleware to propagate request ID, user ID and trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
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

	// Uploaded media
	app.Static("/images", s.config.UploadDir)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// User routes. Specific paths must be declared before /:id routes.
	users := api.Group("/users")
	users.Get("/", cache.Page(cache.SearchTTL), s.GetUser)
	users.Get("/search", middleware.RateLimit(
		s.redis, 10, time.Minute, "user_search"), cache.Page(cache.SearchTTL), s.SearchUsers)
	users.Get("/all", s.AuthRequired(), s.AdminRequired(), s.GetAllUsers)
	users.Get("/friends/:userId", s.GetFriends)
	users.Put("/:id/follow", s.AuthRequired(), s.FollowUser)
	users.Put("/:id/unfollow", s.AuthRequired(), s.UnfollowUser)
	users.Put("/:id", s.AuthRequired(), s.SelfOrAdmin("id"), s.UpdateUser)
	users.Delete("/:id", s.AuthRequired(), s.SelfOrAdmin("id"), s.DeleteUser)

	// Post routes. Timeline/profile/search before the generic /:id routes.
	posts := api.Group("/posts")
	posts.Get("/timeline/all/:userId", cache.Page(cache.TimelineTTL), s.GetTimeline)
	posts.Get("/profile/:username", cache.Page(cache.ProfileTTL), s.GetProfileFeed)
	posts.Get("/search", middleware.RateLimit(
		s.redis, 10, time.Minute, "post_search"), cache.Page(cache.SearchTTL), s.SearchPosts)
	posts.Post("/", s.AuthRequired(), s.CreatePost)
	posts.Put("/:id/like", s.AuthRequired(), s.LikePost)
	posts.Get("/:id", cache.Page(cache.PostTTL), s.GetPost)
	posts.Put("/:id", s.AuthRequired(), s.UpdatePost)
	posts.Delete("/:id", s.AuthRequired(), s.DeletePost)

	// Media upload
	api.Post("/upload", s.AuthRequired(), s.UploadFile)
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

	// The cache is an optional capability; absence degrades reads, it does
	// not make the service unready.
	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
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

// Shutdown releases server-held resources.
func (s *Server) Shutdown(_ context.Context) error {
	cache.Close()
	if sqlDB, err := s.db.DB(); err == nil {
		return sqlDB.Close()
	}
	return nil
}
