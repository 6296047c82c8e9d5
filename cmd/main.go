package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/FrankoSolomun/movie-watchlist/internal/config"
	"github.com/FrankoSolomun/movie-watchlist/internal/database"
	"github.com/FrankoSolomun/movie-watchlist/internal/handler"
	"github.com/FrankoSolomun/movie-watchlist/internal/middleware"
	"github.com/FrankoSolomun/movie-watchlist/internal/repository"
	"github.com/FrankoSolomun/movie-watchlist/internal/service"
	"github.com/FrankoSolomun/movie-watchlist/internal/tmdb"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Calendar days are compared in the viewer's timezone
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Warn("unknown timezone, falling back to local", "timezone", cfg.Timezone, "error", err)
		loc = time.Local
	}

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (non-fatal if unavailable)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache and rate limiting", "error", err)
	}

	// Initialize TMDB client
	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL)

	// Initialize layers
	watchlistRepo := repository.NewWatchlistRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	userRepo := repository.NewUserRepository(db)

	watchlistSvc := service.NewWatchlistService(watchlistRepo, loc)
	commentSvc := service.NewCommentService(commentRepo)
	catalogSvc := service.NewCatalogService(tmdbClient, rdb)
	userSvc := service.NewUserService(userRepo)

	watchlistH := handler.NewWatchlistHandler(watchlistSvc)
	commentH := handler.NewCommentHandler(commentSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	userH := handler.NewUserHandler(userSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Movie Watchlist",
		ServerHeader: "Movie-Watchlist",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	rateLimiter := middleware.NewRateLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.WindowSeconds)
	app.Use(rateLimiter.Handler())

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	auth := middleware.Auth()

	// API routes
	api := app.Group("/api/v1")
	api.Get("/health", catalogH.Health)

	// Catalog (public, read-only)
	api.Get("/movies/search", catalogH.Search)
	api.Get("/movies/popular", catalogH.Popular)
	api.Get("/movies/top-rated", catalogH.TopRated)
	api.Get("/movies/genres", catalogH.Genres)
	api.Get("/movies/genre/:genreId", catalogH.ByGenre)
	api.Get("/movies/recommendations", catalogH.Recommendations)
	api.Get("/movies/:id", catalogH.Detail)

	// Comments
	api.Get("/movies/:id/comments", commentH.List)
	api.Post("/movies/:id/comments", commentH.Create, auth)
	api.Put("/comments/:id", commentH.Update, auth)
	api.Delete("/comments/:id", commentH.Delete, auth)

	// Users
	api.Post("/users", userH.CreateUser)
	api.Get("/users/:id", userH.GetUser, auth)

	// Watchlist (all owner-scoped)
	wl := api.Group("/watchlist", auth)
	wl.Get("/", watchlistH.List)
	wl.Post("/", watchlistH.Add)
	wl.Get("/upcoming", watchlistH.Upcoming)
	wl.Get("/by-date", watchlistH.ByDate)
	wl.Get("/watched-dates", watchlistH.WatchedDates)
	wl.Post("/:movieId/schedule", watchlistH.Schedule)
	wl.Post("/:movieId/unmark", watchlistH.Unmark)
	wl.Put("/:movieId/rating", watchlistH.Rate)
	wl.Delete("/:movieId", watchlistH.Remove)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down movie watchlist service...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting movie watchlist service", "addr", addr, "timezone", loc.String())
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
