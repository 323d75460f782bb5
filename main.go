package main

import (
	"log"
	"time"

	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/config"
	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/handlers"
	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load config
	cfg := config.LoadConfig()

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Initialize services
	matchService := services.NewMatchService(cfg)
	defer matchService.Close()
	seriesService := services.NewSeriesService(cfg, matchService.RateLimiter())

	logrus.Info("Cricket scraping services initialized:")
	logrus.Infof("  - Upstream base URL: %s", cfg.CricbuzzBaseURL)
	logrus.Infof("  - Match data cache TTL: %v", cfg.GetCacheTTL())
	logrus.Infof("  - Headless fallback enabled: %v", cfg.EnableHeadlessFallback)

	// Initialize handlers
	matchHandler := handlers.NewMatchHandler(matchService)
	squadHandler := handlers.NewSquadHandler(matchService.SquadExtractor())
	seriesHandler := handlers.NewSeriesHandler(seriesService)

	// Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
			"metrics": fiber.Map{
				"match_service":  matchService.Metrics.Snapshot(),
				"series_service": seriesService.Metrics.Snapshot(),
			},
		})
	})

	// Routes
	api := app.Group("/api/cricbuzz")

	api.Get("/matchData/*", matchHandler.GetMatchData)
	api.Get("/ipl", seriesHandler.GetIPLMatches)
	api.Get("/squads/:matchId", squadHandler.GetSquads)
	api.Get("/debugSquads/*", squadHandler.DebugSquads)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
