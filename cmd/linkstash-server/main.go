package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"linkstash/pkg/linkstash/auth"
	"linkstash/pkg/linkstash/categories"
	"linkstash/pkg/linkstash/config"
	"linkstash/pkg/linkstash/dashboard"
	"linkstash/pkg/linkstash/database"
	"linkstash/pkg/linkstash/importexport"
	"linkstash/pkg/linkstash/links"
	"linkstash/pkg/linkstash/metadata"
	"linkstash/pkg/linkstash/models"
	"linkstash/pkg/linkstash/reminders"
	"linkstash/pkg/linkstash/tags"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.Connect(cfg.DBPath)
	if err != nil {
		slog.Error("failed to connect to database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}

	if err := models.AutoMigrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations completed", "path", cfg.DBPath)

	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "linkstash",
			})
		})

		// Auth routes (public)
		authHandler := auth.NewHandler(db)
		authHandler.RegisterRoutes(api.Group("/auth"))

		// Everything below requires a valid token
		protected := api.Group("", auth.AuthMiddleware())

		authHandler.RegisterUserRoutes(protected)
		links.NewHandler(db).RegisterRoutes(protected)
		categories.NewHandler(db).RegisterRoutes(protected)
		tags.NewHandler(db).RegisterRoutes(protected)
		reminders.NewHandler(db).RegisterRoutes(protected)
		dashboard.NewHandler(db).RegisterRoutes(protected)
		importexport.NewHandler(db).RegisterRoutes(protected)

		scraper := metadata.NewScraper(cfg.ScrapeTimeout)
		metadata.NewHandler(scraper).RegisterRoutes(protected)
	}

	slog.Info("starting linkstash server", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
