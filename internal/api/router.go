package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/roster-import-api/internal/config"
	"github.com/roster-import-api/internal/database"
	"github.com/roster-import-api/internal/service"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, db *database.DB, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	importHandler := NewImportHandler(services, cfg, log)

	// Health checks
	router.GET("/health", healthCheck)
	router.GET("/health/db", dbHealthCheck(db))

	// API v1
	v1 := router.Group("/v1")
	{
		imports := v1.Group("/imports")
		{
			imports.POST("", importHandler.CreateImport)
			imports.GET("/:run_id", importHandler.GetImportStatus)
			imports.GET("/:run_id/files/:kind", importHandler.DownloadFile)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "roster-import-api",
	})
}

// dbHealthCheck probes the member store and reports the server version
// and connection pool state.
func dbHealthCheck(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if err := db.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unreachable",
				"error":  err.Error(),
			})
			return
		}
		version, err := db.ServerVersion(ctx)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unreachable",
				"error":  err.Error(),
			})
			return
		}
		stats := db.Stats()
		c.JSON(http.StatusOK, gin.H{
			"status":  "connected",
			"version": version,
			"pool": gin.H{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
			},
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
