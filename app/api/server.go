package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/newsdeck/app/cfg"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware, the UI is served from a different origin
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	r.POST("/chat", handler.Chat)
	r.POST("/generate-summary", handler.GenerateSummary)

	api := r.Group("/api")
	{
		api.GET("/news", handler.GetNews)
		api.POST("/podcast/generate", handler.GeneratePodcast)
		api.GET("/podcast/voices", handler.ListVoices)
		api.GET("/podcast/stream/:filename", handler.StreamPodcast)
		api.GET("/podcast/download/:filename", handler.DownloadPodcast)
	}

	r.GET("/health", handler.GetHealth)

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "NewsDeck",
			"version":     cfg.Get().Version,
			"description": "Chat and news assistant backend with podcast generation",
			"endpoints": map[string]string{
				"chat":     "/chat (POST)",
				"news":     "/api/news?q=<query>",
				"summary":  "/generate-summary (POST)",
				"podcast":  "/api/podcast/generate (POST)",
				"voices":   "/api/podcast/voices",
				"stream":   "/api/podcast/stream/<filename>",
				"download": "/api/podcast/download/<filename>",
				"health":   "/health",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
