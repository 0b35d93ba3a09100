package restapi

import (
	"net/http"
	"time"

	"nft_aggregator/internal/app/port"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RequestLogger пишет одну строку лога на каждый запрос.
func RequestLogger(logger port.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"source", c.Writer.Header().Get("X-Source"),
		)
	}
}

// SetupRouter настраивает и возвращает экземпляр Gin роутера.
// An empty allowedOrigins list allows every origin.
func SetupRouter(h *NFTHandler, logger port.Logger, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsConfig.ExposeHeaders = []string{"X-Source", "X-Degraded"}
	router.Use(cors.New(corsConfig))

	// Группа для API v1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/collections", h.GetCollections)
		v1.GET("/collections/:id", h.GetCollection)
		v1.GET("/collections/:id/items", h.GetItems)
		v1.GET("/collections/:id/traits", h.GetTraits)
		v1.GET("/collections/:id/stats", h.GetStats)
		v1.GET("/collections/:id/activity", h.GetActivity)
		v1.GET("/collections/:id/overview", h.GetOverview)
		v1.GET("/items/:address", h.GetItem)
		v1.GET("/search", h.Search)
	}

	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
