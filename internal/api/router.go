package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/criticalsnake/tracks-backend-go/internal/config"
	"github.com/criticalsnake/tracks-backend-go/internal/handler"
	"github.com/criticalsnake/tracks-backend-go/internal/middleware"
	"github.com/criticalsnake/tracks-backend-go/internal/service"
)

// SetupRouter wires the HTTP routes
func SetupRouter(cfg *config.Config, trackService *service.TrackService, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Track reconstruction API is running",
		})
	})

	trackHandler := handler.NewTrackHandler(trackService)
	snapshotHandler := handler.NewSnapshotHandler(trackService)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(limiter))
	{
		tracks := api.Group("/tracks")
		{
			tracks.GET("", trackHandler.GetTracks)
			tracks.GET("/geojson", trackHandler.GetGeoJSON)
			tracks.POST("/reconstruct", trackHandler.Reconstruct)
		}

		snapshots := api.Group("/snapshots")
		{
			snapshots.GET("/count", snapshotHandler.Count)
			snapshots.POST("", middleware.Auth(cfg.JWTSecret), snapshotHandler.Create)
		}
	}

	return r
}
