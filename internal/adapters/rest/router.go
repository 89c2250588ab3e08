// internal/adapters/rest/router.go
package rest

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mahabubulhasibshawon/rider-tracker/internal/logger"
)

// NewRouter wires the REST gateway under /api/v1. An origin of "*" allows
// any origin without credentials.
func NewRouter(h *Handler, log logger.Logger, env string, origins []string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggerMiddleware(log))
	r.Use(cors.New(corsConfig(origins)))

	r.GET("/healthz", h.Health)
	r.GET("/readyz", h.Ready)

	v1 := r.Group("/api/v1")
	v1.POST("/auth/signup", h.Signup)
	v1.POST("/auth/login", h.Login)

	private := v1.Group("")
	private.Use(AuthMiddleware(h.auth))
	private.POST("/auth/logout", h.Logout)
	private.GET("/profile", h.GetProfile)
	private.PUT("/profile", h.UpdateProfile)
	private.PUT("/profile/target", h.UpdateDailyTarget)
	private.POST("/deliveries", h.StartDelivery)
	private.GET("/deliveries", h.ListDeliveries)
	private.GET("/deliveries/:id", h.GetDelivery)
	private.POST("/deliveries/:id/complete", h.CompleteDelivery)
	private.POST("/deliveries/:id/cancel", h.CancelDelivery)
	private.GET("/progress", h.GetProgress)
	private.GET("/achievements", h.ListAchievements)
	private.POST("/achievements", h.MarkAchievement)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
