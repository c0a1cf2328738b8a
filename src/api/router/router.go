package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/stake-plus/nameguard/src/api/handlers"
	"github.com/stake-plus/nameguard/src/api/middleware"
	"github.com/stake-plus/nameguard/src/config"
	"github.com/stake-plus/nameguard/src/logging"
	"github.com/stake-plus/nameguard/src/records"
)

// New builds the admin API engine.
func New(cfg config.APIConfig, store records.Store, db handlers.Pinger, logger *logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.TraceHeader},
			ExposeHeaders: []string{"Content-Length", middleware.TraceHeader},
		}))
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
	}
	Attach(r, store, db, []byte(cfg.JWTSecret), limiter)
	return r
}

// Attach registers the routes. limiter may be nil.
func Attach(r *gin.Engine, store records.Store, db handlers.Pinger, secret []byte, limiter *middleware.RateLimiter) {
	health := handlers.Health{DB: db}
	recs := handlers.Records{Store: store}

	r.GET("/healthz", health.Check)

	v1 := r.Group("/v1")
	{
		secured := v1.Group("", middleware.JWT(secret))
		if limiter != nil {
			secured.Use(middleware.RateLimit(limiter))
		}
		secured.GET("/servers/:server/records/:type", recs.List)
		secured.POST("/servers/:server/records", recs.Create)
		secured.DELETE("/servers/:server/records/:type/:object", recs.Delete)
	}
}
