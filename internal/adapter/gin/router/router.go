package router

import (
	"net/http"
	"time"

	"usuarios-api/internal/adapter/gin/handler"
	"usuarios-api/internal/adapter/gin/middleware"
	"usuarios-api/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

// Options holds the cross-cutting HTTP settings of the router.
type Options struct {
	ServiceName        string
	CORSAllowedOrigins []string
	MetricsEnabled     bool
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	rateLimiter *middleware.RateLimiter,
	opts Options,
	log *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(logger.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(cors.New(corsConfig(opts.CORSAllowedOrigins)))

	if opts.MetricsEnabled {
		ginprometheus.NewPrometheus("usuarios").Use(router)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": opts.ServiceName,
		})
	})

	usuarios := router.Group("/usuarios")
	usuarios.Use(rateLimiter.Handler())
	{
		usuarios.POST("", userHandler.CreateUser)
		usuarios.GET("", userHandler.ListUsers)
		usuarios.POST("/verificar-correo", userHandler.VerifyEmail)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", logger.RequestIDHeader},
		ExposeHeaders: []string{logger.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
