package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/mamadbah2/aquafarm/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(webhook *handlers.WebhookHandler, ponds *handlers.PondHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", handlers.Health)
	r.GET("/webhook", webhook.Verify)
	r.POST("/webhook", webhook.Receive)
	r.POST("/send-message", webhook.SendMessage)

	r.GET("/ponds", ponds.List)
	pond := r.Group("/ponds/:id")
	{
		pond.PUT("", ponds.Save)
		pond.GET("/overview", ponds.Overview)
		pond.GET("/status", ponds.Status)
		pond.GET("/cycles", ponds.Cycles)
		pond.GET("/feed-status", ponds.FeedStatus)
		pond.GET("/appetite", ponds.Appetite)
		pond.GET("/harvest-prediction", ponds.HarvestPrediction)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

// WithCORS lets browser dashboards on the allowed origins read the pond API.
func WithCORS(h http.Handler, origins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         600,
	}).Handler(h)
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
