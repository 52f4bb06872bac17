package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewRouter configures the Gin router with middlewares and routes.
func NewRouter(logger *zap.Logger, detectH *DetectHandler) *gin.Engine {
	r := gin.New()

	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery())

	// Wide open on purpose: the API backs a public read-only widget.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Length", "Content-Type", "Accept", "Authorization"},
	}))

	r.GET("/", detectH.Health)
	r.POST("/tnved/detect", detectH.Detect)

	return r
}

// requestIDMiddleware tags every request with a uuid for log
// correlation and echoes it back to the caller.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// zapLoggerMiddleware creates a simple logging middleware with zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}
