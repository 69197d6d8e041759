package middleware

import (
	"time"

	"gamestore-backend/internal/metrics"

	"github.com/gin-gonic/gin"
)

// RequestTiming records latency and status per matched route
func RequestTiming(recorder *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		recorder.ObserveRequest(c.FullPath(), c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
