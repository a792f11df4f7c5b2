package middlewares

import (
	"strconv"
	"time"

	appmetrics "bitbucket.org/mmdatafocus/mis_backend/prometheus"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request count and duration per route.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()

		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		appmetrics.HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
		appmetrics.HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
	}
}
