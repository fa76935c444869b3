package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"docuvault/metrics"
)

// Metrics records request counts, latency and in-flight gauge per route.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.RequestInFlight.Inc()
		c.Next()
		m.RequestInFlight.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RequestTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
