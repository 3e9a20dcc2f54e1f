package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/llm-service/logging"
)

// StatsMiddleware tracks visitors and per-endpoint request statistics
func StatsMiddleware(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		stats.TrackVisitor(c.ClientIP())

		c.Next()

		stats.TrackRequest(endpoint(c), time.Since(start), c.Writer.Status() >= 400)

		// Forget stale visitors every 1000 requests
		if stats.TotalRequests()%1000 == 0 {
			go stats.PruneVisitors(24 * time.Hour)
		}
	}
}

// endpoint names the matched route, not the raw URL, so unknown paths do not
// grow the statistics.
func endpoint(c *gin.Context) string {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	return c.Request.Method + " " + route
}
