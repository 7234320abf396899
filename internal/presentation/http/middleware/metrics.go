package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver records finished requests. *metrics.Metrics satisfies it.
type RequestObserver interface {
	ObserveRequest(method, path, status string, seconds float64)
}

// MetricsMiddleware reports every request under its route pattern, so ids do not explode label cardinality.
func MetricsMiddleware(obs RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		obs.ObserveRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
