package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/service"
)

const unmatchedRoute = "unmatched"

// Metrics times every request except scrapes of scrapePath, labelling the
// observation by the matched route template so NISNs and download tokens in
// the URL do not grow the label set. Requests that match no route share one
// label.
func Metrics(metricsSvc *service.MetricsService, scrapePath string) gin.HandlerFunc {
	if metricsSvc == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.URL.Path == scrapePath {
			c.Next()
			return
		}

		done := metricsSvc.TrackInFlight()
		defer done()

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
