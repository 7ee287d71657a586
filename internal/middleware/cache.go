package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/campus-api/internal/service"
)

// InvalidateStats drops cached dashboard payloads after a successful write to
// any of the tables the dashboard aggregates. Read requests and failed writes
// leave the cache alone. Invalidation failures are logged by the cache layer.
func InvalidateStats(dashboards *service.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if dashboards == nil {
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		_ = dashboards.Refresh(c.Request.Context())
	}
}
