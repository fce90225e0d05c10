package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/dashboard"
)

func (s *Server) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if s.cfg.RequestTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout)
}

// handleHealth reports liveness and the size of the loaded table.
// GET /healthz
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"rows":   s.table.Len(),
	})
}

// handleV1Dashboard returns the rendered view as JSON
// GET /api/v1/dashboard
func (s *Server) handleV1Dashboard(c *gin.Context) {
	ctx, cancel := s.requestContext(c)
	defer cancel()

	view := dashboard.Render(s.table, currentSession(c), selection(c))
	if err := ctx.Err(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": view,
		"meta": gin.H{
			"count": len(view.Rows),
		},
	})
}
