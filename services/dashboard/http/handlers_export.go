package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/ctxlog"

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/dashboard"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/present"
)

// handleChart returns the trend chart of the current selection as PNG.
// GET /chart.png
func (s *Server) handleChart(c *gin.Context) {
	ctx, cancel := s.requestContext(c)
	defer cancel()

	view := dashboard.Render(s.table, currentSession(c), selection(c))

	var buf bytes.Buffer
	if err := present.RenderChart(&buf, view.ChartInput(), s.font); err != nil {
		ctxlog.From(ctx).Error("failed to render chart", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := ctx.Err(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// handleExport downloads the displayed rows in format f.
// GET /export.csv, /export.xlsx, /export.parquet
func (s *Server) handleExport(f present.ExportFormat) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := s.requestContext(c)
		defer cancel()

		view := dashboard.Render(s.table, currentSession(c), selection(c))

		var buf bytes.Buffer
		if err := present.Export(&buf, f, view.Rows); err != nil {
			ctxlog.From(ctx).Error("failed to export", "format", string(f), "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := ctx.Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, f.FileName()))
		c.Data(http.StatusOK, f.ContentType(), buf.Bytes())
	}
}
