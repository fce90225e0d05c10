package http

import (
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/present"
)

func (s *Server) registerRoutes() {
	// Probes stay outside the session middleware so they never mint sessions.
	s.engine.GET("/healthz", s.handleHealth)

	app := s.engine.Group("", s.sessionMiddleware())

	// Pages
	app.GET("/", s.handleIndex)
	app.POST("/login", s.handleLogin)
	app.POST("/logout", s.handleLogout)
	app.GET("/logo", s.handleLogo)

	// Artifacts of the current view, logged-in only
	auth := app.Group("", requireLogin())
	{
		auth.GET("/chart.png", s.handleChart)
		auth.GET("/export.csv", s.handleExport(present.CSVFormat))
		auth.GET("/export.xlsx", s.handleExport(present.XLSXFormat))
		auth.GET("/export.parquet", s.handleExport(present.ParquetFormat))
	}

	v1 := app.Group("/api/v1", apiVersionMiddleware(), requireLogin())
	{
		v1.GET("/dashboard", s.handleV1Dashboard)
	}
}
