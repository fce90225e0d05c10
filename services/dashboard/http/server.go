package http

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/config"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/dataset"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/present"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/session"
)

// Server bundles router and dependencies for the dashboard.
type Server struct {
	cfg      config.Config
	table    *dataset.Table
	gate     *session.Gate
	sessions *session.Store
	font     *present.Font
	logger   *slog.Logger
	engine   *gin.Engine
}

// New constructs a server with routes and middleware. table must already be
// loaded; font may be nil.
func New(cfg config.Config, table *dataset.Table, font *present.Font, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))
	engine.SetHTMLTemplate(template.Must(template.New("").ParseFS(templateFS, "templates/*.html")))

	server := &Server{
		cfg:      cfg,
		table:    table,
		gate:     session.NewGate(table, cfg.Password),
		sessions: session.NewStore(cfg.SessionTTL),
		font:     font,
		logger:   logger,
		engine:   engine,
	}
	server.registerRoutes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.logger.Info("dashboard listening", "addr", s.cfg.ListenAddr())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
