package main

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/config"
	httpserver "github.com/02loveslollipop/vibrio-dashboard/services/dashboard/http"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/present"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		port     int
		fontPath string
		logoPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard web server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}
			if cmd.Flags().Changed("font") {
				a.cfg.FontPath = fontPath
			}
			if cmd.Flags().Changed("logo") {
				a.cfg.LogoPath = logoPath
			}
			return a.serve(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides PORT)")
	cmd.Flags().StringVar(&fontPath, "font", "", "TrueType font for chart labels; empty keeps the plot default")
	cmd.Flags().StringVar(&logoPath, "logo", "", "logo image shown on the dashboard")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	if a.cfg.Password == config.Default().Password {
		a.logger.Warn("dashboard uses the built-in shared password; set DASHBOARD_PASSWORD to change it")
	}

	table, err := a.loadTable(ctx)
	if err != nil {
		a.logger.Error("startup failed", "error", err)
		return err
	}

	font, err := present.LoadFont(a.cfg.FontPath)
	if err != nil {
		a.logger.Error("startup failed", "error", err)
		return goerr.Wrap(err, "failed to load chart font")
	}

	srv := httpserver.New(a.cfg, table, font, a.logger)
	if err := srv.Run(ctx); err != nil {
		a.logger.Error("server error", "error", err)
		return err
	}
	return nil
}
