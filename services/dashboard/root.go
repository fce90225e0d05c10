package main

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/config"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/db"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/dataset"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/logging"
)

// app carries the resolved configuration and logger into every subcommand.
type app struct {
	cfg    config.Config
	logger *slog.Logger

	databaseURL string
	logLevel    string
	logFormat   string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "vibriodash",
		Short:         "Vibrio monitoring dashboard for shrimp farms",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.databaseURL, "db", "", "database URL or SQLite path (overrides DATABASE_URL)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: auto, console, json")

	root.AddCommand(newServeCmd(a), newReportCmd(a), newExportCmd(a))
	return root
}

// setup loads env config, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return goerr.Wrap(err, "failed to load config")
	}
	if a.databaseURL != "" {
		cfg.DatabaseURL = a.databaseURL
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}

	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}
	a.logger = logging.New(logging.ParseLogLevel(cfg.LogLevel), cmd.ErrOrStderr(), format)
	slog.SetDefault(a.logger)
	a.cfg = cfg
	return nil
}

// loadTable reads shrimp_data once and releases the connection; the table
// is read-only from here on.
func (a *app) loadTable(ctx context.Context) (*dataset.Table, error) {
	store, err := db.New(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database")
	}
	defer store.Close()

	table, err := dataset.Load(ctx, store)
	if err != nil {
		return nil, err
	}

	a.logger.Info("measurement table loaded",
		"backend", string(store.Backend()),
		"rows", table.Len(),
		"owners", len(table.Owners()),
	)
	return table, nil
}
