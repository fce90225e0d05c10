package main

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/present"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		f      viewFlags
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered table to a csv, xlsx or parquet file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ef, err := present.ParseExportFormat(format)
			if err != nil {
				return err
			}
			view, err := a.render(cmd, f)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = ef.FileName()
			}
			out, err := os.Create(path)
			if err != nil {
				return goerr.Wrap(err, "failed to create export file", goerr.V("path", path))
			}
			if err := present.Export(out, ef, view.Rows); err != nil {
				_ = out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return goerr.Wrap(err, "failed to close export file", goerr.V("path", path))
			}

			a.logger.Info("exported", "path", path, "format", format, "rows", len(view.Rows))
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", string(present.CSVFormat), "csv, xlsx or parquet")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default shrimp_data.<format>)")
	return cmd
}
