package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/analysis"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/dashboard"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/dataset"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/session"
)

// viewFlags are the login and selector flags shared by report and export.
type viewFlags struct {
	user     string
	password string
	region   string
	pond     string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.user, "user", "u", "", "farm owner to log in as")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "shared dashboard password")
	cmd.Flags().StringVar(&f.region, "region", "", "region filter (default all)")
	cmd.Flags().StringVar(&f.pond, "pond", "", "pond number filter (default all)")
	_ = cmd.MarkFlagRequired("user")
}

// render logs in through the same gate as the web UI and renders the view.
func (a *app) render(cmd *cobra.Command, f viewFlags) (dashboard.View, error) {
	table, err := a.loadTable(cmd.Context())
	if err != nil {
		return dashboard.View{}, err
	}

	var sess session.Session
	if err := session.NewGate(table, a.cfg.Password).Login(&sess, f.user, f.password); err != nil {
		return dashboard.View{}, goerr.Wrap(err, "login failed", goerr.V("user", f.user))
	}
	return dashboard.Render(table, sess, dataset.NewSelection(f.region, f.pond)), nil
}

func newReportCmd(a *app) *cobra.Command {
	var f viewFlags
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the filtered table and trend summary to the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := a.render(cmd, f)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), view)
		},
	}
	f.register(cmd)
	return cmd
}

var (
	titleColor  = color.New(color.FgCyan, color.Bold)
	greenColor  = color.New(color.FgGreen, color.Bold)
	yellowColor = color.New(color.FgYellow, color.Bold)
)

func writeReport(w io.Writer, view dashboard.View) error {
	titleColor.Fprintf(w, "🦐 환영합니다, %s님!\n", view.User)
	fmt.Fprintf(w, "지역 선택: %s  호지 번호: %s\n\n", view.Selection.Region, view.Selection.Pond)

	table := tablewriter.NewWriter(w)
	table.Header(view.Table.Header)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignCenter
	})
	if err := table.Bulk(view.Table.Rows); err != nil {
		return goerr.Wrap(err, "failed to fill report table")
	}
	if err := table.Render(); err != nil {
		return goerr.Wrap(err, "failed to render report table")
	}

	fmt.Fprintln(w)
	titleColor.Fprintln(w, "분석 요약")
	writeSeries(w, greenColor, "[Green]", view.GreenSummary, view.GreenTrend)
	writeSeries(w, yellowColor, "[Yellow]", view.YellowSummary, view.YellowTrend)
	return nil
}

func writeSeries(w io.Writer, c *color.Color, name string, s analysis.Summary, t *analysis.Trend) {
	if s.Empty() && t == nil {
		return
	}
	c.Fprintln(w, name)
	for _, line := range s.Lines {
		fmt.Fprintln(w, line)
	}
	if t != nil {
		fmt.Fprintf(w, "- R²: %.2f\n", t.RSquared)
	}
}
