// Package dashboard is the pure render step: one (session, selection) pair in,
// every artifact of the page out.
package dashboard

import (
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/analysis"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/dataset"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/models"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/present"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/session"
)

// View is one rendered dashboard. A logged-out view carries nothing but the
// gate state.
type View struct {
	Authenticated bool                 `json:"authenticated"`
	User          string               `json:"user,omitempty"`
	Selection     dataset.Selection    `json:"selection"`
	Options       dataset.Options      `json:"options"`
	Rows          []models.Measurement `json:"-"`
	Table         present.Table        `json:"table"`
	Series        analysis.Series      `json:"series"`
	GreenTrend    *analysis.Trend      `json:"green_trend,omitempty"`
	YellowTrend   *analysis.Trend      `json:"yellow_trend,omitempty"`
	GreenSummary  analysis.Summary     `json:"green_summary"`
	YellowSummary analysis.Summary     `json:"yellow_summary"`
}

// Render runs filter, aggregate, fit and summarize for the session's owner.
// sel is clamped to the options it offers, so the returned Selection may
// differ from the one passed in.
func Render(table *dataset.Table, sess session.Session, sel dataset.Selection) View {
	if !sess.Authenticated {
		return View{}
	}

	opts, sel := dataset.Resolve(table.Rows(), sess.User, sel)
	rows := dataset.Filter(table.Rows(), sess.User, sel)
	series := analysis.Aggregate(rows)

	return View{
		Authenticated: true,
		User:          sess.User,
		Selection:     sel,
		Options:       opts,
		Rows:          rows,
		Table:         present.BuildTable(rows),
		Series:        series,
		GreenTrend:    fit(series.Green),
		YellowTrend:   fit(series.Yellow),
		GreenSummary:  analysis.Summarize(series.Dates, series.Green),
		YellowSummary: analysis.Summarize(series.Dates, series.Yellow),
	}
}

// ChartInput returns what the chart draws for v.
func (v View) ChartInput() present.ChartInput {
	return present.ChartInput{
		Series:      v.Series,
		GreenTrend:  v.GreenTrend,
		YellowTrend: v.YellowTrend,
	}
}

func fit(values []int64) *analysis.Trend {
	t, ok := analysis.FitQuadratic(values)
	if !ok {
		return nil
	}
	return &t
}
