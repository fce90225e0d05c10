package present

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/m-mizutani/goerr/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/analysis"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/models"
)

var (
	greenBar    = color.RGBA{R: 0, G: 128, B: 0, A: 255}
	yellowBar   = color.NRGBA{R: 255, G: 255, B: 0, A: 178} // alpha 0.7
	greenTrend  = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	yellowTrend = color.RGBA{R: 255, G: 165, B: 0, A: 255}
)

const (
	ChartTitle  = "비브리오 변화 추이"
	chartWidth  = 8 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// ChartInput is everything the trend chart draws. A nil trend is omitted.
type ChartInput struct {
	Series      analysis.Series
	GreenTrend  *analysis.Trend
	YellowTrend *analysis.Trend
}

// TrendLabel is the legend entry of a fitted series.
func TrendLabel(name string, t analysis.Trend) string {
	return fmt.Sprintf("%s poly2 (R²=%.2f)", name, t.RSquared)
}

// BuildChart lays out Green bars with Yellow stacked on top, plus a dashed
// trend per fitted series, over an ordinal date axis.
func BuildChart(in ChartInput, f *Font) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = ChartTitle
	p.Y.Label.Text = "CFU/mL"
	p.Legend.Top = true
	f.apply(p)
	p.Add(plotter.NewGrid())

	n := in.Series.Len()
	if n == 0 {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 0, 1
		return p, nil
	}

	width := vg.Points(math.Max(2, math.Min(24, 360/float64(n))))
	green, err := plotter.NewBarChart(int64Values(in.Series.Green), width)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build Green bars")
	}
	green.Color = greenBar
	green.LineStyle.Width = vg.Length(0)

	yellow, err := plotter.NewBarChart(int64Values(in.Series.Yellow), width)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build Yellow bars")
	}
	yellow.Color = yellowBar
	yellow.LineStyle.Width = vg.Length(0)
	yellow.StackOn(green)

	p.Add(green, yellow)
	p.Legend.Add(string(models.Green), green)
	p.Legend.Add(string(models.Yellow), yellow)

	for _, tr := range []struct {
		name  string
		trend *analysis.Trend
		col   color.Color
	}{
		{string(models.Green), in.GreenTrend, greenTrend},
		{string(models.Yellow), in.YellowTrend, yellowTrend},
	} {
		if tr.trend == nil {
			continue
		}
		line, err := plotter.NewLine(fittedXYs(tr.trend.Fitted))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to build trend line", goerr.V("series", tr.name))
		}
		line.Color = tr.col
		line.Width = vg.Points(1.5)
		line.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		p.Add(line)
		p.Legend.Add(TrendLabel(tr.name, *tr.trend), line)
	}

	labels := make([]string, n)
	for i, d := range in.Series.Dates {
		labels[i] = models.FormatDate(d)
	}
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	return p, nil
}

// RenderChart writes the chart as PNG.
func RenderChart(w io.Writer, in ChartInput, f *Font) error {
	p, err := BuildChart(in, f)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return goerr.Wrap(err, "failed to create chart writer")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return goerr.Wrap(err, "failed to render chart")
	}
	return nil
}

func int64Values(vs []int64) plotter.Values {
	out := make(plotter.Values, len(vs))
	for i, v := range vs {
		out[i] = float64(v)
	}
	return out
}

func fittedXYs(fitted []float64) plotter.XYs {
	xys := make(plotter.XYs, len(fitted))
	for i, y := range fitted {
		xys[i].X = float64(i)
		xys[i].Y = y
	}
	return xys
}
