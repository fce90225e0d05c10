package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/dataset"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/models"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/session"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func newTable(t *testing.T) *dataset.Table {
	t.Helper()
	table, err := dataset.New([]models.Measurement{
		{Region: "East", FarmOwner: "Kim", PondType: "A", PondNumber: 1, SamplingDate: day(1), VibrioType: models.Green, VibrioCount: 100},
		{Region: "East", FarmOwner: "Kim", PondType: "A", PondNumber: 1, SamplingDate: day(2), VibrioType: models.Green, VibrioCount: 150},
		{Region: "East", FarmOwner: "Kim", PondType: "A", PondNumber: 1, SamplingDate: day(3), VibrioType: models.Green, VibrioCount: 90},
		{Region: "West", FarmOwner: "Kim", PondType: "B", PondNumber: 2, SamplingDate: day(1), VibrioType: models.Yellow, VibrioCount: 50},
		{Region: "West", FarmOwner: "Kim", PondType: "B", PondNumber: 2, SamplingDate: day(2), VibrioType: models.Yellow, VibrioCount: 60},
		{Region: "West", FarmOwner: "Lee", PondType: "A", PondNumber: 7, SamplingDate: day(2), VibrioType: models.Green, VibrioCount: 1},
	})
	require.NoError(t, err)
	return table
}

func kim() session.Session {
	return session.Session{Authenticated: true, User: "Kim"}
}

func TestRenderLoggedOut(t *testing.T) {
	v := Render(newTable(t), session.Session{}, dataset.NewSelection("", ""))
	assert.False(t, v.Authenticated)
	assert.Empty(t, v.Rows)
	assert.Empty(t, v.Table.Rows)
}

func TestRenderKimEastPond1(t *testing.T) {
	v := Render(newTable(t), kim(), dataset.NewSelection("East", "1"))
	require.True(t, v.Authenticated)
	assert.Equal(t, "Kim", v.User)
	assert.Equal(t, dataset.Selection{Region: "East", Pond: "1"}, v.Selection)

	assert.Equal(t, []int64{100, 150, 90}, v.Series.Green)
	assert.Equal(t, []int64{0, 0, 0}, v.Series.Yellow)
	require.NotNil(t, v.GreenTrend)
	assert.InDelta(t, 1.0, v.GreenTrend.RSquared, 1e-9)
	require.NotNil(t, v.YellowTrend)
	assert.Zero(t, v.YellowTrend.RSquared)

	assert.Equal(t, []string{
		"- 시작→현재: 100 → 90 (-10.0%)",
		"- 첫 감소: 2024-01-03 (40.0%↓)",
	}, v.GreenSummary.Lines)
	assert.Len(t, v.Table.Rows, 3)
}

func TestRenderShortSeriesHasNoTrend(t *testing.T) {
	v := Render(newTable(t), kim(), dataset.NewSelection("West", dataset.All))
	assert.Equal(t, []int64{50, 60}, v.Series.Yellow)
	assert.Nil(t, v.YellowTrend)
	assert.Nil(t, v.GreenTrend)
	assert.Equal(t, []string{"- 시작→현재: 50 → 60 (+20.0%)"}, v.YellowSummary.Lines)

	in := v.ChartInput()
	assert.Nil(t, in.YellowTrend)
	assert.Equal(t, v.Series, in.Series)
}

func TestRenderResetsStalePond(t *testing.T) {
	table := newTable(t)
	v := Render(table, kim(), dataset.NewSelection("West", "2"))
	assert.Equal(t, []string{dataset.All, "2"}, v.Options.Ponds)

	v = Render(table, kim(), dataset.NewSelection("East", "2"))
	assert.Equal(t, dataset.All, v.Selection.Pond)
	assert.Equal(t, []string{dataset.All, "1"}, v.Options.Ponds)

	v = Render(table, kim(), dataset.NewSelection(dataset.All, "2"))
	assert.Equal(t, []string{dataset.All, "1", "2"}, v.Options.Ponds)
	assert.Equal(t, []string{dataset.All, "East", "West"}, v.Options.Regions)
}

func TestRenderScopesToOwner(t *testing.T) {
	v := Render(newTable(t), session.Session{Authenticated: true, User: "Lee"}, dataset.NewSelection("", ""))
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "Lee", v.Rows[0].FarmOwner)
}
