package dataset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/models"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func fixtureRows() []models.Measurement {
	return []models.Measurement{
		{Region: "East", FarmOwner: "Kim", PondType: "A", PondNumber: 1, SamplingDate: day(1), VibrioType: models.Green, VibrioCount: 100},
		{Region: "East", FarmOwner: "Kim", PondType: "A", PondNumber: 1, SamplingDate: day(2), VibrioType: models.Green, VibrioCount: 150},
		{Region: "East", FarmOwner: "Kim", PondType: "A", PondNumber: 1, SamplingDate: day(3), VibrioType: models.Green, VibrioCount: 90},
		{Region: "East", FarmOwner: "Kim", PondType: "B", PondNumber: 10, SamplingDate: day(1), VibrioType: models.Yellow, VibrioCount: 5},
		{Region: "West", FarmOwner: "Kim", PondType: "B", PondNumber: 2, SamplingDate: day(2), VibrioType: models.Yellow, VibrioCount: 20},
		{Region: "West", FarmOwner: "Lee", PondType: "A", PondNumber: 7, SamplingDate: day(2), VibrioType: models.Green, VibrioCount: 1},
	}
}

type countingLoader struct {
	rows  []models.Measurement
	err   error
	calls int
}

func (l *countingLoader) LoadMeasurements(context.Context) ([]models.Measurement, error) {
	l.calls++
	return l.rows, l.err
}

func TestLoadReadsOnce(t *testing.T) {
	loader := &countingLoader{rows: fixtureRows()}
	table, err := Load(context.Background(), loader)
	require.NoError(t, err)

	first := table.Rows()
	second := table.Rows()
	assert.Equal(t, 1, loader.calls)
	assert.Same(t, &first[0], &second[0])
	assert.Equal(t, 6, table.Len())
}

func TestLoadPropagatesError(t *testing.T) {
	loader := &countingLoader{err: errors.New("disk gone")}
	_, err := Load(context.Background(), loader)
	assert.Error(t, err)
}

func TestNewRejectsInvalidRows(t *testing.T) {
	rows := fixtureRows()
	rows[2].VibrioCount = -1
	_, err := New(rows)
	assert.True(t, errors.Is(err, ErrInvalidRow))

	rows = fixtureRows()
	rows[0].VibrioType = "Blue"
	_, err = New(rows)
	assert.True(t, errors.Is(err, ErrInvalidRow))
}

func TestOwners(t *testing.T) {
	table, err := New(fixtureRows())
	require.NoError(t, err)

	assert.Equal(t, []string{"Kim", "Lee"}, table.Owners())
	assert.True(t, table.HasOwner("Kim"))
	assert.False(t, table.HasOwner("Park"))
	assert.False(t, table.HasOwner(""))
}

func TestFilterByOwnerRegionPond(t *testing.T) {
	rows := fixtureRows()

	got := Filter(rows, "Kim", NewSelection("East", "1"))
	require.Len(t, got, 3)
	for i, r := range got {
		assert.Equal(t, rows[i], r, "source order is preserved")
	}

	assert.Len(t, Filter(rows, "Kim", NewSelection("", "")), 5)
	assert.Len(t, Filter(rows, "Kim", NewSelection("West", All)), 1)
	assert.Empty(t, Filter(rows, "Kim", NewSelection(All, "abc")))
	assert.Empty(t, Filter(rows, "Park", NewSelection(All, All)))
}

func TestFilterIdempotent(t *testing.T) {
	rows := fixtureRows()
	for _, sel := range []Selection{
		NewSelection(All, All),
		NewSelection("East", All),
		NewSelection("East", "10"),
		NewSelection("West", "2"),
	} {
		once := Filter(rows, "Kim", sel)
		twice := Filter(once, "Kim", sel)
		assert.Equal(t, once, twice, "selection %+v", sel)
	}
}

func TestResolveOptions(t *testing.T) {
	opts, sel := Resolve(fixtureRows(), "Kim", NewSelection("", ""))
	assert.Equal(t, []string{All, "East", "West"}, opts.Regions)
	assert.Equal(t, []string{All, "1", "2", "10"}, opts.Ponds, "ponds sort numerically")
	assert.Equal(t, Selection{Region: All, Pond: All}, sel)

	opts, sel = Resolve(fixtureRows(), "Kim", NewSelection("East", "10"))
	assert.Equal(t, []string{All, "1", "10"}, opts.Ponds)
	assert.Equal(t, Selection{Region: "East", Pond: "10"}, sel)
}

func TestResolveCascadingReset(t *testing.T) {
	rows := fixtureRows()

	// Pond 2 only exists in West; moving to East drops it.
	opts, sel := Resolve(rows, "Kim", NewSelection("East", "2"))
	assert.Equal(t, All, sel.Pond)
	assert.Equal(t, []string{All, "1", "10"}, opts.Ponds)

	// Back to ALL regions restores the full owner scope.
	opts, sel = Resolve(rows, "Kim", NewSelection(All, "1"))
	assert.Equal(t, []string{All, "1", "2", "10"}, opts.Ponds)
	assert.Equal(t, "1", sel.Pond)

	// Another owner's region is not offered.
	_, sel = Resolve(rows, "Lee", NewSelection("East", All))
	assert.Equal(t, All, sel.Region)
}
