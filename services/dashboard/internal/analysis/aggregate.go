// Package analysis turns filtered measurements into the per-date series,
// quadratic trends and text summaries shown on the dashboard.
package analysis

import (
	"slices"
	"time"

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/models"
)

// Series is the shared date axis with one total per category per date.
type Series struct {
	Dates  []time.Time `json:"dates"`
	Green  []int64     `json:"green"`
	Yellow []int64     `json:"yellow"`
}

// Len returns the number of dates on the axis.
func (s Series) Len() int {
	return len(s.Dates)
}

// Aggregate sums vibrio_count per (sampling_date, vibrio_type). Dates with no
// rows for a category get 0.
func Aggregate(rows []models.Measurement) Series {
	index := make(map[time.Time]int)
	dates := make([]time.Time, 0)
	for _, r := range rows {
		if _, ok := index[r.SamplingDate]; !ok {
			index[r.SamplingDate] = 0
			dates = append(dates, r.SamplingDate)
		}
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })
	for i, d := range dates {
		index[d] = i
	}

	s := Series{
		Dates:  dates,
		Green:  make([]int64, len(dates)),
		Yellow: make([]int64, len(dates)),
	}
	for _, r := range rows {
		i := index[r.SamplingDate]
		switch r.VibrioType {
		case models.Green:
			s.Green[i] += r.VibrioCount
		case models.Yellow:
			s.Yellow[i] += r.VibrioCount
		}
	}
	return s
}
