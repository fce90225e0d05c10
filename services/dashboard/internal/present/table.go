// Package present renders dashboard data for people: the display table,
// file exports and the trend chart.
package present

import (
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/models"
)

// Column pairs a source column with its display label.
type Column struct {
	Source  string `json:"source"`
	Display string `json:"display"`
}

// Columns lists shrimp_data columns in table order with their Korean labels.
var Columns = []Column{
	{"region", "지역"},
	{"farm_owner", "양식장 주"},
	{"pond_type", "호지 종류"},
	{"pond_number", "호지 번호"},
	{"sampling_date", "채수일"},
	{"vibrio_type", "비브리오 종류"},
	{"vibrio_count", "비브리오 수치"},
}

// Table is the formatted view of the filtered rows.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Header returns the display labels in column order.
func Header() []string {
	h := make([]string, len(Columns))
	for i, c := range Columns {
		h[i] = c.Display
	}
	return h
}

// BuildTable formats rows for display: date-only dates and counts with
// thousands separators. Row order is kept.
func BuildTable(rows []models.Measurement) Table {
	t := Table{Header: Header(), Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Region,
			r.FarmOwner,
			r.PondType,
			strconv.Itoa(r.PondNumber),
			r.SamplingDate.Format(models.DateLayout),
			string(r.VibrioType),
			humanize.Comma(r.VibrioCount),
		})
	}
	return t
}
