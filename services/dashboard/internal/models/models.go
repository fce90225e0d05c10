package models

import "time"

// VibrioType is the bacterium category of a measurement.
type VibrioType string

const (
	Green  VibrioType = "Green"
	Yellow VibrioType = "Yellow"
)

// Valid reports whether v is one of the tracked categories.
func (v VibrioType) Valid() bool {
	return v == Green || v == Yellow
}

// Measurement is one row of the shrimp_data table.
type Measurement struct {
	Region       string     `json:"region"`
	FarmOwner    string     `json:"farm_owner"`
	PondType     string     `json:"pond_type"`
	PondNumber   int        `json:"pond_number"`
	SamplingDate time.Time  `json:"sampling_date"`
	VibrioType   VibrioType `json:"vibrio_type"`
	VibrioCount  int64      `json:"vibrio_count"`
}

// DateLayout is the date-only form used on every display surface.
const DateLayout = "2006-01-02"

// FormatDate renders a sampling date. Midnight timestamps print date-only.
func FormatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(DateLayout)
	}
	return t.Format("2006-01-02 15:04:05")
}
