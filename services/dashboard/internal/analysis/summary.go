package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/models"
)

// Summary is the short report printed under each series.
type Summary struct {
	Lines []string `json:"lines"`
}

// Empty reports whether there was too little data to summarize.
func (s Summary) Empty() bool {
	return len(s.Lines) == 0
}

func (s Summary) String() string {
	return strings.Join(s.Lines, "\n")
}

// Summarize reports the first-to-last change and the first drop between
// consecutive dates. dates and values must be index-aligned.
func Summarize(dates []time.Time, values []int64) Summary {
	if len(values) < 2 {
		return Summary{}
	}

	start, now := values[0], values[len(values)-1]
	var pct float64
	if start != 0 {
		pct = float64(now-start) / float64(start) * 100
	}
	lines := []string{
		fmt.Sprintf("- 시작→현재: %s → %s (%+.1f%%)", humanize.Comma(start), humanize.Comma(now), pct),
	}

	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			drop := float64(values[i-1]-values[i]) / float64(values[i-1]) * 100
			lines = append(lines, fmt.Sprintf("- 첫 감소: %s (%.1f%%↓)", models.FormatDate(dates[i]), drop))
			break
		}
	}
	return Summary{Lines: lines}
}
