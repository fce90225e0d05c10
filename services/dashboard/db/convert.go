package db

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/models"
)

// rawRow receives driver values before they are coerced. Column types differ
// by backend (SQLite tables written by pandas store dates as TEXT and counts
// as INTEGER or REAL; MySQL hands back []byte without parseTime).
type rawRow struct {
	region, owner, pondType, pondNumber, samplingDate, vibrioType, vibrioCount any
}

func (r *rawRow) dest() []any {
	return []any{&r.region, &r.owner, &r.pondType, &r.pondNumber, &r.samplingDate, &r.vibrioType, &r.vibrioCount}
}

func (r *rawRow) measurement() (models.Measurement, error) {
	var m models.Measurement
	var err error

	if m.Region, err = asString(r.region); err != nil {
		return m, fmt.Errorf("region: %w", err)
	}
	if m.FarmOwner, err = asString(r.owner); err != nil {
		return m, fmt.Errorf("farm_owner: %w", err)
	}
	if m.PondType, err = asString(r.pondType); err != nil {
		return m, fmt.Errorf("pond_type: %w", err)
	}
	pond, err := asInt(r.pondNumber)
	if err != nil {
		return m, fmt.Errorf("pond_number: %w", err)
	}
	m.PondNumber = int(pond)
	if m.SamplingDate, err = asTime(r.samplingDate); err != nil {
		return m, fmt.Errorf("sampling_date: %w", err)
	}
	vt, err := asString(r.vibrioType)
	if err != nil {
		return m, fmt.Errorf("vibrio_type: %w", err)
	}
	m.VibrioType = models.VibrioType(vt)
	if m.VibrioCount, err = asInt(r.vibrioCount); err != nil {
		return m, fmt.Errorf("vibrio_count: %w", err)
	}
	return m, nil
}

func asString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case nil:
		return "", fmt.Errorf("unexpected NULL")
	case fmt.Stringer:
		return x.String(), nil
	default:
		return fmt.Sprint(x), nil
	}
}

func asInt(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int32:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int:
		return int64(x), nil
	case float64:
		return floatToInt(x)
	case float32:
		return floatToInt(float64(x))
	case []byte:
		return parseIntString(string(x))
	case string:
		return parseIntString(x)
	case pgtype.Numeric:
		// pgx decodes NUMERIC columns scanned into any as pgtype.Numeric.
		return numericToInt(x)
	case nil:
		return 0, fmt.Errorf("unexpected NULL")
	default:
		return 0, fmt.Errorf("unsupported integer type %T", v)
	}
}

func numericToInt(n pgtype.Numeric) (int64, error) {
	if !n.Valid {
		return 0, fmt.Errorf("unexpected NULL")
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return 0, fmt.Errorf("not a finite number")
	}
	i, err := n.Int64Value()
	if err != nil {
		return 0, fmt.Errorf("not an integer: %w", err)
	}
	if !i.Valid {
		return 0, fmt.Errorf("unexpected NULL")
	}
	return i.Int64, nil
}

func parseIntString(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return floatToInt(f)
}

func floatToInt(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %v", f)
	}
	return int64(f), nil
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
}

func asTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case []byte:
		return parseTimeString(string(x))
	case string:
		return parseTimeString(x)
	case nil:
		return time.Time{}, fmt.Errorf("unexpected NULL")
	default:
		return time.Time{}, fmt.Errorf("unsupported date type %T", v)
	}
}

func parseTimeString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
