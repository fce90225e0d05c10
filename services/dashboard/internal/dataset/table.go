// Package dataset holds the in-memory measurement table and the owner,
// region and pond filters applied to it.
package dataset

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/models"
)

// ErrInvalidRow marks a row that breaks the table invariants.
var ErrInvalidRow = errors.New("invalid measurement row")

// Loader reads the full measurement table from storage.
type Loader interface {
	LoadMeasurements(ctx context.Context) ([]models.Measurement, error)
}

// Table is the read-only measurement table. It is built once at startup and
// shared by reference; nothing mutates it afterwards.
type Table struct {
	rows     []models.Measurement
	owners   []string
	ownerSet map[string]struct{}
}

// Load reads the table through l exactly once.
func Load(ctx context.Context, l Loader) (*Table, error) {
	rows, err := l.LoadMeasurements(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load measurement table")
	}
	return New(rows)
}

// New validates rows and wraps them in a Table.
func New(rows []models.Measurement) (*Table, error) {
	t := &Table{
		rows:     rows,
		ownerSet: make(map[string]struct{}),
	}
	for i, r := range rows {
		if r.VibrioCount < 0 {
			return nil, goerr.Wrap(ErrInvalidRow, "negative vibrio_count",
				goerr.V("index", i), goerr.V("count", r.VibrioCount))
		}
		if !r.VibrioType.Valid() {
			return nil, goerr.Wrap(ErrInvalidRow, "unknown vibrio_type",
				goerr.V("index", i), goerr.V("type", string(r.VibrioType)))
		}
		if _, ok := t.ownerSet[r.FarmOwner]; !ok {
			t.ownerSet[r.FarmOwner] = struct{}{}
			t.owners = append(t.owners, r.FarmOwner)
		}
	}
	return t, nil
}

// Rows returns the backing slice. Callers must not modify it.
func (t *Table) Rows() []models.Measurement {
	return t.rows
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Owners returns distinct farm owners in first-seen order.
func (t *Table) Owners() []string {
	out := make([]string, len(t.owners))
	copy(out, t.owners)
	return out
}

// HasOwner reports whether name appears as a farm_owner.
func (t *Table) HasOwner(name string) bool {
	_, ok := t.ownerSet[name]
	return ok
}
