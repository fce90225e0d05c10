package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/models"
)

// Backend identifies the relational store holding shrimp_data.
type Backend string

const (
	SQLiteBackend     Backend = "sqlite" // default
	PostgreSQLBackend Backend = "postgres"
	MySQLBackend      Backend = "mysql"
)

// ErrUnsupportedBackend is returned for URL schemes no driver is wired for.
var ErrUnsupportedBackend = errors.New("unsupported database backend")

// Store wraps read access to the measurement table.
type Store struct {
	backend Backend
	pool    *pgxpool.Pool
	db      *sql.DB
}

// ParseURL splits a DATABASE_URL into a backend and a driver DSN.
// Bare paths and sqlite:// URLs select SQLite.
func ParseURL(databaseURL string) (Backend, string, error) {
	u := strings.TrimSpace(databaseURL)
	switch {
	case u == "":
		return "", "", goerr.New("database url is empty")
	case strings.HasPrefix(u, "postgres://"), strings.HasPrefix(u, "postgresql://"):
		return PostgreSQLBackend, u, nil
	case strings.HasPrefix(u, "mysql://"):
		// go-sql-driver wants user:password@tcp(host:port)/dbname
		return MySQLBackend, strings.TrimPrefix(u, "mysql://"), nil
	case strings.HasPrefix(u, "sqlite://"):
		return SQLiteBackend, strings.TrimPrefix(u, "sqlite://"), nil
	case strings.Contains(u, "://"):
		return "", "", goerr.Wrap(ErrUnsupportedBackend, "cannot open database", goerr.V("url", u))
	default:
		return SQLiteBackend, u, nil
	}
}

// New opens the store named by databaseURL and verifies the connection.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	backend, dsn, err := ParseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	switch backend {
	case PostgreSQLBackend:
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create PostgreSQL pool")
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, goerr.Wrap(err, "failed to connect to PostgreSQL")
		}
		return &Store{backend: backend, pool: pool}, nil

	case SQLiteBackend:
		// sql.Open would silently create an empty database file.
		if _, err := os.Stat(dsn); err != nil {
			return nil, goerr.Wrap(err, "SQLite database file not found", goerr.V("path", dsn))
		}
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open SQLite database", goerr.V("path", dsn))
		}
		db.SetMaxOpenConns(1)
		return openSQL(ctx, backend, db)

	case MySQLBackend:
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open MySQL database")
		}
		return openSQL(ctx, backend, db)
	}

	return nil, goerr.Wrap(ErrUnsupportedBackend, "cannot open database", goerr.V("backend", backend))
}

func openSQL(ctx context.Context, backend Backend, db *sql.DB) (*Store, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to connect to database", goerr.V("backend", backend))
	}
	return &Store{backend: backend, db: db}, nil
}

// Backend reports which driver the store uses.
func (s *Store) Backend() Backend {
	return s.backend
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
}

const loadMeasurementsSQL = `
    SELECT region, farm_owner, pond_type, pond_number, sampling_date, vibrio_type, vibrio_count
    FROM shrimp_data
`

// LoadMeasurements reads the whole shrimp_data table in source order.
// A missing table or column surfaces as a query error.
func (s *Store) LoadMeasurements(ctx context.Context) ([]models.Measurement, error) {
	if s.pool != nil {
		return s.loadPgx(ctx)
	}
	return s.loadSQL(ctx)
}

func (s *Store) loadPgx(ctx context.Context) ([]models.Measurement, error) {
	rows, err := s.pool.Query(ctx, loadMeasurementsSQL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query shrimp_data")
	}
	defer rows.Close()

	measurements := make([]models.Measurement, 0)
	for rows.Next() {
		var raw rawRow
		if err := rows.Scan(raw.dest()...); err != nil {
			return nil, goerr.Wrap(err, "failed to scan shrimp_data row")
		}
		m, err := raw.measurement()
		if err != nil {
			return nil, goerr.Wrap(err, "malformed shrimp_data row", goerr.V("row", len(measurements)))
		}
		measurements = append(measurements, m)
	}
	return measurements, rows.Err()
}

func (s *Store) loadSQL(ctx context.Context) ([]models.Measurement, error) {
	rows, err := s.db.QueryContext(ctx, loadMeasurementsSQL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query shrimp_data")
	}
	defer rows.Close()

	measurements := make([]models.Measurement, 0)
	for rows.Next() {
		var raw rawRow
		if err := rows.Scan(raw.dest()...); err != nil {
			return nil, goerr.Wrap(err, "failed to scan shrimp_data row")
		}
		m, err := raw.measurement()
		if err != nil {
			return nil, goerr.Wrap(err, "malformed shrimp_data row", goerr.V("row", len(measurements)))
		}
		measurements = append(measurements, m)
	}
	return measurements, rows.Err()
}
