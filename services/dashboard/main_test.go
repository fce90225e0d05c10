package main

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shrimp.db")
	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer conn.Close()

	stmts := []string{
		`CREATE TABLE shrimp_data (
			region TEXT, farm_owner TEXT, pond_type TEXT, pond_number INTEGER,
			sampling_date TEXT, vibrio_type TEXT, vibrio_count INTEGER
		)`,
		`INSERT INTO shrimp_data VALUES
			('East', 'Kim', 'A', 1, '2024-01-01', 'Green', 100),
			('East', 'Kim', 'A', 1, '2024-01-02', 'Green', 150),
			('East', 'Kim', 'A', 1, '2024-01-03', 'Green', 90),
			('West', 'Kim', 'B', 2, '2024-01-02', 'Yellow', 1500),
			('West', 'Lee', 'A', 7, '2024-01-02', 'Green', 1)`,
	}
	for _, s := range stmts {
		_, err := conn.Exec(s)
		require.NoError(t, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("DASHBOARD_PASSWORD", "")
	t.Setenv("LOG_FORMAT", "json")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReport(t *testing.T) {
	dbPath := writeDB(t)
	out, err := run(t, "report", "--db", dbPath, "-u", "Kim", "-p", "1234!", "--region", "East", "--pond", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "환영합니다, Kim님!")
	assert.Contains(t, out, "2024-01-03")
	assert.Contains(t, out, "- 시작→현재: 100 → 90 (-10.0%)")
	assert.Contains(t, out, "- 첫 감소: 2024-01-03 (40.0%↓)")
	assert.NotContains(t, out, "Lee")
}

func TestReportRejectsBadPassword(t *testing.T) {
	dbPath := writeDB(t)
	_, err := run(t, "report", "--db", dbPath, "-u", "Kim", "-p", "nope")
	assert.Error(t, err)
}

func TestReportFailsOnMissingDatabase(t *testing.T) {
	_, err := run(t, "report", "--db", filepath.Join(t.TempDir(), "missing.db"), "-u", "Kim", "-p", "1234!")
	assert.Error(t, err)
}

func TestExportCSVFile(t *testing.T) {
	dbPath := writeDB(t)
	target := filepath.Join(t.TempDir(), "out.csv")
	_, err := run(t, "export", "--db", dbPath, "-u", "Kim", "-p", "1234!", "--region", "West", "-o", target)
	require.NoError(t, err)

	b, err := os.ReadFile(target)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}))

	records, err := csv.NewReader(bytes.NewReader(b[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1,500", records[1][6])
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	dbPath := writeDB(t)
	_, err := run(t, "export", "--db", dbPath, "-u", "Kim", "-p", "1234!", "-f", "pdf")
	assert.Error(t, err)
}
