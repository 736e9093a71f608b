//go:build integration

// Package integration contains integration tests for tpsreport.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
// Or use: make test-integration
package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tpsops/tpsreport/internal/snapstore"
	"github.com/tpsops/tpsreport/schema"
)

const testGUID = "MTIzNDU2fFZJWnxEQVNIQk9BUkR8OTg3"

// snapshotPayload mimics a dashboard query response with all four metric slots.
const snapshotPayload = `{
  "data": {
    "actor": {
      "entity": {
        "pages": [
          {
            "widgets": [
              {"id": "w1", "title": "TSYS Total TPS", "rawConfiguration": {}, "data": {"raw": {"current": 2100.0, "comparison": 5.2, "series": [{"value": 2450.0, "timestamp": 1756400400000}]}}},
              {"id": "w2", "title": "HPNS TPS", "rawConfiguration": {}, "data": {"raw": {"current": 850.0, "comparison": -1.4, "series": [{"value": 910.0, "timestamp": 1756404000000}]}}},
              {"id": "w3", "title": "TSYS Capacity", "rawConfiguration": {}, "data": {"raw": {"current": 64.0}}},
              {"id": "w4", "title": "HPNS Capacity", "rawConfiguration": {}, "data": {"raw": {"current": 52.0}}}
            ]
          }
        ]
      }
    }
  }
}`

// seedSnapshot writes a widget snapshot into a fresh SQLite database file.
func seedSnapshot(t *testing.T) string {
	dbPath := filepath.Join(t.TempDir(), "snapshots.db")
	store, err := snapstore.NewSnapshotStore("widget_snapshots", schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Put(testGUID, []byte(snapshotPayload), time.Now()))
	require.NoError(t, store.Close())
	return dbPath
}

// TestOfflineReportFromSnapshot renders a full report from a seeded snapshot
// without any dashboard API access.
func TestOfflineReportFromSnapshot(t *testing.T) {
	dbPath := seedSnapshot(t)
	env := []string{
		"TPSREPORT_SNAPSHOT_BACKEND=sqlite",
		"TPSREPORT_SNAPSHOT_DB_CONNECT=" + dbPath,
	}

	output, err := runTpsreportCommand(t, env,
		"report", "--offline", "--dashboard-guid", testGUID, "--delivery", "console")
	require.NoError(t, err)

	assert.Contains(t, output, "TPS Traffic Report")
	assert.Contains(t, output, "TSYS")
	assert.Contains(t, output, "HPNS")
}

// TestOfflineMetricsFromSnapshot prints the normalized metric table offline.
func TestOfflineMetricsFromSnapshot(t *testing.T) {
	dbPath := seedSnapshot(t)
	env := []string{
		"TPSREPORT_SNAPSHOT_BACKEND=sqlite",
		"TPSREPORT_SNAPSHOT_DB_CONNECT=" + dbPath,
	}

	output, err := runTpsreportCommand(t, env,
		"metrics", "--offline", "--dashboard-guid", testGUID)
	require.NoError(t, err)

	assert.Contains(t, output, "TSYS Total TPS")
	assert.Contains(t, output, "metric slots")
}

// TestOfflineCheckFromSnapshot runs the policy check against a seeded snapshot.
func TestOfflineCheckFromSnapshot(t *testing.T) {
	dbPath := seedSnapshot(t)
	env := []string{
		"TPSREPORT_SNAPSHOT_BACKEND=sqlite",
		"TPSREPORT_SNAPSHOT_DB_CONNECT=" + dbPath,
	}

	output, err := runTpsreportCommand(t, env,
		"check", "--offline", "--dashboard-guid", testGUID)
	require.NoError(t, err)

	assert.Contains(t, output, "Traffic and capacity within policy")
}

// TestOfflineReportJSONOutput writes the rendered report as JSON to a file.
func TestOfflineReportJSONOutput(t *testing.T) {
	dbPath := seedSnapshot(t)
	outFile := filepath.Join(t.TempDir(), "report.json")
	env := []string{
		"TPSREPORT_SNAPSHOT_BACKEND=sqlite",
		"TPSREPORT_SNAPSHOT_DB_CONNECT=" + dbPath,
	}

	_, err := runTpsreportCommand(t, env,
		"report", "--offline", "--dashboard-guid", testGUID,
		"--delivery", "console", "--output", "json", "--output-file", outFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"traffic_status"`)
}
