package snapstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpsops/tpsreport/internal/contract"
	"github.com/tpsops/tpsreport/schema"
)

func newTestRunLogStore(t *testing.T) contract.RunLogStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "runlog.db")
	store, err := NewRunLogStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRunLogStoreFullRunLifecycle(t *testing.T) {
	store := newTestRunLogStore(t)

	startTime := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun(startTime, "guid-1", map[string]any{"output": "text", "delivery": "console"})
	require.NoError(t, err)
	require.NotZero(t, runID)

	endTime := startTime.Add(3 * time.Second)
	require.NoError(t, store.EndRun(runID, endTime, schema.GoodStatus, schema.WarningStatus, 3))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, "guid-1", run.DashboardGUID)
	assert.Equal(t, startTime, run.StartTime)
	require.NotNil(t, run.EndTime)
	assert.Equal(t, endTime, *run.EndTime)
	require.NotNil(t, run.ConfigParams)
	assert.Contains(t, *run.ConfigParams, `"output":"text"`)
	assert.Equal(t, string(schema.GoodStatus), run.TrafficStatus)
	assert.Equal(t, string(schema.WarningStatus), run.CapacityStatus)
	assert.Equal(t, int32(3), run.TrendCount)
}

func TestRunLogStoreUnfinishedRun(t *testing.T) {
	store := newTestRunLogStore(t)

	runID, err := store.BeginRun(time.Now(), "guid-1", nil)
	require.NoError(t, err)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	assert.Equal(t, runID, runs[0].RunID)
	assert.Nil(t, runs[0].EndTime)
	assert.Empty(t, runs[0].TrafficStatus)
	assert.Empty(t, runs[0].CapacityStatus)
	assert.Zero(t, runs[0].TrendCount)
}

func TestRunLogStoreRecordDelivery(t *testing.T) {
	store := newTestRunLogStore(t)

	runID, err := store.BeginRun(time.Now(), "guid-1", nil)
	require.NoError(t, err)

	require.NoError(t, store.RecordDelivery(runID, "slack", true, "webhook accepted"))
	require.NoError(t, store.RecordDelivery(runID, "email", false, "token request failed"))

	deliveries, err := store.GetAllDeliveries()
	require.NoError(t, err)
	require.Len(t, deliveries, 2)

	for _, d := range deliveries {
		assert.Equal(t, runID, d.RunID)
		assert.False(t, d.DeliveredAt.IsZero())
	}

	byChannel := map[string]schema.DeliveryRecord{}
	for _, d := range deliveries {
		byChannel[d.Channel] = d
	}
	assert.True(t, byChannel["slack"].Success)
	assert.False(t, byChannel["email"].Success)
	require.NotNil(t, byChannel["email"].Detail)
	assert.Equal(t, "token request failed", *byChannel["email"].Detail)
}

func TestRunLogStoreStatus(t *testing.T) {
	store := newTestRunLogStore(t)

	empty, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, empty.Connected)
	assert.Zero(t, empty.TotalRuns)
	assert.Zero(t, empty.TotalDeliveries)

	first, err := store.BeginRun(time.Now().Add(-time.Hour), "guid-1", nil)
	require.NoError(t, err)
	second, err := store.BeginRun(time.Now(), "guid-2", nil)
	require.NoError(t, err)
	require.Greater(t, second, first)
	require.NoError(t, store.RecordDelivery(second, "console", true, ""))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, second, status.LastRunID)
	assert.True(t, status.OldestRunTime.Before(status.LastRunTime))
	assert.Equal(t, 1, status.TotalDeliveries)
	assert.Equal(t, int64(2), status.TableSizes[runsTable])
	assert.Equal(t, int64(1), status.TableSizes[deliveriesTable])
}

func TestRunLogStoreNoneBackend(t *testing.T) {
	store, err := NewRunLogStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), "guid-1", nil)
	require.NoError(t, err)
	assert.Zero(t, runID)

	require.NoError(t, store.EndRun(runID, time.Now(), schema.GoodStatus, schema.GoodStatus, 0))
	require.NoError(t, store.RecordDelivery(runID, "console", true, ""))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	require.NoError(t, store.Close())
}
