package snapstore

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpsops/tpsreport/schema"
)

func newTestSnapshotStore(t *testing.T) *SnapshotStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "snapshots.db")
	store, err := NewSnapshotStore("widget_snapshots", schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*SnapshotStoreImpl)
}

func TestSnapshotStorePutGetRoundTrip(t *testing.T) {
	store := newTestSnapshotStore(t)

	payload := []byte(`{"widgets":[{"title":"TSYS Total TPS"}]}`)
	fetchedAt := time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)

	require.NoError(t, store.Put("guid-1", payload, fetchedAt))

	got, gotAt, err := store.Get("guid-1")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, fetchedAt, gotAt)
}

func TestSnapshotStorePutReplacesExisting(t *testing.T) {
	store := newTestSnapshotStore(t)

	require.NoError(t, store.Put("guid-1", []byte("old"), time.Now()))
	require.NoError(t, store.Put("guid-1", []byte("new"), time.Now()))

	got, _, err := store.Get("guid-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalEntries)
}

func TestSnapshotStoreGetMissing(t *testing.T) {
	store := newTestSnapshotStore(t)

	_, _, err := store.Get("unknown-guid")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSnapshotStoreStatus(t *testing.T) {
	store := newTestSnapshotStore(t)

	earlier := time.Now().Add(-time.Hour).Truncate(time.Millisecond).UTC()
	later := time.Now().Truncate(time.Millisecond).UTC()
	require.NoError(t, store.Put("guid-1", []byte("a"), earlier))
	require.NoError(t, store.Put("guid-2", []byte("b"), later))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, later, status.LastEntryTime)
	assert.Equal(t, earlier, status.OldestEntryTime)
	assert.Greater(t, status.TableSizeBytes, int64(0))
}

func TestSnapshotStoreNoneBackend(t *testing.T) {
	store, err := NewSnapshotStore("widget_snapshots", schema.NoneBackend, "")
	require.NoError(t, err)

	require.NoError(t, store.Put("guid-1", []byte("a"), time.Now()))
	_, _, err = store.Get("guid-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	require.NoError(t, store.Close())
}

func TestNewSnapshotStoreRejectsBadTableName(t *testing.T) {
	_, err := NewSnapshotStore("widget_snapshots; DROP TABLE x", schema.SQLiteBackend, filepath.Join(t.TempDir(), "x.db"))
	assert.Error(t, err)
}

func TestValidateTableName(t *testing.T) {
	assert.NoError(t, validateTableName("widget_snapshots"))
	assert.NoError(t, validateTableName("_private"))
	assert.Error(t, validateTableName(""))
	assert.Error(t, validateTableName("1starts_with_digit"))
	assert.Error(t, validateTableName("has-dash"))
}
