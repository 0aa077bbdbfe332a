// ABOUTME: Tests for the SQLite dispatch record store
// ABOUTME: Covers schema creation, record round trips, and summary aggregation

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaconlabs/beacon-gateway/internal/dispatch"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testRecord(capability, outcome string, d time.Duration) *DispatchRecord {
	return &DispatchRecord{
		ID:         uuid.New().String(),
		RequestID:  uuid.New().String(),
		Capability: capability,
		Outcome:    outcome,
		Duration:   d,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestNewSQLiteStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist")
}

func TestNewSQLiteStore_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "nested", "test.db")

	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist in nested directory")
}

func TestSaveAndRecentRecords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := testRecord("web_fetch", "ok", 120*time.Millisecond)
	first.CreatedAt = time.Now().UTC().Add(-time.Minute)
	second := testRecord("generate_code", "error", 40*time.Millisecond)
	second.ErrorKind = "execution_failed"

	require.NoError(t, s.SaveRecord(ctx, first))
	require.NoError(t, s.SaveRecord(ctx, second))

	records, err := s.RecentRecords(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first
	assert.Equal(t, "generate_code", records[0].Capability)
	assert.Equal(t, "execution_failed", records[0].ErrorKind)
	assert.Equal(t, 40*time.Millisecond, records[0].Duration)
	assert.Equal(t, "web_fetch", records[1].Capability)
}

func TestRecentRecords_Limit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.SaveRecord(ctx, testRecord("echo", "ok", time.Millisecond)))
	}

	records, err := s.RecentRecords(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestGetSummary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRecord(ctx, testRecord("web_fetch", "ok", 100*time.Millisecond)))
	require.NoError(t, s.SaveRecord(ctx, testRecord("web_fetch", "ok", 300*time.Millisecond)))
	require.NoError(t, s.SaveRecord(ctx, testRecord("generate_code", "timeout", 200*time.Millisecond)))

	summary, err := s.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.ByOutcome["ok"])
	assert.Equal(t, 1, summary.ByOutcome["timeout"])
	assert.Equal(t, 2, summary.ByCapability["web_fetch"])
	assert.Equal(t, 1, summary.ByCapability["generate_code"])
	assert.InDelta(t, 200.0, summary.AvgDurationMs, 0.1)
}

func TestGetSummary_Empty(t *testing.T) {
	s := newTestStore(t)

	summary, err := s.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Total)
	assert.Zero(t, summary.AvgDurationMs)
}

func TestRecorderObserveDispatch(t *testing.T) {
	s := newTestStore(t)
	rec := NewRecorder(s, nil)

	rec.ObserveDispatch(dispatch.Record{
		RequestID:  "req-1",
		Capability: "echo",
		Outcome:    "ok",
		Duration:   50 * time.Millisecond,
		At:         time.Now().UTC(),
	})

	records, err := s.RecentRecords(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "req-1", records[0].RequestID)
	assert.Equal(t, "ok", records[0].Outcome)
}
