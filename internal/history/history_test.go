package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndListRuns(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	start := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	id1, err := db.RecordRun(ctx, "reconcile", start, map[string]int{"statusChanges": 3})
	require.NoError(t, err)
	require.NotEmpty(t, id1)

	id2, err := db.RecordRun(ctx, "reconcile-dry-run", start.Add(time.Hour), map[string]int{"statusChanges": 0})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	runs, err := db.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, id2, runs[0].ID)
	assert.Equal(t, "reconcile-dry-run", runs[0].Mode)
	assert.JSONEq(t, `{"statusChanges": 0}`, string(runs[0].Summary))
	assert.Equal(t, start, runs[1].StartedAt)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Re-opening an already migrated database is a no-op.
	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	runs, err := db.ListRuns(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
