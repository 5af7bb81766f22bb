package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecorder(t *testing.T) *Recorder {
	t.Helper()

	db, err := NewDatabase(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRecorder(db)
}

func TestRecordAndRecent(t *testing.T) {
	r := testRecorder(t)
	ctx := context.Background()

	require.NoError(t, r.Record(ctx, "fzf", []string{"app.tx", "app.rx"}))
	require.NoError(t, r.Record(ctx, "builtin", []string{"tsch.synced"}))

	selections, err := r.Recent(ctx, QueryFilter{})
	require.NoError(t, err)
	require.Len(t, selections, 2)

	// Newest first
	assert.Equal(t, "builtin", selections[0].Picker)
	assert.Equal(t, []string{"tsch.synced"}, selections[0].Items)
	assert.Equal(t, "fzf", selections[1].Picker)
	assert.Equal(t, []string{"app.tx", "app.rx"}, selections[1].Items)
}

func TestRecordRejectsEmptySelection(t *testing.T) {
	r := testRecorder(t)

	err := r.Record(context.Background(), "fzf", nil)
	assert.Error(t, err)
}

func TestRecordPreservesItemOrder(t *testing.T) {
	r := testRecorder(t)
	ctx := context.Background()

	items := []string{"simulator.state", "rpl.churn", "conn.matrix.update"}
	require.NoError(t, r.Record(ctx, "fzf", items))

	selections, err := r.Recent(ctx, QueryFilter{})
	require.NoError(t, err)
	require.Len(t, selections, 1)
	assert.Equal(t, items, selections[0].Items)
}

func TestRecentLimit(t *testing.T) {
	r := testRecorder(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, r.Record(ctx, "fzf", []string{"app.tx"}))
	}

	selections, err := r.Recent(ctx, QueryFilter{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, selections, 3)
}

func TestRecentEmptyDatabase(t *testing.T) {
	r := testRecorder(t)

	selections, err := r.Recent(context.Background(), QueryFilter{})
	require.NoError(t, err)
	assert.Empty(t, selections)
}

func TestTopSettings(t *testing.T) {
	r := testRecorder(t)
	ctx := context.Background()

	require.NoError(t, r.Record(ctx, "fzf", []string{"app.tx", "app.rx"}))
	require.NoError(t, r.Record(ctx, "fzf", []string{"app.tx", "tsch.synced"}))
	require.NoError(t, r.Record(ctx, "builtin", []string{"app.tx"}))

	counts, err := r.TopSettings(ctx, QueryFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, counts)

	assert.Equal(t, "app.tx", counts[0].Name)
	assert.Equal(t, 3, counts[0].Count)

	// Ties broken by name
	assert.Equal(t, "app.rx", counts[1].Name)
	assert.Equal(t, "tsch.synced", counts[2].Name)
}

func TestRecentInvalidSinceFilter(t *testing.T) {
	r := testRecorder(t)

	_, err := r.Recent(context.Background(), QueryFilter{Since: "not a date at all %%%"})
	assert.Error(t, err)
}
