package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"element-quiz/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewResultStore(db)
	finished := time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, domain.Result{
		SessionID: "s1", UserID: "u1", Mode: domain.ModeMemorization, Element: 26,
		Correct: 9, Total: 13, Missed: []string{"density", "phase"}, FinishedAt: finished,
	}))
	require.NoError(t, store.Record(ctx, domain.Result{
		SessionID: "s2", UserID: "u1", Mode: domain.ModeMemorization, Element: 26,
		Correct: 11, Total: 11, Learned: true, FinishedAt: finished.Add(time.Minute),
	}))
	// duplicate session ids are ignored
	require.NoError(t, store.Record(ctx, domain.Result{
		SessionID: "s2", UserID: "u1", Mode: domain.ModeMemorization, Element: 26,
		Correct: 11, Total: 11, Learned: true, FinishedAt: finished.Add(time.Minute),
	}))
	require.NoError(t, store.Record(ctx, domain.Result{
		SessionID: "s3", UserID: "u2", Mode: domain.ModeBigGame, Correct: 4, Total: 20, FinishedAt: finished,
	}))

	results, err := store.Results(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []string{"density", "phase"}, results[0].Missed)
	assert.Equal(t, finished, results[0].FinishedAt)
	assert.Empty(t, results[1].Missed)
	assert.True(t, results[1].Learned)

	progress, err := store.Progress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.Progress{UserID: "u1", Sessions: 2, Correct: 20, Total: 24, Learned: []int{26}}, progress)

	empty, err := store.Progress(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Sessions)
	assert.Empty(t, empty.Learned)
}
