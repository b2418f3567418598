package memory

import (
	"context"
	"reflect"
	"testing"

	"element-quiz/internal/domain"
)

func TestResultStoreProgress(t *testing.T) {
	ctx := context.Background()
	store := NewResultStore()

	results := []domain.Result{
		{UserID: "u1", Mode: domain.ModeMemorization, Element: 26, Correct: 11, Total: 11, Learned: true},
		{UserID: "u1", Mode: domain.ModeMemorization, Element: 8, Correct: 9, Total: 13},
		{UserID: "u1", Mode: domain.ModeMemorization, Element: 1, Correct: 11, Total: 11, Learned: true},
		{UserID: "u1", Mode: domain.ModeMemorization, Element: 26, Correct: 11, Total: 11, Learned: true},
		{UserID: "u2", Mode: domain.ModeBigGame, Correct: 3, Total: 20},
	}
	for _, r := range results {
		if err := store.Record(ctx, r); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	progress, err := store.Progress(ctx, "u1")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	want := domain.Progress{UserID: "u1", Sessions: 4, Correct: 42, Total: 46, Learned: []int{1, 26}}
	if !reflect.DeepEqual(progress, want) {
		t.Fatalf("expected %+v, got %+v", want, progress)
	}

	empty, _ := store.Progress(ctx, "nobody")
	if empty.Sessions != 0 || len(empty.Learned) != 0 {
		t.Fatalf("expected empty progress, got %+v", empty)
	}
}
