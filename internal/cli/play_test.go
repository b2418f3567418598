package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"element-quiz/internal/app"
	"element-quiz/internal/dataset"
	"element-quiz/internal/domain"
	"element-quiz/internal/infra/memory"
	"element-quiz/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlayService(t *testing.T) (*app.QuizService, *memory.ResultStore) {
	t.Helper()
	elements, err := dataset.Load()
	require.NoError(t, err)
	results := memory.NewResultStore()
	service := app.NewQuizService(
		memory.NewElementRepository(memory.NewStaticElementLoader(elements), time.Minute),
		memory.NewSessionStore(),
		results,
		app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return service, results
}

func TestPlayQuizRunsToScore(t *testing.T) {
	ctx := context.Background()
	service, results := newPlayService(t)

	req, err := playRequest("u1", "big-game", 0, []string{"period"}, nil, 3)
	require.NoError(t, err)

	var out bytes.Buffer
	in := strings.NewReader("abc\n9\n1\n2\n3\n")
	require.NoError(t, playQuiz(ctx, service, req, in, &out))

	text := out.String()
	assert.Contains(t, text, "[1/3]")
	assert.Contains(t, text, "enter a number between 1 and 4")
	assert.Contains(t, text, "Score: ")
	assert.NotContains(t, text, "Element learned!")

	progress, err := results.Progress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Sessions)
	assert.Equal(t, 3, progress.Total)
}

func TestPlayQuizAbandonsOnEOF(t *testing.T) {
	ctx := context.Background()
	service, results := newPlayService(t)

	req, err := playRequest("u1", "memorization", 1, nil, nil, 0)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, playQuiz(ctx, service, req, strings.NewReader("1\n"), &out))
	assert.Contains(t, out.String(), "quiz abandoned")

	progress, err := results.Progress(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, progress.Sessions)
}

func TestPlayRequestValidation(t *testing.T) {
	_, err := playRequest("u1", "speed-run", 0, nil, nil, 0)
	assert.ErrorIs(t, err, domain.ErrUnknownMode)

	_, err = playRequest("u1", "memorization", 1, []string{"color"}, nil, 0)
	assert.ErrorIs(t, err, domain.ErrUnknownKind)

	req, err := playRequest("u1", "category-test", 0, []string{"phase"}, []string{"Halogen"}, 0)
	require.NoError(t, err)
	assert.Equal(t, []quiz.Kind{quiz.KindPhase}, req.Kinds)
	assert.Equal(t, domain.ModeCategoryTest, req.Mode)
}
