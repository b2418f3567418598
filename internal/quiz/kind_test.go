package quiz_test

import (
	"encoding/json"
	"testing"

	"element-quiz/internal/domain"
	"element-quiz/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindNamesAndPrompts(t *testing.T) {
	t.Parallel()
	kinds := quiz.AllKinds()
	require.Len(t, kinds, 11)

	for _, kind := range kinds {
		parsed, err := quiz.ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
		assert.NotEmpty(t, kind.Prompt())
	}
}

func TestParseKindUnknown(t *testing.T) {
	t.Parallel()
	_, err := quiz.ParseKind("half-life")
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestKindJSON(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal([]quiz.Kind{quiz.KindPhase, quiz.KindBoilingPoint})
	require.NoError(t, err)
	assert.JSONEq(t, `["phase","boiling-point"]`, string(data))

	var kinds []quiz.Kind
	require.NoError(t, json.Unmarshal([]byte(`["group","latin-name"]`), &kinds))
	assert.Equal(t, []quiz.Kind{quiz.KindGroup, quiz.KindLatinName}, kinds)
}
