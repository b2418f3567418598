package quiz_test

import (
	"testing"

	"element-quiz/internal/quiz"
	"github.com/stretchr/testify/assert"
)

func TestSequencerRequeue(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name      string
		budget    int
		length    int
		index     int
		want      bool
		remaining int
	}{
		{"plenty left spends one", 5, 10, 0, true, 4},
		{"last question clamps to one", 5, 1, 0, true, 0},
		{"two left clamps to two", 5, 4, 2, true, 1},
		{"two left with small budget", 1, 2, 0, true, 0},
		{"exhausted budget", 0, 10, 3, false, 0},
		{"negative budget treated as empty", -3, 10, 0, false, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			seq := quiz.NewSequencer(tc.budget)
			assert.Equal(t, tc.want, seq.Requeue(tc.length, tc.index))
			assert.Equal(t, tc.remaining, seq.Remaining())
		})
	}
}

func TestSequencerNeverExceedsBudget(t *testing.T) {
	t.Parallel()
	seq := quiz.NewSequencer(quiz.DefaultBudget)
	length := 20
	for index := 0; index < length; index++ {
		if seq.Requeue(length, index) {
			length++
		}
	}
	assert.Equal(t, 20+quiz.DefaultBudget, length)
	assert.Zero(t, seq.Remaining())
}
