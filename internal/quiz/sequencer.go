package quiz

// DefaultBudget is the number of re-insertions a memorization session allows.
const DefaultBudget = 5

// Sequencer decides whether a missed question is asked again later.
// Each re-insertion spends one unit of budget, so a session always ends.
type Sequencer struct {
	remaining int
}

func NewSequencer(budget int) *Sequencer {
	if budget < 0 {
		budget = 0
	}
	return &Sequencer{remaining: budget}
}

// Remaining returns the unspent budget.
func (s *Sequencer) Remaining() int {
	return s.remaining
}

// Requeue is called on a miss at index of a sequence of the given length and
// reports whether the missed kind should be appended. Near the end of the
// sequence the budget is clamped to the number of questions left.
func (s *Sequencer) Requeue(length, index int) bool {
	left := length - index
	switch {
	case left == 1 && s.remaining > 1:
		s.remaining = 1
	case left == 2 && s.remaining > 2:
		s.remaining = 2
	}
	if s.remaining == 0 {
		return false
	}
	s.remaining--
	return true
}
