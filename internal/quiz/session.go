package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"element-quiz/internal/domain"
)

// ErrEmptySequence is returned by Start when the kind policy yields no questions.
var ErrEmptySequence = errors.New("quiz: empty question sequence")

// State is the lifecycle position of a Session.
type State int

const (
	// StateIdle is a session that has not been started.
	StateIdle State = iota
	// StateQuestion awaits an answer to the current question.
	StateQuestion
	// StateAnswer shows the outcome of the last answer.
	StateAnswer
	// StateScore is terminal: the sequence is exhausted.
	StateScore
)

var stateNames = [...]string{"idle", "question", "answer", "score"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Config selects how a session builds its questions.
type Config struct {
	Kinds    KindPolicy
	Subjects SubjectPolicy
	// Adaptive re-queues missed kinds, spending Budget re-insertions
	// (DefaultBudget when zero).
	Adaptive bool
	Budget   int
}

// Question is what the host renders while a question is open.
type Question struct {
	Index   int
	Total   int
	Kind    Kind
	Prompt  string
	Subject domain.Element
	Options []string
}

// Outcome is returned for every submitted answer.
type Outcome struct {
	Correct  bool
	Answer   string
	Score    int
	Answered int
}

// Result summarizes a finished session.
type Result struct {
	Correct int
	Total   int
	Missed  []Kind
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionRand sets the random source for subject draws, kind shuffles,
// option order and, unless WithGenerator is also given, distractor sampling.
func WithSessionRand(rnd *rand.Rand) SessionOption {
	return func(s *Session) { s.rnd = rnd }
}

// WithGenerator sets the distractor generator.
func WithGenerator(g *Generator) SessionOption {
	return func(s *Session) { s.gen = g }
}

// WithCompletion registers fn to run once when the session reaches StateScore.
func WithCompletion(fn func(Result)) SessionOption {
	return func(s *Session) { s.onComplete = fn }
}

// Session is the question/answer/score state machine. It is not safe for
// concurrent use; the pool is only read and may be shared between sessions.
type Session struct {
	cfg        Config
	pool       []domain.Element
	gen        *Generator
	rnd        *rand.Rand
	onComplete func(Result)

	state     State
	sequence  []Kind
	index     int
	deck      []domain.Element
	drawn     int
	subject   domain.Element
	correct   int
	answered  int
	missed    map[Kind]struct{}
	sequencer *Sequencer
	current   *Question
}

// NewSession validates cfg against pool and returns an idle session.
func NewSession(cfg Config, pool []domain.Element, opts ...SessionOption) (*Session, error) {
	if cfg.Kinds == nil || cfg.Subjects == nil {
		return nil, errors.New("quiz: kind and subject policies are required")
	}
	for _, k := range cfg.Kinds.kinds() {
		if !k.Valid() {
			return nil, fmt.Errorf("%w: %d", domain.ErrUnknownKind, int(k))
		}
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: empty pool", domain.ErrPoolTooSmall)
	}
	if cfg.Subjects.size(pool) == 0 {
		return nil, fmt.Errorf("%w: no subjects", domain.ErrPoolTooSmall)
	}
	if cfg.Budget == 0 {
		cfg.Budget = DefaultBudget
	}
	s := &Session{cfg: cfg, pool: pool}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.gen == nil {
		s.gen = NewGenerator(WithRand(s.rnd))
	}
	return s, nil
}

// Start (re)initializes the sequence and opens the first question. Every kind
// the policy can ask is checked against the pool up front.
func (s *Session) Start() error {
	if err := s.gen.CheckPool(s.pool, s.cfg.Kinds.kinds()...); err != nil {
		return err
	}
	sequence := s.cfg.Kinds.sequence(s.cfg.Subjects.size(s.pool), s.rnd)
	if len(sequence) == 0 {
		return ErrEmptySequence
	}

	s.sequence = sequence
	s.index = 0
	s.correct = 0
	s.answered = 0
	s.missed = make(map[Kind]struct{})
	s.sequencer = nil
	if s.cfg.Adaptive {
		s.sequencer = NewSequencer(s.cfg.Budget)
	}
	s.deck = nil
	s.drawn = 0
	s.nextSubject()
	s.current = nil
	s.state = StateQuestion
	return nil
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Index returns the position of the current question.
func (s *Session) Index() int { return s.index }

// Len returns the current sequence length, including re-queued questions.
func (s *Session) Len() int { return len(s.sequence) }

// Score returns the number of correct answers so far.
func (s *Session) Score() int { return s.correct }

// RemainingBudget returns the unspent re-insertion budget, or 0 when the
// session is not adaptive.
func (s *Session) RemainingBudget() int {
	if s.sequencer == nil {
		return 0
	}
	return s.sequencer.Remaining()
}

// MissedKinds returns the kinds missed and not yet answered correctly since.
func (s *Session) MissedKinds() []Kind {
	kinds := make([]Kind, 0, len(s.missed))
	for k := range s.missed {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// CurrentQuestion returns the open question. Options are generated and shuffled
// on the first call for an index; later calls return the same order.
func (s *Session) CurrentQuestion() (Question, error) {
	if s.state != StateQuestion && s.state != StateAnswer {
		return Question{}, s.violation("current question")
	}
	if s.current != nil {
		return s.copyCurrent(), nil
	}

	kind := s.sequence[s.index]
	options, err := s.gen.Generate(kind, s.subject, s.pool)
	if err != nil {
		return Question{}, err
	}
	s.rnd.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	s.current = &Question{
		Index:   s.index,
		Total:   len(s.sequence),
		Kind:    kind,
		Prompt:  kind.Prompt(),
		Subject: s.subject,
		Options: options,
	}
	return s.copyCurrent(), nil
}

func (s *Session) copyCurrent() Question {
	q := *s.current
	q.Total = len(s.sequence)
	q.Options = append([]string(nil), s.current.Options...)
	return q
}

// SubmitAnswer judges option against the canonical answer for the current
// question and moves to StateAnswer.
func (s *Session) SubmitAnswer(option string) (Outcome, error) {
	if s.state != StateQuestion {
		return Outcome{}, s.violation("submit answer")
	}
	kind := s.sequence[s.index]
	answer, err := Format(kind, s.subject)
	if err != nil {
		return Outcome{}, err
	}

	correct := option == answer
	s.answered++
	if correct {
		s.correct++
		delete(s.missed, kind)
	} else {
		s.missed[kind] = struct{}{}
		if s.sequencer != nil && s.sequencer.Requeue(len(s.sequence), s.index) {
			s.sequence = append(s.sequence, kind)
		}
	}
	s.state = StateAnswer
	return Outcome{Correct: correct, Answer: answer, Score: s.correct, Answered: s.answered}, nil
}

// Advance opens the next question or, when the sequence is exhausted, moves to
// StateScore and runs the completion callback.
func (s *Session) Advance() error {
	if s.state != StateAnswer {
		return s.violation("advance")
	}
	if s.index+1 < len(s.sequence) {
		s.index++
		s.nextSubject()
		s.current = nil
		s.state = StateQuestion
		return nil
	}
	s.current = nil
	s.state = StateScore
	if s.onComplete != nil {
		s.onComplete(s.result())
	}
	return nil
}

// Result returns the final score; only valid in StateScore.
func (s *Session) Result() (Result, error) {
	if s.state != StateScore {
		return Result{}, s.violation("result")
	}
	return s.result(), nil
}

func (s *Session) result() Result {
	return Result{Correct: s.correct, Total: len(s.sequence), Missed: s.MissedKinds()}
}

func (s *Session) nextSubject() {
	if s.drawn >= len(s.deck) {
		s.deck = s.cfg.Subjects.deck(s.pool, s.rnd)
		s.drawn = 0
	}
	s.subject = s.deck[s.drawn]
	s.drawn++
}

func (s *Session) violation(op string) error {
	return fmt.Errorf("%w: %s in state %s", domain.ErrProtocolViolation, op, s.state)
}
