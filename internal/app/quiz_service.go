package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"element-quiz/internal/dataset"
	"element-quiz/internal/domain"
	"element-quiz/internal/quiz"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// ElementRepository supplies the element pool (from cache/backing store).
type ElementRepository interface {
	Elements(ctx context.Context) ([]domain.Element, error)
}

// SessionRepository abstracts how in-flight plays are kept (in-memory, Redis, etc).
type SessionRepository interface {
	Put(play *Play)
	Get(sessionID string) (*Play, bool)
	Delete(sessionID string)
}

// ResultRepository persists finished sessions and learning progress.
type ResultRepository interface {
	Record(ctx context.Context, result domain.Result) error
	Progress(ctx context.Context, userID string) (domain.Progress, error)
}

// Settings tunes the mode presets.
type Settings struct {
	AdaptiveBudget     int
	MemorizationLength int
	BigGameLength      int
}

// Option configures a QuizService.
type Option func(*QuizService)

func WithLogger(log *slog.Logger) Option { return func(s *QuizService) { s.log = log } }

func WithSettings(settings Settings) Option { return func(s *QuizService) { s.settings = settings } }

// WithRandSource sets the factory for per-session random sources.
func WithRandSource(fn func() *rand.Rand) Option { return func(s *QuizService) { s.newRand = fn } }

func WithClock(now func() time.Time) Option { return func(s *QuizService) { s.now = now } }

// QuizService hosts quiz sessions: it builds them from mode presets, relays
// the question/answer lifecycle and records finished results.
type QuizService struct {
	elements ElementRepository
	sessions SessionRepository
	results  ResultRepository
	settings Settings
	log      *slog.Logger
	newRand  func() *rand.Rand
	now      func() time.Time
}

func NewQuizService(elements ElementRepository, sessions SessionRepository, results ResultRepository, opts ...Option) *QuizService {
	s := &QuizService{
		elements: elements,
		sessions: sessions,
		results:  results,
		settings: Settings{AdaptiveBudget: quiz.DefaultBudget, BigGameLength: 20},
		log:      slog.Default(),
		newRand:  func() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartRequest describes the quiz a user asked for.
type StartRequest struct {
	UserID     string
	Mode       domain.Mode
	Element    int // order number of the memorization target
	Kinds      []quiz.Kind
	Categories []string
	Length     int
}

// Snapshot is the host-facing view of a play.
type Snapshot struct {
	SessionID string     `json:"sessionId"`
	State     quiz.State `json:"state"`
	Index     int        `json:"index"`
	Total     int        `json:"total"`
	Score     int        `json:"score"`
	Kind      *quiz.Kind `json:"kind,omitempty"`
	Prompt    string     `json:"prompt,omitempty"`
	Symbol    string     `json:"symbol,omitempty"`
	Options   []string   `json:"options,omitempty"`
}

// AnswerResult is the outcome of a submitted option.
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Score         int    `json:"score"`
	Answered      int    `json:"answered"`
}

// Play is one user's in-flight session.
type Play struct {
	ID        string
	UserID    string
	Mode      domain.Mode
	Element   int
	CreatedAt time.Time

	mu       sync.Mutex
	session  *quiz.Session
	finished *quiz.Result
	recorded *domain.Result
}

// NewPlay wraps a started session; exported for infrastructure tests.
func NewPlay(id, userID string, mode domain.Mode, session *quiz.Session) *Play {
	return &Play{ID: id, UserID: userID, Mode: mode, session: session, CreatedAt: time.Now()}
}

// Start builds a session for the requested mode and opens its first question.
func (s *QuizService) Start(ctx context.Context, req StartRequest) (Snapshot, error) {
	pool, err := s.elements.Elements(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load elements: %w", err)
	}
	cfg, pool, err := s.sessionConfig(req, pool)
	if err != nil {
		return Snapshot{}, err
	}

	play := &Play{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Mode:      req.Mode,
		Element:   req.Element,
		CreatedAt: s.now(),
	}
	session, err := quiz.NewSession(cfg, pool,
		quiz.WithSessionRand(s.newRand()),
		quiz.WithCompletion(func(r quiz.Result) { play.finished = &r }),
	)
	if err != nil {
		return Snapshot{}, err
	}
	if err := session.Start(); err != nil {
		return Snapshot{}, fmt.Errorf("start %s session: %w", req.Mode, err)
	}
	play.session = session
	s.sessions.Put(play)

	s.log.InfoContext(ctx, "quiz session started",
		"session_id", play.ID, "user_id", play.UserID, "mode", play.Mode, "questions", session.Len())

	play.mu.Lock()
	defer play.mu.Unlock()
	return snapshot(play)
}

func (s *QuizService) sessionConfig(req StartRequest, pool []domain.Element) (quiz.Config, []domain.Element, error) {
	switch req.Mode {
	case domain.ModeMemorization:
		target, err := dataset.Find(pool, req.Element)
		if err != nil {
			return quiz.Config{}, nil, err
		}
		kinds := req.Kinds
		if len(kinds) == 0 {
			kinds = quiz.AllKinds()
		}
		length := req.Length
		if length == 0 {
			length = s.settings.MemorizationLength
		}
		return quiz.Config{
			Kinds:    quiz.CycleOfKinds(kinds, length),
			Subjects: quiz.SingleElement(target),
			Adaptive: true,
			Budget:   s.settings.AdaptiveBudget,
		}, pool, nil

	case domain.ModeCategoryTest:
		kind := quiz.KindCategory
		if len(req.Kinds) > 0 {
			kind = req.Kinds[0]
		}
		// Subjects come from the filtered categories, distractors from the whole pool.
		return quiz.Config{
			Kinds:    quiz.OnePerElement(kind),
			Subjects: quiz.ShuffledSubset(dataset.ByCategory(pool, req.Categories...)),
		}, pool, nil

	case domain.ModeBigGame:
		kinds := req.Kinds
		if len(kinds) == 0 {
			kinds = quiz.AllKinds()
		}
		length := req.Length
		if length == 0 {
			length = s.settings.BigGameLength
		}
		return quiz.Config{
			Kinds:    quiz.ShuffledKinds(kinds, length),
			Subjects: quiz.ShuffledPool(),
		}, pool, nil
	}
	return quiz.Config{}, nil, fmt.Errorf("%w: %q", domain.ErrUnknownMode, req.Mode)
}

// Question returns the current view of a play.
func (s *QuizService) Question(_ context.Context, sessionID string) (Snapshot, error) {
	play, err := s.play(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	play.mu.Lock()
	defer play.mu.Unlock()
	return snapshot(play)
}

// Answer submits an option for the open question.
func (s *QuizService) Answer(ctx context.Context, sessionID, option string) (AnswerResult, error) {
	play, err := s.play(sessionID)
	if err != nil {
		return AnswerResult{}, err
	}
	play.mu.Lock()
	defer play.mu.Unlock()

	out, err := play.session.SubmitAnswer(option)
	if err != nil {
		return AnswerResult{}, err
	}
	s.log.DebugContext(ctx, "answer submitted",
		"session_id", play.ID, "correct", out.Correct, "score", out.Score)
	return AnswerResult{
		Correct:       out.Correct,
		CorrectAnswer: out.Answer,
		Score:         out.Score,
		Answered:      out.Answered,
	}, nil
}

// Advance moves to the next question. When the play finishes its result is
// recorded and the returned snapshot is in the score state.
func (s *QuizService) Advance(ctx context.Context, sessionID string) (Snapshot, error) {
	play, err := s.play(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	play.mu.Lock()
	defer play.mu.Unlock()

	if err := play.session.Advance(); err != nil {
		return Snapshot{}, err
	}
	if err := s.record(ctx, play); err != nil {
		return Snapshot{}, err
	}
	return snapshot(play)
}

// record persists the result of a finished play once. It must be called with
// play.mu held.
func (s *QuizService) record(ctx context.Context, play *Play) error {
	if play.finished == nil || play.recorded != nil {
		return nil
	}
	result := s.toResult(play, *play.finished)
	if err := s.results.Record(ctx, result); err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	play.recorded = &result
	s.log.InfoContext(ctx, "quiz session finished",
		"session_id", play.ID, "user_id", play.UserID, "correct", result.Correct,
		"total", result.Total, "learned", result.Learned)
	return nil
}

// Result returns the recorded result of a finished play, retrying the write
// if it failed when the play finished.
func (s *QuizService) Result(ctx context.Context, sessionID string) (domain.Result, error) {
	play, err := s.play(sessionID)
	if err != nil {
		return domain.Result{}, err
	}
	play.mu.Lock()
	defer play.mu.Unlock()

	if _, err := play.session.Result(); err != nil {
		return domain.Result{}, err
	}
	if err := s.record(ctx, play); err != nil {
		return domain.Result{}, err
	}
	return *play.recorded, nil
}

// Abandon drops a play; nothing is recorded for unfinished sessions.
func (s *QuizService) Abandon(ctx context.Context, sessionID string) {
	if _, ok := s.sessions.Get(sessionID); !ok {
		return
	}
	s.sessions.Delete(sessionID)
	s.log.DebugContext(ctx, "quiz session dropped", "session_id", sessionID)
}

// Progress returns the learning progress of a user.
func (s *QuizService) Progress(ctx context.Context, userID string) (domain.Progress, error) {
	return s.results.Progress(ctx, userID)
}

// Elements returns the element pool.
func (s *QuizService) Elements(ctx context.Context) ([]domain.Element, error) {
	return s.elements.Elements(ctx)
}

func (s *QuizService) play(sessionID string) (*Play, error) {
	play, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return play, nil
}

func (s *QuizService) toResult(play *Play, r quiz.Result) domain.Result {
	result := domain.Result{
		SessionID:  play.ID,
		UserID:     play.UserID,
		Mode:       play.Mode,
		Correct:    r.Correct,
		Total:      r.Total,
		Missed:     lo.Map(r.Missed, func(k quiz.Kind, _ int) string { return k.String() }),
		FinishedAt: s.now(),
	}
	if play.Mode == domain.ModeMemorization {
		result.Element = play.Element
		result.Learned = len(r.Missed) == 0
	}
	return result
}

// snapshot must be called with play.mu held.
func snapshot(play *Play) (Snapshot, error) {
	session := play.session
	snap := Snapshot{
		SessionID: play.ID,
		State:     session.State(),
		Index:     session.Index(),
		Total:     session.Len(),
		Score:     session.Score(),
	}
	if snap.State == quiz.StateScore {
		return snap, nil
	}
	q, err := session.CurrentQuestion()
	if err != nil {
		return Snapshot{}, err
	}
	snap.Kind = &q.Kind
	snap.Prompt = q.Prompt
	snap.Symbol = q.Subject.Symbol
	snap.Options = q.Options
	return snap, nil
}
