package quiz

import (
	"math/rand"

	"element-quiz/internal/domain"
)

// KindPolicy decides the initial sequence of question kinds.
// Implementations are FixedKind, OnePerElement, CycleOfKinds and ShuffledKinds.
type KindPolicy interface {
	sequence(subjects int, rnd *rand.Rand) []Kind
	kinds() []Kind
}

// SubjectPolicy decides which element each question is about.
// Implementations are SingleElement, ShuffledPool and ShuffledSubset.
type SubjectPolicy interface {
	deck(pool []domain.Element, rnd *rand.Rand) []domain.Element
	// size is the number of subjects OnePerElement asks about.
	size(pool []domain.Element) int
}

type fixedKind struct {
	kind   Kind
	length int
}

// FixedKind asks the same kind length times.
func FixedKind(kind Kind, length int) KindPolicy {
	return fixedKind{kind: kind, length: length}
}

func (p fixedKind) sequence(int, *rand.Rand) []Kind { return repeat([]Kind{p.kind}, p.length) }
func (p fixedKind) kinds() []Kind                   { return []Kind{p.kind} }

type onePerElement struct {
	kind Kind
}

// OnePerElement asks kind once for every subject: the whole pool, or the
// subset given to ShuffledSubset.
func OnePerElement(kind Kind) KindPolicy {
	return onePerElement{kind: kind}
}

func (p onePerElement) sequence(subjects int, _ *rand.Rand) []Kind {
	return repeat([]Kind{p.kind}, subjects)
}
func (p onePerElement) kinds() []Kind { return []Kind{p.kind} }

type cycleOfKinds struct {
	list    []Kind
	length  int
	shuffle bool
}

// CycleOfKinds asks the kinds in order, cycling until length questions exist.
// A length of zero asks every kind once.
func CycleOfKinds(kinds []Kind, length int) KindPolicy {
	return cycleOfKinds{list: append([]Kind(nil), kinds...), length: length}
}

// ShuffledKinds is CycleOfKinds with the resulting sequence shuffled at start.
func ShuffledKinds(kinds []Kind, length int) KindPolicy {
	return cycleOfKinds{list: append([]Kind(nil), kinds...), length: length, shuffle: true}
}

func (p cycleOfKinds) sequence(_ int, rnd *rand.Rand) []Kind {
	length := p.length
	if length == 0 {
		length = len(p.list)
	}
	seq := repeat(p.list, length)
	if p.shuffle {
		rnd.Shuffle(len(seq), func(i, j int) { seq[i], seq[j] = seq[j], seq[i] })
	}
	return seq
}
func (p cycleOfKinds) kinds() []Kind { return p.list }

func repeat(kinds []Kind, length int) []Kind {
	if len(kinds) == 0 || length <= 0 {
		return nil
	}
	seq := make([]Kind, length)
	for i := range seq {
		seq[i] = kinds[i%len(kinds)]
	}
	return seq
}

type singleElement struct {
	el domain.Element
}

// SingleElement asks every question about el.
func SingleElement(el domain.Element) SubjectPolicy {
	return singleElement{el: el}
}

func (p singleElement) deck([]domain.Element, *rand.Rand) []domain.Element {
	return []domain.Element{p.el}
}
func (singleElement) size(pool []domain.Element) int { return len(pool) }

type shuffledPool struct{}

// ShuffledPool draws subjects from a shuffled copy of the pool, reshuffling
// once every element has been used.
func ShuffledPool() SubjectPolicy {
	return shuffledPool{}
}

func (shuffledPool) deck(pool []domain.Element, rnd *rand.Rand) []domain.Element {
	return shuffled(pool, rnd)
}
func (shuffledPool) size(pool []domain.Element) int { return len(pool) }

type shuffledSubset struct {
	subjects []domain.Element
}

// ShuffledSubset draws subjects only from subjects, shuffled and reshuffled
// like ShuffledPool. Distractors still come from the session pool.
func ShuffledSubset(subjects []domain.Element) SubjectPolicy {
	return shuffledSubset{subjects: append([]domain.Element(nil), subjects...)}
}

func (p shuffledSubset) deck(_ []domain.Element, rnd *rand.Rand) []domain.Element {
	return shuffled(p.subjects, rnd)
}
func (p shuffledSubset) size([]domain.Element) int { return len(p.subjects) }

func shuffled(elements []domain.Element, rnd *rand.Rand) []domain.Element {
	deck := append([]domain.Element(nil), elements...)
	rnd.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}
