package quiz

import (
	"fmt"
	"math/rand"
	"time"

	"element-quiz/internal/domain"
)

// OptionCount is the number of choices offered per question.
const OptionCount = 4

// PlasmaDecoy is always offered for phase questions. Elements only come in
// three phases, so without it phase questions could never fill four options.
const PlasmaDecoy = "Plasma"

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithRand sets the random source used to sample distractors.
func WithRand(rnd *rand.Rand) GeneratorOption {
	return func(g *Generator) { g.rnd = rnd }
}

// WithDecoys replaces the fixed decoys seeded for a kind.
func WithDecoys(kind Kind, decoys ...string) GeneratorOption {
	return func(g *Generator) { g.decoys[kind] = decoys }
}

// Generator builds multiple-choice options from an element pool.
type Generator struct {
	rnd    *rand.Rand
	decoys map[Kind][]string
}

func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		decoys: map[Kind][]string{KindPhase: {PlasmaDecoy}},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns OptionCount unique option strings, the first of which is the
// canonical answer for correct. Distractors are sampled uniformly from pool with
// replacement; a pool that cannot supply enough distinct values fails with
// domain.ErrPoolTooSmall instead of sampling forever.
func (g *Generator) Generate(kind Kind, correct domain.Element, pool []domain.Element) ([]string, error) {
	answer, err := Format(kind, correct)
	if err != nil {
		return nil, err
	}

	options := make([]string, 0, OptionCount)
	seen := make(map[string]struct{}, OptionCount)
	add := func(s string) {
		if len(options) == OptionCount {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		options = append(options, s)
	}
	add(answer)
	for _, decoy := range g.decoys[kind] {
		add(decoy)
	}

	values, err := g.poolValues(kind, pool)
	if err != nil {
		return nil, err
	}
	for len(options) < OptionCount {
		add(values[g.rnd.Intn(len(values))])
	}
	return options, nil
}

// CheckPool verifies that pool can produce questions of every kind given.
func (g *Generator) CheckPool(pool []domain.Element, kinds ...Kind) error {
	for _, kind := range kinds {
		if _, err := g.poolValues(kind, pool); err != nil {
			return err
		}
	}
	return nil
}

// poolValues formats every pool element for kind and enforces that, together
// with the kind's decoys, at least OptionCount distinct values exist.
func (g *Generator) poolValues(kind Kind, pool []domain.Element) ([]string, error) {
	values := make([]string, len(pool))
	distinct := make(map[string]struct{}, len(pool)+len(g.decoys[kind]))
	for _, decoy := range g.decoys[kind] {
		distinct[decoy] = struct{}{}
	}
	for i, el := range pool {
		v, err := Format(kind, el)
		if err != nil {
			return nil, err
		}
		values[i] = v
		distinct[v] = struct{}{}
	}
	if len(distinct) < OptionCount {
		return nil, fmt.Errorf("%w: %s has %d distinct values in a pool of %d",
			domain.ErrPoolTooSmall, kind, len(distinct), len(pool))
	}
	return values, nil
}
