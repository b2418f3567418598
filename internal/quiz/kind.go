package quiz

import (
	"fmt"

	"element-quiz/internal/domain"
)

// Kind is the topic of a question; each kind maps to one element attribute.
type Kind int

const (
	KindLatinName Kind = iota
	KindCommonName
	KindAtomicMass
	KindOrderNumber
	KindCategory
	KindDensity
	KindPeriod
	KindGroup
	KindPhase
	KindBoilingPoint
	KindMeltingPoint
)

var kindNames = [...]string{
	KindLatinName:    "latin-name",
	KindCommonName:   "common-name",
	KindAtomicMass:   "atomic-mass",
	KindOrderNumber:  "order-number",
	KindCategory:     "category",
	KindDensity:      "density",
	KindPeriod:       "period",
	KindGroup:        "group",
	KindPhase:        "phase",
	KindBoilingPoint: "boiling-point",
	KindMeltingPoint: "melting-point",
}

var kindPrompts = [...]string{
	KindLatinName:    "What is the Latin name of this element?",
	KindCommonName:   "What is the name of this element?",
	KindAtomicMass:   "What is the atomic mass of this element?",
	KindOrderNumber:  "What is the atomic number of this element?",
	KindCategory:     "Which category does this element belong to?",
	KindDensity:      "What is the density of this element (g/cm3)?",
	KindPeriod:       "In which period is this element?",
	KindGroup:        "In which group is this element?",
	KindPhase:        "What is the phase of this element at room temperature?",
	KindBoilingPoint: "What is the boiling point of this element?",
	KindMeltingPoint: "What is the melting point of this element?",
}

// AllKinds returns every kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Prompt returns the question sentence shown for k.
func (k Kind) Prompt() string {
	if !k.Valid() {
		return ""
	}
	return kindPrompts[k]
}

// ParseKind resolves a kind from its wire name.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", domain.ErrUnknownKind, name)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownKind, int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
