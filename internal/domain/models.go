package domain

import "time"

// Element is one chemical element as delivered by the bundled dataset.
// Boiling and melting points are kelvin values kept as the raw dataset strings.
type Element struct {
	Name         string   `json:"name" yaml:"name" validate:"required"`
	LatinName    string   `json:"latinName" yaml:"latinName" validate:"required"`
	AtomicMass   float64  `json:"atomicMass" yaml:"atomicMass" validate:"gt=0"`
	OrderNumber  int      `json:"orderNumber" yaml:"orderNumber" validate:"gt=0"`
	Symbol       string   `json:"symbol" yaml:"symbol" validate:"required"`
	Category     string   `json:"category" yaml:"category" validate:"required"`
	Density      *float64 `json:"density,omitempty" yaml:"density,omitempty" validate:"omitempty,gte=0"`
	Period       int      `json:"period" yaml:"period" validate:"gt=0"`
	Group        int      `json:"group" yaml:"group" validate:"gt=0"`
	Phase        string   `json:"phase" yaml:"phase" validate:"required"`
	BoilingPoint *string  `json:"boilingPoint,omitempty" yaml:"boilingPoint,omitempty"`
	MeltingPoint *string  `json:"meltingPoint,omitempty" yaml:"meltingPoint,omitempty"`
}

// Mode names the host presets built on top of a quiz session.
type Mode string

const (
	ModeMemorization Mode = "memorization"
	ModeCategoryTest Mode = "category-test"
	ModeBigGame      Mode = "big-game"
)

// ParseMode validates a mode name coming from a client or flag.
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeMemorization, ModeCategoryTest, ModeBigGame:
		return Mode(raw), nil
	}
	return "", ErrUnknownMode
}

// Result is the persisted summary of a finished session.
type Result struct {
	SessionID  string    `json:"sessionId"`
	UserID     string    `json:"userId"`
	Mode       Mode      `json:"mode"`
	Element    int       `json:"element,omitempty"` // order number, memorization only
	Correct    int       `json:"correct"`
	Total      int       `json:"total"`
	Missed     []string  `json:"missed"`
	Learned    bool      `json:"learned"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Progress aggregates a user's results.
type Progress struct {
	UserID   string `json:"userId"`
	Sessions int    `json:"sessions"`
	Correct  int    `json:"correct"`
	Total    int    `json:"total"`
	Learned  []int  `json:"learned"`
}
