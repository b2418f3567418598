package postgres

import (
	"time"

	"element-quiz/internal/domain"
	"github.com/uptrace/bun"
)

type elementRow struct {
	bun.BaseModel `bun:"table:elements"`

	OrderNumber  int      `bun:"order_number,pk"`
	Name         string   `bun:"name,notnull"`
	LatinName    string   `bun:"latin_name,notnull"`
	Symbol       string   `bun:"symbol,notnull"`
	AtomicMass   float64  `bun:"atomic_mass,notnull"`
	Category     string   `bun:"category,notnull"`
	Density      *float64 `bun:"density"`
	Period       int      `bun:"period,notnull"`
	Group        int      `bun:"group_number,notnull"`
	Phase        string   `bun:"phase,notnull"`
	BoilingPoint *string  `bun:"boiling_point"`
	MeltingPoint *string  `bun:"melting_point"`
}

func toElementRow(el domain.Element) elementRow {
	return elementRow{
		OrderNumber:  el.OrderNumber,
		Name:         el.Name,
		LatinName:    el.LatinName,
		Symbol:       el.Symbol,
		AtomicMass:   el.AtomicMass,
		Category:     el.Category,
		Density:      el.Density,
		Period:       el.Period,
		Group:        el.Group,
		Phase:        el.Phase,
		BoilingPoint: el.BoilingPoint,
		MeltingPoint: el.MeltingPoint,
	}
}

type resultRow struct {
	bun.BaseModel `bun:"table:quiz_results"`

	ID         int64     `bun:"id,pk,autoincrement"`
	SessionID  string    `bun:"session_id,notnull"`
	UserID     string    `bun:"user_id,notnull"`
	Mode       string    `bun:"mode,notnull"`
	Element    int       `bun:"element,nullzero"`
	Correct    int       `bun:"correct,notnull"`
	Total      int       `bun:"total,notnull"`
	Missed     []string  `bun:"missed,array"`
	Learned    bool      `bun:"learned,notnull"`
	FinishedAt time.Time `bun:"finished_at,notnull"`
}

func toResultRow(r domain.Result) resultRow {
	missed := r.Missed
	if missed == nil {
		missed = []string{}
	}
	return resultRow{
		SessionID:  r.SessionID,
		UserID:     r.UserID,
		Mode:       string(r.Mode),
		Element:    r.Element,
		Correct:    r.Correct,
		Total:      r.Total,
		Missed:     missed,
		Learned:    r.Learned,
		FinishedAt: r.FinishedAt,
	}
}

func (row resultRow) toDomain() domain.Result {
	return domain.Result{
		SessionID:  row.SessionID,
		UserID:     row.UserID,
		Mode:       domain.Mode(row.Mode),
		Element:    row.Element,
		Correct:    row.Correct,
		Total:      row.Total,
		Missed:     row.Missed,
		Learned:    row.Learned,
		FinishedAt: row.FinishedAt,
	}
}
