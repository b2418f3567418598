package postgres

import (
	"context"
	"fmt"

	"element-quiz/internal/dataset"
	"element-quiz/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ElementLoader loads the element pool from the elements table.
type ElementLoader struct {
	pool *pgxpool.Pool
}

func NewElementLoader(pool *pgxpool.Pool) *ElementLoader {
	return &ElementLoader{pool: pool}
}

func (l *ElementLoader) LoadElements(ctx context.Context) ([]domain.Element, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT order_number, name, latin_name, symbol, atomic_mass, category, density,
		       period, group_number, phase, boiling_point, melting_point
		FROM elements ORDER BY order_number`)
	if err != nil {
		return nil, fmt.Errorf("load elements: %w", err)
	}
	defer rows.Close()

	var elements []domain.Element
	for rows.Next() {
		var el domain.Element
		if err := rows.Scan(
			&el.OrderNumber, &el.Name, &el.LatinName, &el.Symbol, &el.AtomicMass, &el.Category, &el.Density,
			&el.Period, &el.Group, &el.Phase, &el.BoilingPoint, &el.MeltingPoint,
		); err != nil {
			return nil, fmt.Errorf("scan element: %w", err)
		}
		elements = append(elements, el)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load elements: %w", err)
	}
	if len(elements) == 0 {
		return nil, domain.ErrElementNotFound
	}
	if err := dataset.Validate(elements); err != nil {
		return nil, err
	}
	return elements, nil
}
