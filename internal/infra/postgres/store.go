package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"element-quiz/internal/domain"
	"element-quiz/internal/infra/memory"
	"element-quiz/internal/infra/postgres/migrations"
	"github.com/samber/lo"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// Open returns a bun handle over the pgdriver connector for dsn.
func Open(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return err
	}
	return nil
}

// SeedElements upserts the given elements keyed by order number.
func SeedElements(ctx context.Context, db *bun.DB, elements []domain.Element) error {
	if len(elements) == 0 {
		return nil
	}
	rows := lo.Map(elements, func(el domain.Element, _ int) elementRow { return toElementRow(el) })
	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (order_number) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("latin_name = EXCLUDED.latin_name").
		Set("symbol = EXCLUDED.symbol").
		Set("atomic_mass = EXCLUDED.atomic_mass").
		Set("category = EXCLUDED.category").
		Set("density = EXCLUDED.density").
		Set("period = EXCLUDED.period").
		Set("group_number = EXCLUDED.group_number").
		Set("phase = EXCLUDED.phase").
		Set("boiling_point = EXCLUDED.boiling_point").
		Set("melting_point = EXCLUDED.melting_point").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("seed elements: %w", err)
	}
	return nil
}

// ResultStore persists quiz results in the quiz_results table.
type ResultStore struct {
	db *bun.DB
}

func NewResultStore(db *bun.DB) *ResultStore {
	return &ResultStore{db: db}
}

func (s *ResultStore) Record(ctx context.Context, result domain.Result) error {
	row := toResultRow(result)
	if _, err := s.db.NewInsert().Model(&row).On("CONFLICT (session_id) DO NOTHING").Exec(ctx); err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

func (s *ResultStore) Progress(ctx context.Context, userID string) (domain.Progress, error) {
	var rows []resultRow
	err := s.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("finished_at ASC").
		Scan(ctx)
	if err != nil {
		return domain.Progress{}, fmt.Errorf("select results: %w", err)
	}
	results := lo.Map(rows, func(row resultRow, _ int) domain.Result { return row.toDomain() })
	return memory.Summarize(userID, results), nil
}
