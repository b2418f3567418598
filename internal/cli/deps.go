package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"element-quiz/internal/app"
	"element-quiz/internal/config"
	"element-quiz/internal/dataset"
	"element-quiz/internal/infra/memory"
	"element-quiz/internal/infra/postgres"
	redisinfra "element-quiz/internal/infra/redis"
	"element-quiz/internal/infra/sqlite"
	"element-quiz/internal/logger"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
)

// deps holds the wired service plus the connections it keeps open.
type deps struct {
	service *app.QuizService
	closers []io.Closer
	pool    *pgxpool.Pool
}

func (d *deps) Close() error {
	if d.pool != nil {
		d.pool.Close()
	}
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i].Close())
	}
	return errors.Join(errs...)
}

// loadConfig reads the config file, falling back to defaults when it is absent,
// and installs the logger.
func loadConfig(path string, out io.Writer) (config.Config, *slog.Logger, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger.Setup(cfg.Server.LogLevel, out), nil
}

// buildService wires storage from config:
//   - element pool: Postgres when configured, otherwise the bundled dataset,
//     cached in Redis when configured, otherwise in process memory
//   - sessions: Redis liveness markers when configured, otherwise memory
//   - results: Postgres, then SQLite, then Redis, then memory
func buildService(ctx context.Context, cfg config.Config, log *slog.Logger) (*deps, error) {
	d := &deps{}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		d.closers = append(d.closers, redisClient)
	}

	var (
		loader memory.ElementLoader
		db     *bun.DB
	)
	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			d.Close()
			return nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.pool = pool
		loader = postgres.NewElementLoader(pool)
		db = postgres.Open(cfg.Postgres.URL)
		d.closers = append(d.closers, db)
	} else {
		elements, err := dataset.Load()
		if err != nil {
			d.Close()
			return nil, err
		}
		loader = memory.NewStaticElementLoader(elements)
	}

	poolTTL := config.TTLDuration(cfg.Quiz.PoolTTL, 10*time.Minute)
	var elements app.ElementRepository
	if redisClient != nil {
		elements = redisinfra.NewElementRepository(redisClient, loader, poolTTL)
	} else {
		elements = memory.NewElementRepository(loader, poolTTL)
	}

	var sessions app.SessionRepository
	if redisClient != nil {
		sessions = redisinfra.NewSessionStore(redisClient, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute))
	} else {
		sessions = memory.NewSessionStore()
	}

	var results app.ResultRepository
	switch {
	case db != nil:
		results = postgres.NewResultStore(db)
	case cfg.SQLite.Path != "":
		sqldb, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.closers = append(d.closers, sqldb)
		results = sqlite.NewResultStore(sqldb)
	case redisClient != nil:
		results = redisinfra.NewResultStore(redisClient)
	default:
		results = memory.NewResultStore()
	}

	d.service = app.NewQuizService(elements, sessions, results,
		app.WithLogger(log),
		app.WithSettings(app.Settings{
			AdaptiveBudget:     cfg.Quiz.AdaptiveBudget,
			MemorizationLength: cfg.Quiz.MemorizationLength,
			BigGameLength:      cfg.Quiz.BigGameLength,
		}),
	)
	return d, nil
}
