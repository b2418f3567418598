package integration

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"element-quiz/internal/app"
	"element-quiz/internal/dataset"
	"element-quiz/internal/domain"
	"element-quiz/internal/infra/postgres"
	infraredis "element-quiz/internal/infra/redis"
	"element-quiz/internal/quiz"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestMemorizationEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	elements := seedElements(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	loaded, err := postgres.NewElementLoader(pool).LoadElements(ctx)
	if err != nil {
		t.Fatalf("load elements: %v", err)
	}
	if len(loaded) != len(elements) {
		t.Fatalf("expected %d elements from postgres, got %d", len(elements), len(loaded))
	}

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	db := postgres.Open(pgURL)
	defer db.Close()

	service := app.NewQuizService(
		infraredis.NewElementRepository(redisClient, postgres.NewElementLoader(pool), 5*time.Minute),
		infraredis.NewSessionStore(redisClient, 5*time.Minute),
		postgres.NewResultStore(db),
	)

	snap, err := service.Start(ctx, app.StartRequest{UserID: "u1", Mode: domain.ModeMemorization, Element: 26})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if n, err := redisClient.HLen(ctx, "elements:pool").Result(); err != nil || int(n) != len(elements) {
		t.Fatalf("expected pool cached in redis, got %d (%v)", n, err)
	}

	iron, err := dataset.Find(elements, 26)
	if err != nil {
		t.Fatalf("find iron: %v", err)
	}
	for snap.State != quiz.StateScore {
		answer, err := quiz.Format(*snap.Kind, iron)
		if err != nil {
			t.Fatalf("format: %v", err)
		}
		res, err := service.Answer(ctx, snap.SessionID, answer)
		if err != nil {
			t.Fatalf("answer: %v", err)
		}
		if !res.Correct {
			t.Fatalf("expected %q to be correct for %s", answer, snap.Kind)
		}
		if snap, err = service.Advance(ctx, snap.SessionID); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}

	result, err := service.Result(ctx, snap.SessionID)
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if !result.Learned || result.Correct != result.Total {
		t.Fatalf("expected a learned element, got %+v", result)
	}

	progress, err := service.Progress(ctx, "u1")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress.Sessions != 1 || len(progress.Learned) != 1 || progress.Learned[0] != 26 {
		t.Fatalf("unexpected progress %+v", progress)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedElements(t *testing.T, ctx context.Context, dsn string) []domain.Element {
	t.Helper()
	db := postgres.Open(dsn)
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	elements, err := dataset.Load()
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	if err := postgres.SeedElements(ctx, db, elements); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// seeding twice is an upsert
	if err := postgres.SeedElements(ctx, db, elements); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	return elements
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
