package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"element-quiz/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// ElementLoader fetches the element pool from a backing store (bundled data, Postgres).
type ElementLoader interface {
	LoadElements(ctx context.Context) ([]domain.Element, error)
}

// ElementRepository caches the element pool in Redis and falls back to a loader on cache miss.
// Records are stored as: HSET elements:pool {orderNumber} {json}
type ElementRepository struct {
	client *redis.Client
	loader ElementLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

const poolKey = "elements:pool"

func NewElementRepository(client *redis.Client, loader ElementLoader, ttl time.Duration) *ElementRepository {
	return &ElementRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *ElementRepository) Elements(ctx context.Context) ([]domain.Element, error) {
	if pool, ok := r.cached(ctx); ok {
		return pool, nil
	}

	result, err, _ := r.sf.Do(poolKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if pool, ok := r.cached(ctx); ok {
			return pool, nil
		}

		pool, err := r.loader.LoadElements(ctx)
		if err != nil {
			return nil, err
		}

		// MULTI/EXEC so readers never see a half-written pool.
		pipe := r.client.TxPipeline()
		pipe.Del(ctx, poolKey)
		for _, el := range pool {
			data, err := json.Marshal(el)
			if err != nil {
				return nil, fmt.Errorf("encode element %q: %w", el.Name, err)
			}
			pipe.HSet(ctx, poolKey, strconv.Itoa(el.OrderNumber), data)
		}
		if ttl := r.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, poolKey, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Element), nil
}

// cached decodes the pool from Redis; any decode failure counts as a miss.
func (r *ElementRepository) cached(ctx context.Context) ([]domain.Element, bool) {
	raw, err := r.client.HGetAll(ctx, poolKey).Result()
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	pool := make([]domain.Element, 0, len(raw))
	for _, data := range raw {
		var el domain.Element
		if err := json.Unmarshal([]byte(data), &el); err != nil {
			return nil, false
		}
		pool = append(pool, el)
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].OrderNumber < pool[j].OrderNumber })
	return pool, true
}

func (r *ElementRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
