package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"element-quiz/internal/domain"
	"golang.org/x/sync/singleflight"
)

// ElementLoader fetches the element pool from a backing store (bundled data, Postgres).
type ElementLoader interface {
	LoadElements(ctx context.Context) ([]domain.Element, error)
}

const poolKey = "elements"

// ElementRepository caches the pool with TTL to avoid repeated loads.
type ElementRepository struct {
	loader ElementLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	pool      []domain.Element
	expiresAt time.Time
}

func NewElementRepository(loader ElementLoader, ttl time.Duration) *ElementRepository {
	return &ElementRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *ElementRepository) Elements(ctx context.Context) ([]domain.Element, error) {
	if pool, ok := r.cached(r.clock()); ok {
		return pool, nil
	}

	result, err, _ := r.sf.Do(poolKey, func() (interface{}, error) {
		now := r.clock()
		if pool, ok := r.cached(now); ok {
			return pool, nil
		}

		pool, err := r.loader.LoadElements(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.pool = pool
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Element), nil
}

func (r *ElementRepository) cached(now time.Time) ([]domain.Element, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.pool != nil && r.expiresAt.After(now) {
		return r.pool, true
	}
	return nil, false
}

func (r *ElementRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticElementLoader serves a fixed pool, typically the bundled dataset.
type StaticElementLoader struct {
	elements []domain.Element
}

func NewStaticElementLoader(elements []domain.Element) *StaticElementLoader {
	return &StaticElementLoader{elements: elements}
}

func (l *StaticElementLoader) LoadElements(_ context.Context) ([]domain.Element, error) {
	if len(l.elements) == 0 {
		return nil, domain.ErrElementNotFound
	}
	return l.elements, nil
}
