package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"element-quiz/internal/domain"
	"element-quiz/internal/infra/memory"
	"github.com/redis/go-redis/v9"
)

// ResultStore keeps results per user in Redis.
// Results are stored as: RPUSH quiz:results:{userID} {json}
// Learned elements as:   SADD  quiz:learned:{userID} {orderNumber}
type ResultStore struct {
	client *redis.Client
}

func NewResultStore(client *redis.Client) *ResultStore {
	return &ResultStore{client: client}
}

func (s *ResultStore) Record(ctx context.Context, result domain.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.resultsKey(result.UserID), data)
	if result.Learned {
		pipe.SAdd(ctx, s.learnedKey(result.UserID), result.Element)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *ResultStore) Progress(ctx context.Context, userID string) (domain.Progress, error) {
	raw, err := s.client.LRange(ctx, s.resultsKey(userID), 0, -1).Result()
	if err != nil {
		return domain.Progress{}, err
	}
	results := make([]domain.Result, 0, len(raw))
	for _, data := range raw {
		var r domain.Result
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return domain.Progress{}, fmt.Errorf("decode result: %w", err)
		}
		results = append(results, r)
	}
	progress := memory.Summarize(userID, results)

	members, err := s.client.SMembers(ctx, s.learnedKey(userID)).Result()
	if err != nil {
		return domain.Progress{}, err
	}
	progress.Learned = make([]int, 0, len(members))
	for _, m := range members {
		if n, err := strconv.Atoi(m); err == nil {
			progress.Learned = append(progress.Learned, n)
		}
	}
	sort.Ints(progress.Learned)
	return progress, nil
}

func (s *ResultStore) resultsKey(userID string) string {
	return "quiz:results:" + userID
}

func (s *ResultStore) learnedKey(userID string) string {
	return "quiz:learned:" + userID
}
