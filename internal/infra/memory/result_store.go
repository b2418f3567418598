package memory

import (
	"context"
	"sort"
	"sync"

	"element-quiz/internal/domain"
)

// ResultStore keeps results in process memory (tests, demos, single-device use).
type ResultStore struct {
	mu      sync.RWMutex
	results map[string][]domain.Result
}

func NewResultStore() *ResultStore {
	return &ResultStore{results: make(map[string][]domain.Result)}
}

func (s *ResultStore) Record(_ context.Context, result domain.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.UserID] = append(s.results[result.UserID], result)
	return nil
}

func (s *ResultStore) Progress(_ context.Context, userID string) (domain.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summarize(userID, s.results[userID]), nil
}

// Summarize folds results into a Progress; learned elements are sorted and unique.
func Summarize(userID string, results []domain.Result) domain.Progress {
	progress := domain.Progress{UserID: userID, Learned: []int{}}
	learned := make(map[int]struct{})
	for _, r := range results {
		progress.Sessions++
		progress.Correct += r.Correct
		progress.Total += r.Total
		if r.Learned {
			learned[r.Element] = struct{}{}
		}
	}
	for el := range learned {
		progress.Learned = append(progress.Learned, el)
	}
	sort.Ints(progress.Learned)
	return progress
}
