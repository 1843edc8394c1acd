package memory

import (
	"context"
	"sort"
	"sync"

	"quiz-platform/internal/domain"
)

// ResultStore is an in-memory implementation of app.ResultStore.
type ResultStore struct {
	mu      sync.RWMutex
	results []domain.Result
}

func NewResultStore() *ResultStore {
	return &ResultStore{}
}

func (s *ResultStore) Create(_ context.Context, result domain.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
	return nil
}

func (s *ResultStore) HistoryByUser(_ context.Context, userID int64) ([]domain.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Result, 0)
	for _, result := range s.results {
		if result.UserID == userID {
			out = append(out, result)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *ResultStore) Leaderboard(_ context.Context, quizID string) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.LeaderboardEntry, 0)
	for _, result := range s.results {
		if result.QuizID != quizID {
			continue
		}
		entries = append(entries, domain.LeaderboardEntry{
			UserEmail: result.UserEmail,
			Score:     result.Score,
			TimeSpent: result.TimeSpent,
		})
	}

	// Score descending, time spent ascending; entries without a time sort
	// after all entries that have one.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		ti, tj := entries[i].TimeSpent, entries[j].TimeSpent
		switch {
		case ti == nil && tj == nil:
			return false
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return *ti < *tj
		}
	})
	return entries, nil
}
