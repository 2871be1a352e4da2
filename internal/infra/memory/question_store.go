package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"wareeth/internal/domain"
)

// QuestionStore is an in-memory question pool with randomized sampling.
// It backs tests and the redis/postgres-less demo mode.
type QuestionStore struct {
	mu        sync.RWMutex
	questions []domain.Question
	nextID    int64
	rnd       *rand.Rand
}

func NewQuestionStore(questions []domain.Question) *QuestionStore {
	store := &QuestionStore{
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID: 1,
	}
	for _, q := range questions {
		if q.ID >= store.nextID {
			store.nextID = q.ID + 1
		}
		store.questions = append(store.questions, q)
	}
	return store
}

// Seed is test-only for deterministic sampling order.
func (s *QuestionStore) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rnd = rand.New(rand.NewSource(seed))
}

// Sample returns up to count questions matching the filters, shuffled,
// without replacement. A pool smaller than count yields a shorter result.
func (s *QuestionStore) Sample(_ context.Context, count int, difficulty, category string) ([]domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool := make([]domain.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if matches(q, difficulty, category) {
			pool = append(pool, q)
		}
	}
	s.rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if count < len(pool) {
		pool = pool[:count]
	}
	return pool, nil
}

func (s *QuestionStore) Add(_ context.Context, q domain.Question) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q.ID = s.nextID
	s.nextID++
	s.questions = append(s.questions, q)
	return q.ID, nil
}

func (s *QuestionStore) Categories(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var categories []string
	for _, q := range s.questions {
		if q.Category != "" && !seen[q.Category] {
			seen[q.Category] = true
			categories = append(categories, q.Category)
		}
	}
	return categories, nil
}

func (s *QuestionStore) Statistics(_ context.Context) (domain.QuestionStatistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := domain.QuestionStatistics{
		Total:        len(s.questions),
		ByCategory:   make(map[string]int),
		ByDifficulty: make(map[string]int),
	}
	for _, q := range s.questions {
		stats.ByCategory[q.Category]++
		stats.ByDifficulty[q.Difficulty]++
	}
	return stats, nil
}

func matches(q domain.Question, difficulty, category string) bool {
	if difficulty != "" && difficulty != "all" && q.Difficulty != difficulty {
		return false
	}
	if category != "" && category != "all" && q.Category != category {
		return false
	}
	return true
}
