package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"wareeth/internal/domain"
)

// UserStore keeps accounts, scores and achievements in memory. It serves
// the same contracts as the postgres store for tests and demo mode.
type UserStore struct {
	now func() time.Time

	mu           sync.Mutex
	users        map[int64]*domain.User
	games        map[int64][]domain.GameRecord
	achievements map[int64][]domain.Achievement
	nextID       int64
}

func NewUserStore() *UserStore {
	return &UserStore{
		now:          time.Now,
		users:        make(map[int64]*domain.User),
		games:        make(map[int64][]domain.GameRecord),
		achievements: make(map[int64][]domain.Achievement),
		nextID:       1,
	}
}

// SetClock is test-only for deterministic timestamps.
func (s *UserStore) SetClock(now func() time.Time) {
	s.now = now
}

func (s *UserStore) CreateUser(_ context.Context, username, email, passwordHash string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return nil, domain.ErrUsernameTaken
		}
		if u.Email == email {
			return nil, domain.ErrEmailTaken
		}
	}
	user := &domain.User{
		ID:           s.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Level:        domain.LevelBeginner,
		RegisteredAt: s.now(),
	}
	s.nextID++
	s.users[user.ID] = user
	out := *user
	return &out, nil
}

func (s *UserStore) UserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *UserStore) UserByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *UserStore) TouchLastLogin(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.LastLogin = s.now()
	}
	return nil
}

func (s *UserStore) GrantAchievement(_ context.Context, userID int64, a domain.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grantLocked(userID, a)
	return nil
}

func (s *UserStore) grantLocked(userID int64, a domain.Achievement) {
	for _, earned := range s.achievements[userID] {
		if earned.Name == a.Name {
			return
		}
	}
	a.EarnedAt = s.now()
	s.achievements[userID] = append(s.achievements[userID], a)
}

func (s *UserStore) Achievements(_ context.Context, userID int64) ([]domain.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	earned := s.achievements[userID]
	out := make([]domain.Achievement, len(earned))
	copy(out, earned)
	sort.Slice(out, func(i, j int) bool {
		return out[i].EarnedAt.After(out[j].EarnedAt)
	})
	return out, nil
}

// RecordResult appends the score row, updates the user aggregates, level and
// achievement unlocks.
func (s *UserStore) RecordResult(_ context.Context, userID int64, summary domain.GameSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}

	s.games[userID] = append(s.games[userID], domain.GameRecord{
		Score:          summary.Score,
		TotalQuestions: summary.TotalQuestions,
		Correct:        summary.Correct,
		Percentage:     summary.Percentage,
		Difficulty:     summary.Difficulty,
		PlayedAt:       s.now(),
	})

	user.TotalScore += summary.Score
	user.GamesPlayed++
	if summary.Score > user.BestScore {
		user.BestScore = summary.Score
	}
	user.Level = domain.LevelForScore(user.TotalScore)

	for _, a := range domain.EvaluateAchievements(domain.ProgressSnapshot{
		GamePercentage: summary.Percentage,
		GameScore:      summary.Score,
		GamesPlayed:    user.GamesPlayed,
		TotalScore:     user.TotalScore,
	}) {
		s.grantLocked(userID, a)
	}
	return nil
}

func (s *UserStore) Games(_ context.Context, userID int64, limit, offset int) ([]domain.GameRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.games[userID]
	ordered := make([]domain.GameRecord, len(all))
	copy(ordered, all)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].PlayedAt.After(ordered[j].PlayedAt)
	})

	if offset >= len(ordered) {
		return nil, nil
	}
	ordered = ordered[offset:]
	if limit > 0 && limit < len(ordered) {
		ordered = ordered[:limit]
	}
	return ordered, nil
}

func (s *UserStore) AverageScore(_ context.Context, userID int64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	games := s.games[userID]
	if len(games) == 0 {
		return 0, nil
	}
	sum := 0.0
	for _, g := range games {
		sum += g.Percentage
	}
	avg := sum / float64(len(games))
	return float64(int(avg*100+0.5)) / 100, nil
}

func (s *UserStore) Rank(_ context.Context, userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	rank := 1
	for _, u := range s.users {
		if u.TotalScore > user.TotalScore {
			rank++
		}
	}
	return rank, nil
}

func (s *UserStore) TopPlayers(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]domain.LeaderboardEntry, 0, len(s.users))
	for _, u := range s.users {
		entries = append(entries, domain.LeaderboardEntry{
			UserID:      u.ID,
			Username:    u.Username,
			Level:       u.Level,
			TotalScore:  u.TotalScore,
			GamesPlayed: u.GamesPlayed,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore > entries[j].TotalScore
		}
		return entries[i].Username < entries[j].Username
	})
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}
