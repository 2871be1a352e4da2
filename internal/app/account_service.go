package app

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"wareeth/internal/domain"
)

// UserStore persists accounts and their achievements.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*domain.User, error)
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
	UserByID(ctx context.Context, id int64) (*domain.User, error)
	TouchLastLogin(ctx context.Context, id int64) error
	GrantAchievement(ctx context.Context, userID int64, a domain.Achievement) error
	Achievements(ctx context.Context, userID int64) ([]domain.Achievement, error)
}

// StatsStore reads aggregated play history.
type StatsStore interface {
	Games(ctx context.Context, userID int64, limit, offset int) ([]domain.GameRecord, error)
	AverageScore(ctx context.Context, userID int64) (float64, error)
	Rank(ctx context.Context, userID int64) (int, error)
	TopPlayers(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

const minPasswordLength = 8

// AccountService implements registration, login and profile reads.
type AccountService struct {
	users UserStore
	stats StatsStore
}

func NewAccountService(users UserStore, stats StatsStore) *AccountService {
	return &AccountService{users: users, stats: stats}
}

// Register creates an account, hashes the password and seeds the initial
// achievements. Username and email must be unused.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields are required", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, username, email, string(hash))
	if err != nil {
		return nil, err
	}

	// Badge seeding is best-effort, as registration already succeeded.
	for _, a := range domain.InitialAchievements() {
		_ = s.users.GrantAchievement(ctx, user.ID, a)
	}
	return user, nil
}

// Login verifies credentials and refreshes the last-login timestamp.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	_ = s.users.TouchLastLogin(ctx, user.ID)
	return user, nil
}

// User returns the account row for an authenticated id.
func (s *AccountService) User(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.UserByID(ctx, userID)
}

// Profile assembles the full account view: user, achievements, recent games,
// average percentage and rank.
func (s *AccountService) Profile(ctx context.Context, userID int64) (*domain.Profile, error) {
	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.Profile{User: *user, Stats: *stats}, nil
}

// Stats aggregates a user's play statistics.
func (s *AccountService) Stats(ctx context.Context, userID int64) (*domain.UserStats, error) {
	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.stats.Games(ctx, userID, 5, 0)
	if err != nil {
		return nil, fmt.Errorf("recent games: %w", err)
	}
	average, err := s.stats.AverageScore(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("average score: %w", err)
	}
	rank, err := s.stats.Rank(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("rank: %w", err)
	}
	achievements, err := s.users.Achievements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("achievements: %w", err)
	}

	return &domain.UserStats{
		TotalScore:   user.TotalScore,
		GamesPlayed:  user.GamesPlayed,
		BestScore:    user.BestScore,
		AverageScore: average,
		Rank:         rank,
		Level:        user.Level,
		RecentGames:  recent,
		Achievements: achievements,
	}, nil
}

// History pages through a user's finished games.
func (s *AccountService) History(ctx context.Context, userID int64, page, limit int) ([]domain.GameRecord, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.stats.Games(ctx, userID, limit, (page-1)*limit)
}
