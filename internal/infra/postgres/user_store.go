package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"wareeth/internal/domain"
)

// UserStore persists accounts, game results and achievements.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

const userColumns = `id, username, email, password_hash, level, total_score,
	games_played, best_score, registration_date, COALESCE(last_login, registration_date)`

func (s *UserStore) CreateUser(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, domain.ErrUsernameTaken
	}
	if err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	row := s.pool.QueryRow(ctx, `INSERT INTO users (username, email, password_hash, level)
		VALUES ($1, $2, $3, $4) RETURNING `+userColumns, username, email, passwordHash, domain.LevelBeginner)
	return scanUser(row)
}

func (s *UserStore) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND status = 'active'`, email)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	return user, err
}

func (s *UserStore) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND status = 'active'`, id)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	return user, err
}

func (s *UserStore) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `UPDATE users SET last_login = now() WHERE id = $1`, id)
	return err
}

func (s *UserStore) GrantAchievement(ctx context.Context, userID int64, a domain.Achievement) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO achievements (user_id, achievement_name, achievement_description, achievement_icon)
		VALUES ($1, $2, $3, $4) ON CONFLICT (user_id, achievement_name) DO NOTHING`,
		userID, a.Name, a.Description, a.Icon)
	if err != nil {
		return fmt.Errorf("grant achievement: %w", err)
	}
	return nil
}

func (s *UserStore) Achievements(ctx context.Context, userID int64) ([]domain.Achievement, error) {
	rows, err := s.pool.Query(ctx, `SELECT achievement_name, achievement_description, achievement_icon, earned_at
		FROM achievements WHERE user_id = $1 ORDER BY earned_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	var achievements []domain.Achievement
	for rows.Next() {
		var a domain.Achievement
		if err := rows.Scan(&a.Name, &a.Description, &a.Icon, &a.EarnedAt); err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

// RecordResult stores the finished game and rolls the user's aggregates,
// level and achievement unlocks forward in one transaction.
func (s *UserStore) RecordResult(ctx context.Context, userID int64, summary domain.GameSummary) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `INSERT INTO scores
		(user_id, score, total_questions, correct_answers, wrong_answers, skipped_answers, percentage, time_taken, difficulty_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		userID, summary.Score, summary.TotalQuestions, summary.Correct, summary.Wrong,
		summary.Skipped, summary.Percentage, summary.TimeTaken, summary.Difficulty); err != nil {
		return fmt.Errorf("insert score: %w", err)
	}

	var totalScore, gamesPlayed int
	if err := tx.QueryRow(ctx, `UPDATE users SET
		total_score = total_score + $2,
		games_played = games_played + 1,
		best_score = GREATEST(best_score, $2)
		WHERE id = $1 RETURNING total_score, games_played`,
		userID, summary.Score).Scan(&totalScore, &gamesPlayed); err != nil {
		return fmt.Errorf("update stats: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE users SET level = $2 WHERE id = $1`,
		userID, domain.LevelForScore(totalScore)); err != nil {
		return fmt.Errorf("update level: %w", err)
	}

	for _, a := range domain.EvaluateAchievements(domain.ProgressSnapshot{
		GamePercentage: summary.Percentage,
		GameScore:      summary.Score,
		GamesPlayed:    gamesPlayed,
		TotalScore:     totalScore,
	}) {
		if _, err := tx.Exec(ctx, `INSERT INTO achievements (user_id, achievement_name, achievement_description, achievement_icon)
			VALUES ($1, $2, $3, $4) ON CONFLICT (user_id, achievement_name) DO NOTHING`,
			userID, a.Name, a.Description, a.Icon); err != nil {
			return fmt.Errorf("unlock achievement: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (s *UserStore) Games(ctx context.Context, userID int64, limit, offset int) ([]domain.GameRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT score, total_questions, correct_answers, percentage, difficulty_level, game_date
		FROM scores WHERE user_id = $1 ORDER BY game_date DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []domain.GameRecord
	for rows.Next() {
		var g domain.GameRecord
		if err := rows.Scan(&g.Score, &g.TotalQuestions, &g.Correct, &g.Percentage, &g.Difficulty, &g.PlayedAt); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (s *UserStore) AverageScore(ctx context.Context, userID int64) (float64, error) {
	var avg float64
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(ROUND(AVG(percentage)::numeric, 2), 0) FROM scores WHERE user_id = $1`, userID).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average score: %w", err)
	}
	return avg, nil
}

func (s *UserStore) Rank(ctx context.Context, userID int64) (int, error) {
	var rank int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) + 1 FROM users
		WHERE total_score > (SELECT total_score FROM users WHERE id = $1) AND status = 'active'`, userID).Scan(&rank)
	if err != nil {
		return 0, fmt.Errorf("rank: %w", err)
	}
	return rank, nil
}

func (s *UserStore) TopPlayers(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, username, level, total_score, games_played
		FROM users WHERE status = 'active' ORDER BY total_score DESC, username LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("top players: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Level, &e.TotalScore, &e.GamesPlayed); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Level,
		&u.TotalScore, &u.GamesPlayed, &u.BestScore, &u.RegisteredAt, &u.LastLogin)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
