package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"wareeth/internal/domain"
)

// QuestionStore reads and writes the questions table.
type QuestionStore struct {
	pool *pgxpool.Pool
}

func NewQuestionStore(pool *pgxpool.Pool) *QuestionStore {
	return &QuestionStore{pool: pool}
}

// Sample draws up to count active questions matching the filters in random
// order, without replacement.
func (s *QuestionStore) Sample(ctx context.Context, count int, difficulty, category string) ([]domain.Question, error) {
	query := `SELECT id, question_text, option_a, option_b, option_c, option_d,
		correct_answer, category, difficulty, points
		FROM questions WHERE status = 'active'`
	var args []interface{}

	if difficulty != "" && difficulty != "all" {
		args = append(args, difficulty)
		query += " AND difficulty = $" + strconv.Itoa(len(args))
	}
	if category != "" && category != "all" {
		args = append(args, category)
		query += " AND category = $" + strconv.Itoa(len(args))
	}
	args = append(args, count)
	query += " ORDER BY random() LIMIT $" + strconv.Itoa(len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sample questions: %w", err)
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func (s *QuestionStore) Add(ctx context.Context, q domain.Question) (int64, error) {
	const query = `INSERT INTO questions
		(question_text, option_a, option_b, option_c, option_d, correct_answer, category, difficulty, points)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	var id int64
	err := s.pool.QueryRow(ctx, query,
		q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD,
		q.CorrectAnswer, q.Category, q.Difficulty, q.Points,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}
	return id, nil
}

func (s *QuestionStore) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT category FROM questions WHERE status = 'active' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *QuestionStore) Statistics(ctx context.Context) (domain.QuestionStatistics, error) {
	stats := domain.QuestionStatistics{
		ByCategory:   make(map[string]int),
		ByDifficulty: make(map[string]int),
	}

	rows, err := s.pool.Query(ctx,
		`SELECT category, difficulty, COUNT(*) FROM questions WHERE status = 'active' GROUP BY category, difficulty`)
	if err != nil {
		return stats, fmt.Errorf("question statistics: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category, difficulty string
		var count int
		if err := rows.Scan(&category, &difficulty, &count); err != nil {
			return stats, err
		}
		stats.ByCategory[category] += count
		stats.ByDifficulty[difficulty] += count
		stats.Total += count
	}
	return stats, rows.Err()
}

func scanQuestions(rows pgx.Rows) ([]domain.Question, error) {
	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD,
			&q.CorrectAnswer, &q.Category, &q.Difficulty, &q.Points); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
