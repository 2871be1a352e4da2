package app

import (
	"context"
	"fmt"
	"strings"

	"wareeth/internal/domain"
)

// QuestionCatalog is the full question-pool surface: sampling for the game
// engine plus the maintenance operations.
type QuestionCatalog interface {
	QuestionSource
	Add(ctx context.Context, q domain.Question) (int64, error)
	Categories(ctx context.Context) ([]string, error)
	Statistics(ctx context.Context) (domain.QuestionStatistics, error)
}

// Random-question browsing accepts a wider limit than one game allows.
const (
	maxBrowseLimit     = 50
	defaultBrowseLimit = 10
)

// QuestionService validates and fronts the question catalog.
type QuestionService struct {
	catalog QuestionCatalog
}

func NewQuestionService(catalog QuestionCatalog) *QuestionService {
	return &QuestionService{catalog: catalog}
}

// Random samples public-projected questions for browsing.
func (s *QuestionService) Random(ctx context.Context, limit int, difficulty, category string) ([]domain.PublicQuestion, error) {
	if limit < 1 || limit > maxBrowseLimit {
		limit = defaultBrowseLimit
	}
	questions, err := s.catalog.Sample(ctx, limit, difficulty, category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQuestionSource, err)
	}
	public := make([]domain.PublicQuestion, 0, len(questions))
	for _, q := range questions {
		public = append(public, q.Public())
	}
	return public, nil
}

// Add validates and stores a new question, returning its id.
func (s *QuestionService) Add(ctx context.Context, q domain.Question) (int64, error) {
	if q.Text == "" || q.OptionA == "" || q.OptionB == "" || q.OptionC == "" || q.OptionD == "" {
		return 0, fmt.Errorf("%w: all question fields are required", domain.ErrInvalidInput)
	}
	q.CorrectAnswer = strings.ToUpper(strings.TrimSpace(q.CorrectAnswer))
	if !domain.AnswerLetters[q.CorrectAnswer] {
		return 0, fmt.Errorf("%w: correct answer must be A, B, C or D", domain.ErrInvalidInput)
	}
	if !domain.ValidDifficulty(q.Difficulty) {
		return 0, fmt.Errorf("%w: unknown difficulty %q", domain.ErrInvalidInput, q.Difficulty)
	}
	if q.Points <= 0 {
		q.Points = domain.DefaultQuestionPoints
	}
	return s.catalog.Add(ctx, q)
}

// Categories lists the distinct active categories.
func (s *QuestionService) Categories(ctx context.Context) ([]string, error) {
	return s.catalog.Categories(ctx)
}

// Statistics summarizes the active pool by category and difficulty.
func (s *QuestionService) Statistics(ctx context.Context) (domain.QuestionStatistics, error) {
	return s.catalog.Statistics(ctx)
}
