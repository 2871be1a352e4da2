package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"wareeth/internal/domain"
)

// QuestionSource samples questions for a new game. Filters with value "all"
// or empty are unfiltered. The result may be shorter than count when the
// filtered pool is small; that is not an error.
type QuestionSource interface {
	Sample(ctx context.Context, count int, difficulty, category string) ([]domain.Question, error)
}

// SessionStore holds at most one live game session per user. Get returns
// (nil, nil) when the user has no session; Put unconditionally replaces.
type SessionStore interface {
	Get(ctx context.Context, userID int64) (*domain.GameSession, error)
	Put(ctx context.Context, userID int64, session *domain.GameSession) error
	Clear(ctx context.Context, userID int64) error
}

// ResultRecorder durably records a finished game and updates the user's
// aggregate statistics.
type ResultRecorder interface {
	RecordResult(ctx context.Context, userID int64, summary domain.GameSummary) error
}

// FinishListener is notified after a game result has been recorded.
type FinishListener interface {
	GameFinished(userID int64, summary domain.GameSummary)
}

// Question count bounds for one game; out-of-range requests fall back to the
// default rather than failing.
const (
	MinQuestionCount     = 5
	MaxQuestionCount     = 20
	DefaultQuestionCount = 10

	maxTimeBonus       = 10
	bonusCutoffSeconds = 30
)

// GameEngine runs the single-player game state machine: start, answer, end.
type GameEngine struct {
	questions QuestionSource
	sessions  SessionStore
	results   ResultRecorder
	listener  FinishListener
	now       func() time.Time

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewGameEngine wires the engine to its collaborators.
func NewGameEngine(questions QuestionSource, sessions SessionStore, results ResultRecorder) *GameEngine {
	return &GameEngine{
		questions: questions,
		sessions:  sessions,
		results:   results,
		now:       time.Now,
		locks:     make(map[int64]*sync.Mutex),
	}
}

// SetFinishListener registers a listener for recorded results. Call before
// serving requests.
func (e *GameEngine) SetFinishListener(l FinishListener) {
	e.listener = l
}

// SetClock is test-only for deterministic timestamps.
func (e *GameEngine) SetClock(now func() time.Time) {
	e.now = now
}

// userLock serializes operations per user; the session store does
// read-modify-write and concurrent requests for one user must not race.
func (e *GameEngine) userLock(userID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[userID] = lock
	}
	return lock
}

// Start creates a new game session for the user, replacing any session in
// progress. Starting is destructive: an unfinished game is silently dropped.
func (e *GameEngine) Start(ctx context.Context, userID int64, difficulty, category string, questionCount int) (*domain.StartResult, error) {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if difficulty == "" {
		difficulty = "all"
	}
	if category == "" {
		category = "all"
	}
	if questionCount < MinQuestionCount || questionCount > MaxQuestionCount {
		questionCount = DefaultQuestionCount
	}

	questions, err := e.questions.Sample(ctx, questionCount, difficulty, category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQuestionSource, err)
	}

	session := &domain.GameSession{
		ID:         "game_" + uuid.New().String(),
		UserID:     userID,
		Questions:  questions,
		Current:    0,
		Answers:    make(map[int]domain.Answer),
		Score:      0,
		StartedAt:  e.now(),
		Difficulty: difficulty,
		Category:   category,
	}
	if err := e.sessions.Put(ctx, userID, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	public := make([]domain.PublicQuestion, 0, len(questions))
	for _, q := range questions {
		public = append(public, q.Public())
	}

	return &domain.StartResult{
		GameID:        session.ID,
		Questions:     public,
		QuestionCount: len(public),
		Difficulty:    difficulty,
		Category:      category,
	}, nil
}

// SubmitAnswer validates an answer against the server-held session, scores
// it and advances the position. A rejected submission leaves the session
// untouched.
func (e *GameEngine) SubmitAnswer(ctx context.Context, userID int64, questionIndex int, answer string, timeTaken int) (*domain.SubmitResult, error) {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := e.sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, domain.ErrNoActiveSession
	}

	if questionIndex < 0 || questionIndex >= len(session.Questions) {
		return nil, domain.ErrInvalidIndex
	}
	if _, answered := session.Answers[questionIndex]; answered {
		return nil, domain.ErrQuestionAnswered
	}

	answer = strings.ToUpper(strings.TrimSpace(answer))
	// Empty means an explicit skip or timeout.
	if answer != "" && !domain.AnswerLetters[answer] {
		return nil, fmt.Errorf("%w: answer must be A, B, C or D", domain.ErrInvalidInput)
	}
	if timeTaken < 0 {
		timeTaken = 0
	}

	question := session.Questions[questionIndex]
	isCorrect := answer != "" && answer == question.CorrectAnswer

	points := 0
	if isCorrect {
		points = question.BasePoints() + timeBonus(timeTaken)
	}

	session.Answers[questionIndex] = domain.Answer{
		QuestionIndex: questionIndex,
		QuestionID:    question.ID,
		Answer:        answer,
		CorrectAnswer: question.CorrectAnswer,
		IsCorrect:     isCorrect,
		PointsEarned:  points,
		TimeTaken:     timeTaken,
		AnsweredAt:    e.now(),
	}
	session.Score += points
	session.Current = questionIndex + 1

	if err := e.sessions.Put(ctx, userID, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &domain.SubmitResult{
		IsCorrect:       isCorrect,
		CorrectAnswer:   question.CorrectAnswer,
		PointsEarned:    points,
		TotalScore:      session.Score,
		IsComplete:      session.Current >= len(session.Questions),
		CurrentQuestion: session.Current,
		TotalQuestions:  len(session.Questions),
	}, nil
}

// End finalizes the active session: computes the summary, records it and
// clears the session. If recording fails the session is kept so the caller
// can retry.
func (e *GameEngine) End(ctx context.Context, userID int64) (*domain.GameSummary, error) {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := e.sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, domain.ErrNoActiveSession
	}

	summary := summarize(session, e.now())

	if err := e.results.RecordResult(ctx, userID, *summary); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := e.sessions.Clear(ctx, userID); err != nil {
		return nil, fmt.Errorf("clear session: %w", err)
	}

	if e.listener != nil {
		e.listener.GameFinished(userID, *summary)
	}
	return summary, nil
}

func summarize(session *domain.GameSession, now time.Time) *domain.GameSummary {
	total := len(session.Questions)

	correct, wrong := 0, 0
	answers := make([]domain.Answer, 0, len(session.Answers))
	for _, a := range session.Answers {
		answers = append(answers, a)
		if a.IsCorrect {
			correct++
		} else if a.Answer != "" {
			wrong++
		}
	}
	sort.Slice(answers, func(i, j int) bool {
		return answers[i].QuestionIndex < answers[j].QuestionIndex
	})
	// Unanswered questions and recorded empty answers both count as skipped.
	skipped := total - correct - wrong

	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(correct)/float64(total)*10000) / 100
	}

	return &domain.GameSummary{
		GameID:         session.ID,
		Score:          session.Score,
		TotalQuestions: total,
		Correct:        correct,
		Wrong:          wrong,
		Skipped:        skipped,
		Percentage:     percentage,
		TimeTaken:      int(now.Sub(session.StartedAt).Seconds()),
		Difficulty:     session.Difficulty,
		Category:       session.Category,
		Answers:        answers,
	}
}

// timeBonus grants up to 10 extra points for a correct answer; answers
// taking 30 seconds or longer earn nothing.
func timeBonus(timeTaken int) int {
	if timeTaken >= bonusCutoffSeconds {
		return 0
	}
	bonus := timeTaken / 3
	if bonus > maxTimeBonus {
		return maxTimeBonus
	}
	return bonus
}
