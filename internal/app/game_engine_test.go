package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"wareeth/internal/app"
	"wareeth/internal/domain"
	"wareeth/internal/infra/memory"
)

// stubSource returns a fixed question sequence and records the last
// requested count.
type stubSource struct {
	questions []domain.Question
	lastCount int
}

func (s *stubSource) Sample(_ context.Context, count int, _, _ string) ([]domain.Question, error) {
	s.lastCount = count
	if count < len(s.questions) {
		return s.questions[:count], nil
	}
	return s.questions, nil
}

// flakyRecorder fails RecordResult until failures runs out.
type flakyRecorder struct {
	failures int
	recorded []domain.GameSummary
}

func (r *flakyRecorder) RecordResult(_ context.Context, _ int64, summary domain.GameSummary) error {
	if r.failures > 0 {
		r.failures--
		return errors.New("storage offline")
	}
	r.recorded = append(r.recorded, summary)
	return nil
}

func threeQuestions() []domain.Question {
	return []domain.Question{
		{ID: 1, Text: "q1", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "B", Category: "تاريخ", Difficulty: domain.DifficultyEasy, Points: 10},
		{ID: 2, Text: "q2", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "A", Category: "تاريخ", Difficulty: domain.DifficultyEasy, Points: 10},
		{ID: 3, Text: "q3", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "D", Category: "أدب", Difficulty: domain.DifficultyEasy, Points: 10},
	}
}

func manyQuestions(n int) []domain.Question {
	questions := make([]domain.Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, domain.Question{
			ID:            int64(i + 1),
			Text:          fmt.Sprintf("q%d", i+1),
			OptionA:       "a", OptionB: "b", OptionC: "c", OptionD: "d",
			CorrectAnswer: "A",
			Difficulty:    domain.DifficultyEasy,
			Points:        10,
		})
	}
	return questions
}

func newTestEngine(questions []domain.Question) (*app.GameEngine, *stubSource, *flakyRecorder) {
	source := &stubSource{questions: questions}
	recorder := &flakyRecorder{}
	engine := app.NewGameEngine(source, memory.NewSessionStore(0), recorder)
	return engine, source, recorder
}

func TestStartClampsQuestionCount(t *testing.T) {
	ctx := context.Background()
	engine, source, _ := newTestEngine(manyQuestions(25))

	cases := []struct {
		requested int
		want      int
	}{
		{0, app.DefaultQuestionCount},
		{4, app.DefaultQuestionCount},
		{21, app.DefaultQuestionCount},
		{-3, app.DefaultQuestionCount},
		{5, 5},
		{20, 20},
		{12, 12},
	}
	for _, tc := range cases {
		result, err := engine.Start(ctx, 1, "", "", tc.requested)
		if err != nil {
			t.Fatalf("start with count %d failed: %v", tc.requested, err)
		}
		if source.lastCount != tc.want {
			t.Fatalf("count %d: expected sample of %d, got %d", tc.requested, tc.want, source.lastCount)
		}
		if result.QuestionCount != tc.want {
			t.Fatalf("count %d: expected %d questions, got %d", tc.requested, tc.want, result.QuestionCount)
		}
	}
}

func TestStartWithSmallPool(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(threeQuestions())

	result, err := engine.Start(ctx, 1, "", "", 10)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if result.QuestionCount != 3 {
		t.Fatalf("expected the whole 3-question pool, got %d", result.QuestionCount)
	}
}

func TestStartNeverLeaksCorrectAnswer(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(threeQuestions())

	result, err := engine.Start(ctx, 1, "", "", 5)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	payload, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(payload), "correct_answer") {
		t.Fatalf("start payload leaks the correct answer: %s", payload)
	}
}

func TestStartDefaultsFilters(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(threeQuestions())

	result, err := engine.Start(ctx, 1, "", "", 10)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if result.Difficulty != "all" || result.Category != "all" {
		t.Fatalf("expected empty filters to default to all, got %q/%q", result.Difficulty, result.Category)
	}
}

func TestStartSourceFailure(t *testing.T) {
	ctx := context.Background()
	engine := app.NewGameEngine(failingSource{}, memory.NewSessionStore(0), &flakyRecorder{})

	_, err := engine.Start(ctx, 1, "", "", 10)
	if !errors.Is(err, domain.ErrQuestionSource) {
		t.Fatalf("expected question source error, got %v", err)
	}
}

type failingSource struct{}

func (failingSource) Sample(context.Context, int, string, string) ([]domain.Question, error) {
	return nil, errors.New("pool unavailable")
}

func TestTimeBonusScoring(t *testing.T) {
	cases := []struct {
		name       string
		answer     string
		timeTaken  int
		wantPoints int
	}{
		{"instant answer earns base only", "B", 0, 10},
		{"fast answer earns partial bonus", "B", 6, 12},
		{"nine seconds earns bonus three", "B", 9, 13},
		{"just under cutoff keeps bonus", "B", 29, 19},
		{"at cutoff earns nothing extra", "B", 30, 10},
		{"past cutoff earns nothing extra", "B", 45, 10},
		{"negative time treated as zero", "B", -5, 10},
		{"wrong answer earns nothing", "C", 2, 0},
		{"skip earns nothing", "", 2, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			engine, _, _ := newTestEngine(threeQuestions())
			if _, err := engine.Start(ctx, 1, "", "", 10); err != nil {
				t.Fatalf("start failed: %v", err)
			}
			result, err := engine.SubmitAnswer(ctx, 1, 0, tc.answer, tc.timeTaken)
			if err != nil {
				t.Fatalf("submit failed: %v", err)
			}
			if result.PointsEarned != tc.wantPoints {
				t.Fatalf("expected %d points, got %d", tc.wantPoints, result.PointsEarned)
			}
			if wantCorrect := tc.answer == "B"; result.IsCorrect != wantCorrect {
				t.Fatalf("expected is_correct=%v, got %v", wantCorrect, result.IsCorrect)
			}
		})
	}
}

func TestAnswerIsNormalized(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(threeQuestions())
	if _, err := engine.Start(ctx, 1, "", "", 10); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	result, err := engine.SubmitAnswer(ctx, 1, 0, "  b ", 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !result.IsCorrect {
		t.Fatalf("lowercase padded answer should match, got %+v", result)
	}
}

func TestSubmitRejections(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(threeQuestions())

	if _, err := engine.SubmitAnswer(ctx, 1, 0, "A", 1); !errors.Is(err, domain.ErrNoActiveSession) {
		t.Fatalf("expected no-session error, got %v", err)
	}

	if _, err := engine.Start(ctx, 1, "", "", 10); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	if _, err := engine.SubmitAnswer(ctx, 1, -1, "A", 1); !errors.Is(err, domain.ErrInvalidIndex) {
		t.Fatalf("expected invalid index for -1, got %v", err)
	}
	if _, err := engine.SubmitAnswer(ctx, 1, 3, "A", 1); !errors.Is(err, domain.ErrInvalidIndex) {
		t.Fatalf("expected invalid index for out of range, got %v", err)
	}
	if _, err := engine.SubmitAnswer(ctx, 1, 0, "E", 1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for letter E, got %v", err)
	}

	if _, err := engine.SubmitAnswer(ctx, 1, 0, "B", 1); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := engine.SubmitAnswer(ctx, 1, 0, "C", 1); !errors.Is(err, domain.ErrQuestionAnswered) {
		t.Fatalf("expected resubmission rejection, got %v", err)
	}
}

func TestRejectedSubmitKeepsScore(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(threeQuestions())
	if _, err := engine.Start(ctx, 1, "", "", 10); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	first, err := engine.SubmitAnswer(ctx, 1, 0, "B", 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := engine.SubmitAnswer(ctx, 1, 0, "C", 0); !errors.Is(err, domain.ErrQuestionAnswered) {
		t.Fatalf("expected resubmission rejection, got %v", err)
	}
	second, err := engine.SubmitAnswer(ctx, 1, 1, "A", 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if second.TotalScore != first.TotalScore+second.PointsEarned {
		t.Fatalf("rejected submit changed the score: %d then %d", first.TotalScore, second.TotalScore)
	}
}

func TestFullGameFlow(t *testing.T) {
	ctx := context.Background()
	engine, _, recorder := newTestEngine(threeQuestions())

	start := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := start
	engine.SetClock(func() time.Time { return clock })

	if _, err := engine.Start(ctx, 7, "", "", 10); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	r1, err := engine.SubmitAnswer(ctx, 7, 0, "B", 6)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if r1.PointsEarned != 12 || r1.IsComplete {
		t.Fatalf("expected 12 points on an open game, got %+v", r1)
	}
	if r1.CurrentQuestion != 1 || r1.TotalQuestions != 3 {
		t.Fatalf("expected position 1/3, got %d/%d", r1.CurrentQuestion, r1.TotalQuestions)
	}

	r2, err := engine.SubmitAnswer(ctx, 7, 1, "C", 31)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if r2.PointsEarned != 0 || r2.IsCorrect {
		t.Fatalf("expected wrong answer to earn nothing, got %+v", r2)
	}

	r3, err := engine.SubmitAnswer(ctx, 7, 2, "D", 45)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !r3.IsComplete {
		t.Fatalf("expected game complete after last answer, got %+v", r3)
	}
	if r3.TotalScore != 22 {
		t.Fatalf("expected total score 22, got %d", r3.TotalScore)
	}

	clock = start.Add(90 * time.Second)
	summary, err := engine.End(ctx, 7)
	if err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if summary.Correct != 2 || summary.Wrong != 1 || summary.Skipped != 0 {
		t.Fatalf("expected 2/1/0, got %d/%d/%d", summary.Correct, summary.Wrong, summary.Skipped)
	}
	if summary.Percentage != 66.67 {
		t.Fatalf("expected percentage 66.67, got %v", summary.Percentage)
	}
	if summary.TimeTaken != 90 {
		t.Fatalf("expected elapsed 90s, got %d", summary.TimeTaken)
	}
	if summary.Score != 22 {
		t.Fatalf("expected score 22, got %d", summary.Score)
	}
	if len(recorder.recorded) != 1 {
		t.Fatalf("expected one recorded result, got %d", len(recorder.recorded))
	}

	if _, err := engine.End(ctx, 7); !errors.Is(err, domain.ErrNoActiveSession) {
		t.Fatalf("expected no session after end, got %v", err)
	}
}

func TestEndWithoutAnswers(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(threeQuestions())

	if _, err := engine.Start(ctx, 1, "", "", 10); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	summary, err := engine.End(ctx, 1)
	if err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if summary.Skipped != 3 || summary.Correct != 0 || summary.Wrong != 0 {
		t.Fatalf("expected all questions skipped, got %+v", summary)
	}
	if summary.Percentage != 0 {
		t.Fatalf("expected zero percentage, got %v", summary.Percentage)
	}
}

func TestExplicitSkipsCountAsSkipped(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(threeQuestions())

	if _, err := engine.Start(ctx, 1, "", "", 10); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := engine.SubmitAnswer(ctx, 1, 0, "", 30); err != nil {
		t.Fatalf("skip failed: %v", err)
	}
	if _, err := engine.SubmitAnswer(ctx, 1, 1, "A", 2); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	summary, err := engine.End(ctx, 1)
	if err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if summary.Correct != 1 || summary.Wrong != 0 || summary.Skipped != 2 {
		t.Fatalf("expected 1 correct and 2 skipped, got %d/%d/%d", summary.Correct, summary.Wrong, summary.Skipped)
	}
}

func TestStartReplacesActiveSession(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(threeQuestions())

	first, err := engine.Start(ctx, 1, "", "", 10)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := engine.SubmitAnswer(ctx, 1, 0, "B", 2); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	second, err := engine.Start(ctx, 1, "", "", 10)
	if err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if first.GameID == second.GameID {
		t.Fatalf("expected a fresh game id on restart")
	}

	// The replacement wiped the earlier answer.
	result, err := engine.SubmitAnswer(ctx, 1, 0, "B", 2)
	if err != nil {
		t.Fatalf("submit on fresh session failed: %v", err)
	}
	if result.TotalScore != result.PointsEarned {
		t.Fatalf("expected a zeroed score on restart, got %d", result.TotalScore)
	}
}

func TestEndKeepsSessionOnPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	engine, _, recorder := newTestEngine(threeQuestions())
	recorder.failures = 1

	if _, err := engine.Start(ctx, 1, "", "", 10); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := engine.SubmitAnswer(ctx, 1, 0, "B", 2); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := engine.End(ctx, 1); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}

	// The session survived; retrying succeeds.
	summary, err := engine.End(ctx, 1)
	if err != nil {
		t.Fatalf("retry end failed: %v", err)
	}
	if summary.Correct != 1 {
		t.Fatalf("expected the retried summary to keep answers, got %+v", summary)
	}
	if len(recorder.recorded) != 1 {
		t.Fatalf("expected exactly one recorded result, got %d", len(recorder.recorded))
	}
}
