package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"wareeth/internal/domain"
)

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestSessionStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewSessionStore(newClient(mr), time.Minute)

	got, err := store.Get(ctx, 1)
	if err != nil || got != nil {
		t.Fatalf("expected redis.Nil to map to no session, got %v, %v", got, err)
	}

	session := &domain.GameSession{
		ID:     "game_abc",
		UserID: 1,
		Questions: []domain.Question{
			{ID: 7, Text: "q", CorrectAnswer: "B", Points: 10},
		},
		Answers: map[int]domain.Answer{
			0: {QuestionIndex: 0, Answer: "B", IsCorrect: true, PointsEarned: 12},
		},
		Score:     12,
		StartedAt: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := store.Put(ctx, 1, session); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if !mr.Exists("wareeth:session:1") {
		t.Fatalf("expected redis key to be set")
	}

	got, err = store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != "game_abc" || got.Score != 12 {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.Answers[0].Answer != "B" || !got.Answers[0].IsCorrect {
		t.Fatalf("answers did not survive the round trip: %+v", got.Answers)
	}
	if got.Questions[0].CorrectAnswer != "B" {
		t.Fatalf("server-side session must keep the correct answer, got %+v", got.Questions[0])
	}

	if err := store.Clear(ctx, 1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if mr.Exists("wareeth:session:1") {
		t.Fatalf("expected redis key to be removed")
	}
}

func TestSessionStoreExpires(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewSessionStore(newClient(mr), 30*time.Minute)

	if err := store.Put(ctx, 1, &domain.GameSession{ID: "game_abc"}); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	mr.FastForward(31 * time.Minute)

	got, err := store.Get(ctx, 1)
	if err != nil || got != nil {
		t.Fatalf("expected expired session, got %v, %v", got, err)
	}
}
