package memory_test

import (
	"context"
	"errors"
	"testing"

	"wareeth/internal/domain"
	"wareeth/internal/infra/memory"
)

func TestRecordResultUpdatesAggregates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewUserStore()

	user, err := store.CreateUser(ctx, "ahmed", "ahmed@example.com", "hash")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := store.RecordResult(ctx, user.ID, domain.GameSummary{Score: 120, TotalQuestions: 10, Correct: 10, Percentage: 100}); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := store.RecordResult(ctx, user.ID, domain.GameSummary{Score: 60, TotalQuestions: 10, Correct: 6, Percentage: 60}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	updated, err := store.UserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if updated.TotalScore != 180 || updated.GamesPlayed != 2 || updated.BestScore != 120 {
		t.Fatalf("unexpected aggregates: %+v", updated)
	}
	if updated.Level != domain.LevelBeginner {
		t.Fatalf("expected beginner below 500 points, got %q", updated.Level)
	}
}

func TestRecordResultPromotesLevel(t *testing.T) {
	ctx := context.Background()
	store := memory.NewUserStore()

	user, err := store.CreateUser(ctx, "ahmed", "ahmed@example.com", "hash")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := store.RecordResult(ctx, user.ID, domain.GameSummary{Score: 110, TotalQuestions: 10, Percentage: 90}); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	updated, _ := store.UserByID(ctx, user.ID)
	if updated.TotalScore != 550 || updated.Level != domain.LevelIntermediate {
		t.Fatalf("expected intermediate at 550 points, got %+v", updated)
	}
}

func TestRecordResultUnlocksAchievementsOnce(t *testing.T) {
	ctx := context.Background()
	store := memory.NewUserStore()

	user, err := store.CreateUser(ctx, "ahmed", "ahmed@example.com", "hash")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	perfect := domain.GameSummary{Score: 130, TotalQuestions: 10, Correct: 10, Percentage: 100}
	if err := store.RecordResult(ctx, user.ID, perfect); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := store.RecordResult(ctx, user.ID, perfect); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	earned, err := store.Achievements(ctx, user.ID)
	if err != nil {
		t.Fatalf("achievements failed: %v", err)
	}
	count := 0
	for _, a := range earned {
		if a.Name == "مثالي" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected the perfect badge exactly once, got %d", count)
	}
}

func TestRecordResultUnknownUser(t *testing.T) {
	ctx := context.Background()
	store := memory.NewUserStore()

	err := store.RecordResult(ctx, 99, domain.GameSummary{Score: 10})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestTopPlayersOrderAndTiebreak(t *testing.T) {
	ctx := context.Background()
	store := memory.NewUserStore()

	for _, u := range []struct {
		name  string
		score int
	}{
		{"omar", 100},
		{"ahmed", 300},
		{"sara", 300},
	} {
		user, err := store.CreateUser(ctx, u.name, u.name+"@example.com", "hash")
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if err := store.RecordResult(ctx, user.ID, domain.GameSummary{Score: u.score, TotalQuestions: 10}); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	top, err := store.TopPlayers(ctx, 10)
	if err != nil {
		t.Fatalf("top players failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	if top[0].Username != "ahmed" || top[1].Username != "sara" || top[2].Username != "omar" {
		t.Fatalf("unexpected order: %+v", top)
	}

	rank, err := store.Rank(ctx, top[2].UserID)
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	if rank != 3 {
		t.Fatalf("expected omar ranked 3, got %d", rank)
	}
}
