package http_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"wareeth/internal/app"
	"wareeth/internal/domain"
	"wareeth/internal/infra/memory"
	transport "wareeth/internal/transport/http"
)

func TestLeaderboardWebSocketStreamsUpdates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	users := memory.NewUserStore()
	user, err := users.CreateUser(ctx, "ahmed", "ahmed@example.com", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	feed := app.NewLeaderboardFeed(users, 10)
	handler := transport.NewLeaderboardHandler(feed, zap.NewNop())

	router := gin.New()
	router.GET("/ws/leaderboard", handler.Watch)
	server := httptest.NewServer(router)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws/leaderboard"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The feed primes the connection with the current snapshot.
	initial := readBoard(conn, t)
	if len(initial.Entries) != 1 || initial.Entries[0].TotalScore != 0 {
		t.Fatalf("unexpected initial snapshot: %+v", initial.Entries)
	}

	summary := domain.GameSummary{Score: 42, TotalQuestions: 5, Correct: 4, Percentage: 80}
	if err := users.RecordResult(ctx, user.ID, summary); err != nil {
		t.Fatalf("record: %v", err)
	}
	feed.GameFinished(user.ID, summary)

	update := readBoard(conn, t)
	if len(update.Entries) != 1 || update.Entries[0].TotalScore != 42 {
		t.Fatalf("expected pushed score 42, got %+v", update.Entries)
	}
}

func readBoard(conn *websocket.Conn, t *testing.T) domain.Leaderboard {
	t.Helper()
	var board domain.Leaderboard
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&board); err != nil {
		t.Fatalf("read json: %v", err)
	}
	return board
}
