package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"wareeth/internal/app"
)

// LeaderboardHandler serves the leaderboard snapshot and a websocket feed
// that pushes a fresh snapshot whenever a game result is recorded.
type LeaderboardHandler struct {
	feed     *app.LeaderboardFeed
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewLeaderboardHandler(feed *app.LeaderboardFeed, logger *zap.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		feed: feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Get handles GET /api/leaderboard.
func (h *LeaderboardHandler) Get(c *gin.Context) {
	snapshot, err := h.feed.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Warn("leaderboard snapshot", zap.Error(err))
		writeError(c, err)
		return
	}
	ok(c, snapshot, "")
}

// Watch handles GET /ws/leaderboard: upgrades to a websocket and streams
// leaderboard updates until the client disconnects.
func (h *LeaderboardHandler) Watch(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	updates, cancel, err := h.feed.Subscribe(c.Request.Context())
	if err != nil {
		_ = conn.WriteJSON(Body{Success: false, Message: err.Error()})
		return
	}
	defer cancel()

	done := make(chan struct{})

	// Reader only detects disconnect; the feed is one-way.
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case update, open := <-updates:
			if !open {
				return
			}
			if err := conn.WriteJSON(update); err != nil {
				h.logger.Debug("ws write error", zap.Error(err))
				return
			}
		case <-done:
			return
		}
	}
}
