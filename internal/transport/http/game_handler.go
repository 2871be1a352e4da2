package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wareeth/internal/app"
)

// GameHandler serves the single-player game operations.
type GameHandler struct {
	engine   *app.GameEngine
	accounts *app.AccountService
	logger   *zap.Logger
}

func NewGameHandler(engine *app.GameEngine, accounts *app.AccountService, logger *zap.Logger) *GameHandler {
	return &GameHandler{engine: engine, accounts: accounts, logger: logger}
}

type startRequest struct {
	Difficulty    string `json:"difficulty"`
	Category      string `json:"category"`
	QuestionCount int    `json:"question_count"`
}

type answerRequest struct {
	QuestionIndex int    `json:"question_index"`
	Answer        string `json:"answer"`
	TimeTaken     int    `json:"time_taken"`
}

// Start handles POST /api/game/start.
func (h *GameHandler) Start(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	result, err := h.engine.Start(c.Request.Context(), userID(c), req.Difficulty, req.Category, req.QuestionCount)
	if err != nil {
		h.logger.Warn("start game", zap.Int64("user_id", userID(c)), zap.Error(err))
		writeError(c, err)
		return
	}
	ok(c, result, "Game started successfully")
}

// Answer handles POST /api/game/answer.
func (h *GameHandler) Answer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	result, err := h.engine.SubmitAnswer(c.Request.Context(), userID(c), req.QuestionIndex, req.Answer, req.TimeTaken)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, result, "Answer submitted successfully")
}

// End handles POST /api/game/end.
func (h *GameHandler) End(c *gin.Context) {
	summary, err := h.engine.End(c.Request.Context(), userID(c))
	if err != nil {
		h.logger.Warn("end game", zap.Int64("user_id", userID(c)), zap.Error(err))
		writeError(c, err)
		return
	}
	ok(c, summary, "Game ended and saved successfully")
}

// History handles GET /api/game/history.
func (h *GameHandler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	games, err := h.accounts.History(c.Request.Context(), userID(c), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, gin.H{"games": games, "page": page, "limit": limit}, "")
}

// Stats handles GET /api/game/stats.
func (h *GameHandler) Stats(c *gin.Context) {
	stats, err := h.accounts.Stats(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, stats, "")
}
