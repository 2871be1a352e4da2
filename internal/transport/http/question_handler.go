package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wareeth/internal/app"
	"wareeth/internal/domain"
)

// QuestionHandler serves the question catalog endpoints.
type QuestionHandler struct {
	questions *app.QuestionService
	logger    *zap.Logger
}

func NewQuestionHandler(questions *app.QuestionService, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{questions: questions, logger: logger}
}

type addQuestionRequest struct {
	Text          string `json:"question_text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty"`
	Points        int    `json:"points"`
}

// Random handles GET /api/questions/random.
func (h *QuestionHandler) Random(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	questions, err := h.questions.Random(c.Request.Context(), limit,
		c.Query("difficulty"), c.Query("category"))
	if err != nil {
		h.logger.Warn("random questions", zap.Error(err))
		writeError(c, err)
		return
	}
	ok(c, gin.H{"questions": questions, "count": len(questions)}, "")
}

// Add handles POST /api/questions.
func (h *QuestionHandler) Add(c *gin.Context) {
	var req addQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	id, err := h.questions.Add(c.Request.Context(), domain.Question{
		Text:          req.Text,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: req.CorrectAnswer,
		Category:      req.Category,
		Difficulty:    req.Difficulty,
		Points:        req.Points,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	created(c, gin.H{"question_id": id}, "تم إضافة السؤال بنجاح")
}

// Categories handles GET /api/questions/categories.
func (h *QuestionHandler) Categories(c *gin.Context) {
	categories, err := h.questions.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, gin.H{"categories": categories}, "")
}

// Statistics handles GET /api/questions/statistics.
func (h *QuestionHandler) Statistics(c *gin.Context) {
	stats, err := h.questions.Statistics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, stats, "")
}
