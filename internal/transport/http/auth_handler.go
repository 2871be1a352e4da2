package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wareeth/internal/app"
	"wareeth/internal/domain"
)

// AuthHandler serves registration, login and profile endpoints.
type AuthHandler struct {
	accounts *app.AccountService
	tokens   *app.TokenService
	logger   *zap.Logger
}

func NewAuthHandler(accounts *app.AccountService, tokens *app.TokenService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokens: tokens, logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Username)
	if err != nil {
		h.logger.Error("issue token", zap.Error(err))
		internal(c, "failed to issue token")
		return
	}
	created(c, tokenResponse{Token: token, User: user}, "تم تسجيل المستخدم بنجاح")
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Username)
	if err != nil {
		h.logger.Error("issue token", zap.Error(err))
		internal(c, "failed to issue token")
		return
	}
	ok(c, tokenResponse{Token: token, User: user}, "تم تسجيل الدخول بنجاح")
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	profile, err := h.accounts.Profile(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, profile, "")
}

// Check handles GET /api/auth/check: confirms the token maps to a live user.
func (h *AuthHandler) Check(c *gin.Context) {
	user, err := h.accounts.User(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, user, "")
}
