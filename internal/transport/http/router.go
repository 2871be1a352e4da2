package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wareeth/internal/app"
)

// Services bundles the use-case layer the router exposes.
type Services struct {
	Engine   *app.GameEngine
	Accounts *app.AccountService
	Question *app.QuestionService
	Feed     *app.LeaderboardFeed
	Tokens   *app.TokenService
}

// NewRouter wires all routes. Endpoints under RequireAuth carry the
// authenticated user id on the request context.
func NewRouter(services Services, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	authHandler := NewAuthHandler(services.Accounts, services.Tokens, logger)
	gameHandler := NewGameHandler(services.Engine, services.Accounts, logger)
	questionHandler := NewQuestionHandler(services.Question, logger)
	leaderboardHandler := NewLeaderboardHandler(services.Feed, logger)

	router.GET("/healthz", func(c *gin.Context) {
		c.String(200, "ok")
	})

	api := router.Group("/api")
	authed := RequireAuth(services.Tokens)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/profile", authed, authHandler.Profile)
		auth.GET("/check", authed, authHandler.Check)
	}

	game := api.Group("/game", authed)
	{
		game.POST("/start", gameHandler.Start)
		game.POST("/answer", gameHandler.Answer)
		game.POST("/end", gameHandler.End)
		game.GET("/history", gameHandler.History)
		game.GET("/stats", gameHandler.Stats)
	}

	questions := api.Group("/questions")
	{
		questions.GET("/random", questionHandler.Random)
		questions.GET("/categories", questionHandler.Categories)
		questions.GET("/statistics", questionHandler.Statistics)
		questions.POST("", authed, questionHandler.Add)
	}

	api.GET("/leaderboard", leaderboardHandler.Get)
	router.GET("/ws/leaderboard", leaderboardHandler.Watch)

	return router
}
