package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wareeth/internal/app"
	"wareeth/internal/config"
	"wareeth/internal/infra/memory"
	pgstore "wareeth/internal/infra/postgres"
	redisstore "wareeth/internal/infra/redis"
	"wareeth/internal/logger"
	transport "wareeth/internal/transport/http"
)

// NewServerCmd builds the CLI subcommand to start the server.
func NewServerCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Start the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log.Level, cfg.Log.File)
	defer log.Sync()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	sessionTTL := config.TTLDuration(cfg.Session.TTL, 30*time.Minute)
	cacheTTL := config.TTLDuration(cfg.Questions.CacheTTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var catalog app.QuestionCatalog = memory.NewQuestionStore(sampleQuestions())
	var userStore interface {
		app.UserStore
		app.StatsStore
		app.ResultRecorder
	} = memory.NewUserStore()
	if pool != nil {
		catalog = pgstore.NewQuestionStore(pool)
		userStore = pgstore.NewUserStore(pool)
	}
	if redisClient != nil {
		catalog = redisstore.NewCatalogCache(redisClient, catalog, cacheTTL)
	} else {
		catalog = memory.NewCatalogCache(catalog, cacheTTL)
	}

	var sessions app.SessionStore
	if redisClient != nil {
		sessions = redisstore.NewSessionStore(redisClient, sessionTTL)
	} else {
		sessions = memory.NewSessionStore(sessionTTL)
	}

	engine := app.NewGameEngine(catalog, sessions, userStore)
	accounts := app.NewAccountService(userStore, userStore)
	questions := app.NewQuestionService(catalog)
	feed := app.NewLeaderboardFeed(userStore, cfg.Leaderboard.Size)
	engine.SetFinishListener(feed)
	tokens := app.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	router := transport.NewRouter(transport.Services{
		Engine:   engine,
		Accounts: accounts,
		Question: questions,
		Feed:     feed,
		Tokens:   tokens,
	}, log)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("starting wareeth server", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server...")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
