package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"gitlab.com/llmeet.net/internal/adapter/crypto"
	"gitlab.com/llmeet.net/internal/adapter/gemini"
	"gitlab.com/llmeet.net/internal/adapter/github"
	"gitlab.com/llmeet.net/internal/adapter/logging"
	"gitlab.com/llmeet.net/internal/adapter/nats/resultpublisher"
	"gitlab.com/llmeet.net/internal/adapter/postgres/completionrepository"
	"gitlab.com/llmeet.net/internal/adapter/postgres/migration"
	"gitlab.com/llmeet.net/internal/adapter/postgres/problemrepository"
	"gitlab.com/llmeet.net/internal/adapter/postgres/userrepository"
	"gitlab.com/llmeet.net/internal/adapter/problemfile"
	"gitlab.com/llmeet.net/internal/adapter/process"
	"gitlab.com/llmeet.net/internal/adapter/redis/historyport"
	"gitlab.com/llmeet.net/internal/config"
	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/ports/secondary"
	"gitlab.com/llmeet.net/internal/core/services/assistant"
	"gitlab.com/llmeet.net/internal/core/services/auth"
	"gitlab.com/llmeet.net/internal/core/services/codespace"
	"gitlab.com/llmeet.net/internal/core/services/completion"
	"gitlab.com/llmeet.net/internal/core/services/judge"
	"gitlab.com/llmeet.net/internal/core/services/problem"
	"gitlab.com/llmeet.net/internal/core/services/submission"
	"gitlab.com/llmeet.net/internal/handlers"
	"gitlab.com/llmeet.net/internal/handlers/session"
	http2 "gitlab.com/llmeet.net/internal/http"
	"gitlab.com/llmeet.net/internal/schedulerengine"
	"gitlab.com/llmeet.net/internal/static/errs"
)

func main() {
	reader, err := config.NewReader(environment())
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	sysCfg := config.NewSystemConfig(reader)

	logger, err := logging.NewZapLogger(sysCfg.LogLevel, sysCfg.DebugMode)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(sysCfg, logger); err != nil {
		logger.Error("Service stopped with error", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

// environment picks the env file name from the first argument, then APP_ENV
func environment() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return os.Getenv("APP_ENV")
}

func run(sysCfg *config.AppConfig, logger *logging.ZapLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	logger.Info("Starting llmeet service", "port", sysCfg.HttpPort, "debug", sysCfg.DebugMode)

	db, err := setupDatabase(ctx, sysCfg.PostgresConfig)
	if err != nil {
		return err
	}
	defer db.Close()
	schema := sysCfg.PostgresConfig.Schema

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}

	// SECONDARY PORTS
	problemRepo, err := setupProblems(ctx, sysCfg.ProblemConfig, db, schema, logger)
	if err != nil {
		return err
	}
	userPort := userrepository.New(db, logger, schema)
	completionRepo := completionrepository.New(db, logger, schema)
	historyRepo := historyport.NewHistoryRepository(redisClient, logger, sysCfg.RedisConfig.HistoryTTL)
	publisher, closePublisher := setupPublisher(sysCfg.NatsConfig, logger)
	defer closePublisher()

	httpClient := &http.Client{Timeout: 30 * time.Second}
	githubClient := github.NewClient(sysCfg.GithubConfig.APIBaseURL, httpClient, logger)
	oauthProvider := github.NewOAuthProvider(sysCfg.GithubConfig, httpClient)
	if dir := sysCfg.JudgeConfig.WorkDir; dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create judge work dir: %w", err)
		}
	}
	runner := process.NewRunner(sysCfg.JudgeConfig.WorkDir, logger)

	var model secondary.LanguageModel
	if client, err := gemini.NewClient(sysCfg.GeminiConfig, nil, logger); err != nil {
		logger.Warn("Assistant disabled", "reason", err)
	} else {
		model = client
	}

	//primary ports
	codec, err := crypto.NewSessionCodec(sysCfg.SessionConfig)
	if err != nil {
		return err
	}
	sessions := session.NewManager(codec, sysCfg.SessionConfig, logger)

	//services
	judgeSvc := judge.NewJudgeService(runner, sysCfg.JudgeConfig, logger)
	codespaceSvc := codespace.NewCodespaceService(githubClient, problemRepo, sysCfg.GithubConfig, logger)
	services := handlers.Services{
		Auth:       auth.NewGithubAuthService(userPort, oauthProvider, githubClient, logger),
		Problems:   problem.NewProblemService(problemRepo, completionRepo, logger),
		Completion: completion.NewCompletionService(completionRepo, problemRepo, codespaceSvc, logger),
		Submission: submission.NewSubmissionService(judgeSvc, problemRepo, historyRepo, completionRepo, publisher, sysCfg.DebugMode, logger),
		Codespaces: codespaceSvc,
		Assistant:  assistant.NewAssistantService(problemRepo, model, logger),
	}
	serviceProvider := http2.NewServiceProvider(services, sessions)

	//server
	httpServer := http2.NewServer(sysCfg.HttpPort, "llmeet", *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		return err
	}
	errCh := httpServer.Start(ctx)
	sweeper := schedulerengine.NewSchedulerEngine(sysCfg.JudgeConfig, logger)
	sweeper.StartWorkspaceSweeper(ctx)
	defer sweeper.Wait()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		stop()
		if err != nil {
			return err
		}
	}
	stop()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("successfully shutdown server")
	return nil
}

// setupDatabase opens PostgreSQL and creates the schema when missing
func setupDatabase(ctx context.Context, cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	if err := migration.Migrate(ctx, db, cfg.Schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// setupProblems serves problems from the JSON file, or from PostgreSQL seeded with it.
func setupProblems(ctx context.Context, cfg *config.ProblemConfig, db *sqlx.DB, schema string, logger primary.Logger) (secondary.ProblemRepository, error) {
	switch cfg.Source {
	case config.ProblemSourceFile, "":
		repo, err := problemfile.New(cfg.FilePath)
		if err != nil {
			return nil, err
		}
		logger.Info("Serving problems from file", "path", cfg.FilePath)
		return repo, nil
	case config.ProblemSourcePostgres:
		repo := problemrepository.New(db, logger, schema)
		if cfg.FilePath == "" {
			return repo, nil
		}
		problems, err := problemfile.Load(cfg.FilePath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return repo, nil
			}
			return nil, err
		}
		if err := repo.Import(ctx, problems); err != nil {
			return nil, err
		}
		logger.Info("Imported problems into database", "count", len(problems), "path", cfg.FilePath)
		return repo, nil
	default:
		return nil, fmt.Errorf("%w: unknown problem source %q", errs.InvalidProblemFile, cfg.Source)
	}
}

// setupPublisher falls back to a no-op publisher when NATS is not configured or unreachable
func setupPublisher(cfg *config.NatsConfig, logger primary.Logger) (secondary.ResultPublisher, func()) {
	if cfg.Url == "" {
		return resultpublisher.Noop{}, func() {}
	}
	nc, err := resultpublisher.Connect(cfg.Url, logger)
	if err != nil {
		logger.Warn("Submission events disabled", "error", err)
		return resultpublisher.Noop{}, func() {}
	}
	return resultpublisher.NewPublisher(nc, cfg.Subject, logger), func() {
		if err := nc.Drain(); err != nil {
			logger.Warn("Failed to drain NATS connection", "error", err)
		}
	}
}
