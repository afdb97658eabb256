package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/greenmarket/fridgechef/config"
	"github.com/greenmarket/fridgechef/internal/api"
	"github.com/greenmarket/fridgechef/internal/database"
	"github.com/greenmarket/fridgechef/internal/dataset"
	"github.com/greenmarket/fridgechef/internal/router"
	"github.com/greenmarket/fridgechef/internal/server"
	"github.com/greenmarket/fridgechef/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Load the dataset. A failed load is not fatal: the server stays up and
	// answers every turn with the dataset-unavailable apology while /ready
	// reports 503.
	var search *service.SearchService
	repo, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		logger.Error("failed to load recipe dataset, serving degraded",
			zap.String("path", cfg.DatasetPath), zap.Error(err))
	} else {
		logger.Info("recipe dataset loaded",
			zap.String("path", cfg.DatasetPath),
			zap.Int("recipes", repo.Len()),
			zap.Int("tags", len(repo.TagVocabulary())),
			zap.Int("ingredients", len(repo.IngredientVocabulary())))
		search = service.NewSearchService(repo, logger)
	}

	sessions, err := newSessionStore(cfg)
	if err != nil {
		logger.Fatal("failed to initialize session store", zap.Error(err))
	}

	conv := service.NewConversationService(search, sessions, logger)

	engine := router.SetupRouter(
		api.NewChatHandler(conv, logger),
		api.NewRecipeHandler(search),
		api.NewHealthHandler(conv),
		cfg.AllowedOrigins,
	)

	srv := server.New(engine, cfg.Addr(), logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.Stringer("signal", sig))
	}

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if config.IsDevelopment() {
		zcfg = zap.NewDevelopmentConfig()
	}
	if err := zcfg.Level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	return zcfg.Build()
}

func newSessionStore(cfg *config.Config) (service.SessionStore, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		client, err := database.NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		return service.NewRedisSessionStore(client, cfg.SessionTTL), nil
	default:
		return service.NewMemorySessionStore(), nil
	}
}
