package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumilearn/quiz-runner/internal/config"
	"github.com/lumilearn/quiz-runner/internal/importer"
	"github.com/lumilearn/quiz-runner/internal/mockserver"
	"github.com/lumilearn/quiz-runner/internal/utils"
	"github.com/lumilearn/quiz-runner/internal/validator"
	"github.com/lumilearn/quiz-runner/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)

	content, err := buildContentStore(cfg, logger)
	if err != nil {
		logger.Error("Failed to build content store", "error", err)
		os.Exit(1)
	}

	sessions, err := buildSessionStore(cfg)
	if err != nil {
		logger.Error("Failed to build session store", "error", err)
		os.Exit(1)
	}

	ledger := mockserver.NewHeartsLedger(sessions, cfg.HeartsCapacity, cfg.HeartsRefill)
	service := mockserver.NewQuizService(content, sessions, ledger, cfg.PassPercent, logger)
	handler := mockserver.NewQuizHandler(service, validator.New(), logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.RequestLogger(logger), gin.Recovery())
	handler.SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Mock backend listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
}

// buildContentStore serves lessons from Postgres when a database is
// configured, otherwise from memory. A configured workbook is imported into
// whichever store is active; without one the memory store falls back to the
// bundled sample lesson.
func buildContentStore(cfg *config.Config, logger *slog.Logger) (mockserver.ContentStore, error) {
	var imported []*mockserver.LessonContent
	if cfg.ContentWorkbook != "" {
		result, err := importer.NewExcelImporter(logger).ImportFile(cfg.ContentWorkbook)
		if err != nil {
			return nil, err
		}
		for _, rowErr := range result.Errors {
			logger.Warn("Workbook row skipped", "error", rowErr.Error())
		}
		imported = result.Lessons
	}

	if cfg.DatabaseURL != "" {
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		store, err := mockserver.NewGormContentStore(db)
		if err != nil {
			return nil, err
		}
		ctx := context.Background()
		for _, lesson := range imported {
			if err := store.SaveLesson(ctx, lesson); err != nil {
				return nil, err
			}
		}
		return store, nil
	}

	if len(imported) > 0 {
		return mockserver.NewMemoryContentStore(imported), nil
	}
	return mockserver.NewMemoryContentStore(mockserver.SeedLessons()), nil
}

func buildSessionStore(cfg *config.Config) (mockserver.SessionStore, error) {
	if cfg.RedisURL == "" {
		return mockserver.NewMemorySessionStore(), nil
	}
	client, err := pkg.NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	return mockserver.NewRedisSessionStore(client), nil
}
