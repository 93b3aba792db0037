package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"golang-news-sentiment/internal/api/config"
	delivery "golang-news-sentiment/internal/api/delivery/http"
	"golang-news-sentiment/internal/api/repository"
	"golang-news-sentiment/internal/api/service"
	"golang-news-sentiment/internal/fetcher"
	"golang-news-sentiment/internal/sentiment"
	"golang-news-sentiment/pkg/logger"
	"golang-news-sentiment/pkg/postgres"
	"golang-news-sentiment/pkg/redis"
	"golang-news-sentiment/pkg/telegram"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the news sentiment API service",
	Run:   runServe,
}

var cleanupMaxAgeDays int

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Deletes analysis data older than the cutoff and reclaims space",
	Run:   runCleanup,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting API Service", logger.StringField("name", cfg.App.Name))

	db, err := postgres.NewDB(postgresConfig(cfg))
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Redis caches scored verdicts; the pipeline runs without it.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient, err = redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
	}

	analyzer := buildAnalyzer(ctx, cfg, appLogger)

	var notifier telegram.Notifier
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	analysisRepo := repository.NewAnalysisRepository(db.DB)
	newsFetcher := fetcher.New(cfg.News, appLogger)

	var analysisSvc service.AnalysisService
	if redisClient != nil {
		analysisSvc = service.NewAnalysisService(cfg, appLogger, newsFetcher, analyzer, analysisRepo, redisClient.Client, notifier)
	} else {
		analysisSvc = service.NewAnalysisService(cfg, appLogger, newsFetcher, analyzer, analysisRepo, nil, notifier)
	}
	insightsSvc := service.NewInsightsService(appLogger, analysisRepo)

	schedulerSvc := service.NewSchedulerService(cfg, appLogger, analysisSvc)
	if err := schedulerSvc.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start scheduler", logger.ErrorField(err))
	}
	defer schedulerSvc.Stop()

	e := echo.New()
	e.HideBanner = true

	analysisHandler := delivery.NewAnalysisHandler(analysisSvc, insightsSvc, appLogger)
	apiV1 := e.Group("/api/v1")
	analysisHandler.RegisterRoutes(apiV1)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.StringField("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// buildAnalyzer registers whatever classifiers the configuration makes
// available. The local models are always present; the remote ones join
// only when configured, and the ensemble runs with any subset.
func buildAnalyzer(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) *sentiment.Analyzer {
	classifiers := []sentiment.Classifier{
		sentiment.NewVaderClassifier(),
		sentiment.NewPatternClassifier(),
	}

	if cfg.HuggingFace.APIToken != "" {
		classifiers = append(classifiers, sentiment.NewRobertaClassifier(
			sentiment.RobertaConfig{
				BaseURL:             cfg.HuggingFace.BaseURL,
				Model:               cfg.HuggingFace.Model,
				APIToken:            cfg.HuggingFace.APIToken,
				MaxRequestPerMinute: cfg.HuggingFace.MaxRequestPerMinute,
			},
			sentiment.LabelMap{
				"label_0": "negative",
				"label_1": "neutral",
				"label_2": "positive",
			},
		))
	}

	if cfg.Gemini.APIKey != "" {
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.Gemini.APIKey})
		if err != nil {
			appLogger.Warn("Gemini classifier not available", logger.ErrorField(err))
		} else {
			classifiers = append(classifiers, sentiment.NewGeminiClassifier(
				sentiment.GeminiConfig{
					Model:               cfg.Gemini.Model,
					MaxRequestPerMinute: cfg.Gemini.MaxRequestPerMinute,
				},
				genAiClient,
				sentiment.LabelMap{},
			))
		}
	}

	weights := sentiment.DefaultWeights()
	for model, weight := range cfg.Analyzer.ModelWeights {
		weights[model] = weight
	}

	combiner := sentiment.NewCombiner(weights, cfg.Analyzer.ConfidenceThreshold)
	analyzer := sentiment.NewAnalyzer(classifiers, combiner, appLogger)

	appLogger.Info("Sentiment ensemble ready", logger.Field("models", analyzer.Models()))
	return analyzer
}

func runCleanup(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	db, err := postgres.NewDB(postgresConfig(cfg))
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	repo := repository.NewAnalysisRepository(db.DB)
	if err := repo.Cleanup(context.Background(), cleanupMaxAgeDays); err != nil {
		appLogger.Fatal("Cleanup failed", logger.ErrorField(err))
	}

	appLogger.Info("Cleanup finished", logger.IntField("max_age_days", cleanupMaxAgeDays))
}

func postgresConfig(cfg *config.Config) postgres.Config {
	return postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
}

func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")
	cleanupCmd.Flags().IntVar(&cleanupMaxAgeDays, "max-age-days", 30, "Delete rows older than this many days")

	rootCmd.AddCommand(serveCmd, cleanupCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
