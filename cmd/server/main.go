package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-screener-backend/internal/config"
	httpdelivery "stock-screener-backend/internal/delivery/http"
	"stock-screener-backend/internal/infrastructure/db"
	"stock-screener-backend/internal/infrastructure/fcm"
	"stock-screener-backend/internal/infrastructure/gemini"
	"stock-screener-backend/internal/infrastructure/ratelimit"
	"stock-screener-backend/internal/infrastructure/yahoo"
	"stock-screener-backend/internal/repository"
	"stock-screener-backend/internal/usecase"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.DefaultPoolConfig())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	stockRepo := repository.NewPostgresStockRepository(pool)
	if err := stockRepo.EnsureSymbols(ctx, cfg.Symbols); err != nil {
		return fmt.Errorf("seed symbols: %w", err)
	}
	tokenRepo := repository.NewTokenRepository(pool)
	jobRecorder := repository.NewPostgresBatchJobRecorder(pool)
	cache := repository.NewInMemoryScreenCache()

	fcmClient, err := fcm.NewClient(ctx, cfg.FirebaseCredentialsPath, log)
	if err != nil {
		log.Warn().Err(err).Msg("FCM disabled")
	}

	market := yahoo.NewClient(cfg.YahooBaseURL)
	predictor := gemini.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey)
	pacer := ratelimit.NewIntervalPacer(cfg.BatchPacing)

	predictionUC := usecase.NewPredictionUsecase(predictor, pacer, log)
	screenerUC := usecase.NewScreenerUsecase(
		stockRepo, cache, market, predictionUC, jobRecorder,
		fcmClient, tokenRepo, pacer, log,
	)

	scheduler := cron.New(cron.WithSeconds())
	_, err = scheduler.AddFunc(cfg.CronSchedule, func() {
		if _, err := screenerUC.RunBatch(context.Background()); err != nil {
			log.Error().Err(err).Msg("scheduled screening run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", cfg.CronSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()
	log.Info().Str("schedule", cfg.CronSchedule).Msg("daily screening scheduled")

	router := httpdelivery.NewRouter(httpdelivery.RouterConfig{
		Screener:   httpdelivery.NewScreenerHandler(screenerUC, log),
		Tokens:     httpdelivery.NewTokenHandler(tokenRepo, log),
		CronSecret: cfg.CronSecret,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Port).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
