package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ostapenko/lategoal/internal/livefeed"
	"github.com/ostapenko/lategoal/internal/monitor"
	"github.com/ostapenko/lategoal/internal/pkg/config"
	"github.com/ostapenko/lategoal/internal/pkg/interval"
	"github.com/ostapenko/lategoal/internal/pkg/logging"
	"github.com/ostapenko/lategoal/internal/pkg/predict"
	"github.com/ostapenko/lategoal/internal/pkg/storage"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/local.yaml", "Path to config file")
	flag.Parse()

	logger := logging.SetupLogger("monitor", slog.LevelInfo)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	schedule, err := interval.FromConfig(cfg.Intervals)
	if err != nil {
		log.Fatalf("Invalid interval configuration: %v", err)
	}

	patternStore, err := storage.NewPostgresPatternStorage(&cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect pattern storage: %v", err)
	}
	defer patternStore.Close()

	var cache *storage.RedisCache
	if cfg.Redis.Addr != "" {
		cache, err = storage.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("Redis unavailable, continuing with in-memory cooldown", "error", err)
		} else {
			defer cache.Close()
		}
	}

	feed, err := livefeed.New(&cfg.LiveFeed)
	if err != nil {
		log.Fatalf("Failed to configure live feed: %v", err)
	}

	var notifier *monitor.TelegramNotifier
	if cfg.Monitor.TelegramBotToken != "" && cfg.Monitor.TelegramChatID != 0 {
		notifier = monitor.NewTelegramNotifier(cfg.Monitor.TelegramBotToken, cfg.Monitor.TelegramChatID)
	}
	if notifier == nil {
		logger.Warn("Telegram notifier not configured, running in log-only mode")
	}

	var patterns storage.PatternReader = patternStore
	if cache != nil {
		patterns = storage.NewCachedPatternReader(cache, patternStore, cfg.Monitor.Interval*4)
	}

	predictor := predict.NewPredictor(patterns, schedule, logger)
	mon := monitor.New(feed, predictor, notifier, cache, &cfg.Monitor, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Received shutdown signal, stopping monitor")
		cancel()
	}()

	if err := mon.Start(ctx); err != nil {
		log.Fatalf("Monitor failed: %v", err)
	}
}
