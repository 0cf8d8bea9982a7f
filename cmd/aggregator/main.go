package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ostapenko/lategoal/internal/aggregator"
	"github.com/ostapenko/lategoal/internal/pkg/config"
	"github.com/ostapenko/lategoal/internal/pkg/interval"
	"github.com/ostapenko/lategoal/internal/pkg/logging"
	"github.com/ostapenko/lategoal/internal/pkg/storage"
)

func main() {
	var configPath, inputFile string
	flag.StringVar(&configPath, "config", "configs/local.yaml", "Path to config file")
	flag.StringVar(&inputFile, "input", "", "JSON file of historical matches to import before aggregating")
	flag.Parse()

	logger := logging.SetupLogger("aggregator", slog.LevelInfo)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	schedule, err := interval.FromConfig(cfg.Intervals)
	if err != nil {
		log.Fatalf("Invalid interval configuration: %v", err)
	}

	matchStore, err := storage.NewPostgresMatchStorage(&cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect match storage: %v", err)
	}
	defer matchStore.Close()

	patternStore, err := storage.NewPostgresPatternStorage(&cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect pattern storage: %v", err)
	}
	defer patternStore.Close()

	var cache *storage.RedisCache
	if cfg.Redis.Addr != "" {
		cache, err = storage.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without cache invalidation", "error", err)
		} else {
			defer cache.Close()
		}
	}

	service := aggregator.NewService(matchStore, patternStore, cache, schedule, cfg.Aggregator.Workers, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Received shutdown signal, stopping aggregation")
		cancel()
	}()

	if inputFile == "" {
		inputFile = cfg.Aggregator.InputFile
	}
	if inputFile != "" {
		if _, err := service.ImportFile(ctx, inputFile); err != nil {
			log.Fatalf("Historical import failed: %v", err)
		}
	}

	if err := service.Run(ctx); err != nil {
		log.Fatalf("Aggregation failed: %v", err)
	}
}
