// Package aggregator rebuilds every TeamIntervalPattern row from the stored
// historical match set. Units of work — one (team, side, interval) tuple —
// share no mutable state, so the batch fans out across a bounded worker pool.
package aggregator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/ostapenko/lategoal/internal/pkg/interval"
	"github.com/ostapenko/lategoal/internal/pkg/models"
	"github.com/ostapenko/lategoal/internal/pkg/stats"
	"github.com/ostapenko/lategoal/internal/pkg/storage"
)

const defaultWorkers = 8

// Service runs the aggregation batch: list team contexts, rebuild each
// pattern, replace the stored rows, invalidate the cache namespace.
type Service struct {
	matches  storage.MatchStorage
	patterns storage.PatternStorage
	cache    *storage.RedisCache // optional
	schedule interval.Schedule
	workers  int
	logger   *slog.Logger
}

func NewService(matches storage.MatchStorage, patterns storage.PatternStorage, cache *storage.RedisCache, schedule interval.Schedule, workers int, logger *slog.Logger) *Service {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		matches:  matches,
		patterns: patterns,
		cache:    cache,
		schedule: schedule,
		workers:  workers,
		logger:   logger,
	}
}

type unit struct {
	tc  storage.TeamContext
	def interval.Definition
}

// Run executes one full aggregation cycle. A failed unit is logged and
// skipped; the cycle keeps going so one bad team never blocks the rest.
// Re-running Run concurrently with itself is unsafe (last writer wins);
// running it while predictions read is fine, rows are replaced atomically.
func (s *Service) Run(ctx context.Context) error {
	started := time.Now()

	contexts, err := s.matches.ListTeamContexts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list team contexts: %w", err)
	}

	defs := s.schedule.Definitions()
	units := make([]unit, 0, len(contexts)*len(defs))
	for _, tc := range contexts {
		for _, def := range defs {
			units = append(units, unit{tc: tc, def: def})
		}
	}

	s.logger.Info("aggregation cycle starting",
		"team_contexts", len(contexts), "units", len(units), "workers", s.workers)

	var (
		wg     sync.WaitGroup
		jobs   = make(chan unit)
		failed int64
		mu     sync.Mutex
	)

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				if err := s.runUnit(ctx, u); err != nil {
					if ctx.Err() != nil {
						return
					}
					s.logger.Error("aggregation unit failed",
						"team", u.tc.Team, "side", u.tc.Side, "interval", u.def.Name, "error", err)
					mu.Lock()
					failed++
					mu.Unlock()
				}
			}
		}()
	}

	for _, u := range units {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- u:
		}
	}
	close(jobs)
	wg.Wait()

	if s.cache != nil {
		if err := s.cache.InvalidatePatterns(ctx); err != nil {
			s.logger.Warn("failed to invalidate pattern cache", "error", err)
		}
	}

	s.logger.Info("aggregation cycle finished",
		"units", len(units), "failed", failed, "duration", time.Since(started))
	return nil
}

func (s *Service) runUnit(ctx context.Context, u unit) error {
	matches, err := s.matches.GetTeamMatches(ctx, u.tc)
	if err != nil {
		return fmt.Errorf("failed to load matches: %w", err)
	}

	pattern := stats.BuildPattern(u.tc.Country, u.tc.League, u.tc.Team, u.tc.Side, u.def, matches, time.Now())

	if err := s.patterns.ReplacePattern(ctx, &pattern); err != nil {
		return fmt.Errorf("failed to replace pattern: %w", err)
	}
	return nil
}

// ImportFile bulk-loads historical match records from a JSON array file into
// match storage. Existing (match_id, team, side) rows are superseded.
func (s *Service) ImportFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read input file: %w", err)
	}

	var records []models.HistoricalMatch
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("failed to parse input file: %w", err)
	}

	stored := 0
	for i := range records {
		if err := s.matches.StoreMatch(ctx, &records[i]); err != nil {
			s.logger.Warn("failed to store match, skipping",
				"match_id", records[i].MatchID, "error", err)
			continue
		}
		stored++
	}

	s.logger.Info("historical import finished", "file", path, "total", len(records), "stored", stored)
	return stored, nil
}
