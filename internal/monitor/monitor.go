// Package monitor polls the live feed on a ticker, runs the predictor for
// matches inside the critical windows and pushes Telegram alerts for
// probabilities above the configured threshold.
package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ostapenko/lategoal/internal/livefeed"
	"github.com/ostapenko/lategoal/internal/pkg/config"
	"github.com/ostapenko/lategoal/internal/pkg/models"
	"github.com/ostapenko/lategoal/internal/pkg/predict"
	"github.com/ostapenko/lategoal/internal/pkg/storage"
)

const (
	defaultInterval    = 45 * time.Second
	defaultCooldown    = 60 // minutes
	defaultMinIncrease = 0.05
)

// Monitor is the polling loop around the prediction core.
type Monitor struct {
	feed      livefeed.Source
	predictor *predict.Predictor
	notifier  *TelegramNotifier     // optional
	cache     *storage.RedisCache   // optional, for cross-restart cooldown
	cfg       *config.MonitorConfig
	logger    *slog.Logger

	// In-memory cooldown fallback when Redis is not configured.
	mu         sync.Mutex
	lastAlerts map[string]storage.AlertRecord
}

func New(feed livefeed.Source, predictor *predict.Predictor, notifier *TelegramNotifier, cache *storage.RedisCache, cfg *config.MonitorConfig, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		feed:       feed,
		predictor:  predictor,
		notifier:   notifier,
		cache:      cache,
		cfg:        cfg,
		logger:     logger,
		lastAlerts: make(map[string]storage.AlertRecord),
	}
}

// Start runs the polling loop until the context is cancelled. The first
// cycle runs immediately.
func (m *Monitor) Start(ctx context.Context) error {
	interval := m.cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}

	m.logger.Info("monitor starting", "interval", interval, "alert_threshold", m.cfg.AlertThreshold)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.processOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopping")
			if m.notifier != nil {
				m.notifier.Stop()
			}
			return nil
		case <-ticker.C:
			m.processOnce(ctx)
		}
	}
}

// processOnce fetches the current snapshots and evaluates each one. Pattern
// lookups share one per-cycle cache; it is discarded at the end of the cycle.
func (m *Monitor) processOnce(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	snapshots, err := m.feed.FetchSnapshots(fetchCtx)
	if err != nil {
		m.logger.Error("failed to fetch live snapshots", "error", err)
		return
	}

	cache := predict.NewPatternCache()
	evaluated, alerted := 0, 0

	for i := range snapshots {
		snap := &snapshots[i]
		pred := m.predictor.Predict(ctx, snap, cache)

		if !pred.Active {
			continue
		}
		evaluated++

		m.logger.Debug("evaluated match",
			"match", snap.HomeTeam+" vs "+snap.AwayTeam,
			"minute", snap.Minute, "interval", pred.IntervalName,
			"combined", pred.Combined)

		if pred.Combined < m.cfg.AlertThreshold {
			continue
		}

		if m.shouldAlert(ctx, snap, pred) {
			if m.notifier != nil {
				if err := m.notifier.SendPredictionAlert(pred); err == nil {
					alerted++
				}
			}
			m.recordAlert(ctx, snap, pred)
		}
	}

	m.logger.Info("monitor cycle finished",
		"snapshots", len(snapshots), "in_window", evaluated, "alerts", alerted)
}

func alertCooldownKey(snap *models.LiveSnapshot) string {
	return models.NormalizeTeam(snap.HomeTeam) + "|" + models.NormalizeTeam(snap.AwayTeam)
}

// shouldAlert suppresses duplicate alerts: re-alerting the same
// match/interval requires either the cooldown to expire or the probability to
// rise by at least min_increase since the last alert.
func (m *Monitor) shouldAlert(ctx context.Context, snap *models.LiveSnapshot, pred *models.MatchPrediction) bool {
	rec := m.lastAlert(ctx, alertCooldownKey(snap), pred.IntervalName)
	if rec == nil {
		return true
	}

	cooldown := time.Duration(m.cfg.CooldownMinutes) * time.Minute
	if m.cfg.CooldownMinutes <= 0 {
		cooldown = defaultCooldown * time.Minute
	}
	if time.Since(rec.SentAt) > cooldown {
		return true
	}

	minIncrease := m.cfg.MinIncrease
	if minIncrease <= 0 {
		minIncrease = defaultMinIncrease
	}
	if pred.Combined-rec.Probability >= minIncrease {
		m.logger.Info("probability rose inside cooldown, re-alerting",
			"match", snap.HomeTeam+" vs "+snap.AwayTeam,
			"previous", rec.Probability, "current", pred.Combined)
		return true
	}

	return false
}

func (m *Monitor) lastAlert(ctx context.Context, matchKey, intervalName string) *storage.AlertRecord {
	if m.cache != nil {
		rec, err := m.cache.GetLastAlert(ctx, matchKey, intervalName)
		if err != nil {
			m.logger.Warn("failed to read alert cooldown, sending anyway", "error", err)
			return nil
		}
		return rec
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.lastAlerts[matchKey+"|"+intervalName]; ok {
		return &rec
	}
	return nil
}

func (m *Monitor) recordAlert(ctx context.Context, snap *models.LiveSnapshot, pred *models.MatchPrediction) {
	rec := storage.AlertRecord{Probability: pred.Combined, SentAt: time.Now()}
	matchKey := alertCooldownKey(snap)

	if m.cache != nil {
		if err := m.cache.SetLastAlert(ctx, matchKey, pred.IntervalName, rec); err != nil {
			m.logger.Warn("failed to record alert cooldown", "error", err)
		}
		return
	}

	m.mu.Lock()
	m.lastAlerts[matchKey+"|"+pred.IntervalName] = rec
	m.mu.Unlock()
}
