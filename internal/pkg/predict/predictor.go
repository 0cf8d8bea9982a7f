package predict

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ostapenko/lategoal/internal/pkg/interval"
	"github.com/ostapenko/lategoal/internal/pkg/livesignal"
	"github.com/ostapenko/lategoal/internal/pkg/models"
	"github.com/ostapenko/lategoal/internal/pkg/storage"
)

// Predictor turns a live snapshot into a MatchPrediction. It performs no I/O
// beyond pattern lookups through the given reader; live data arrives fully
// resolved in the snapshot.
type Predictor struct {
	patterns storage.PatternReader
	schedule interval.Schedule
	logger   *slog.Logger
}

func NewPredictor(patterns storage.PatternReader, schedule interval.Schedule, logger *slog.Logger) *Predictor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Predictor{patterns: patterns, schedule: schedule, logger: logger}
}

// Predict computes both sides and the combined probability for one snapshot.
//
// Outside the critical windows it short-circuits to the floor probability
// without touching live signals or storage: the statistical value of the
// model is concentrated in the two windows and is not extrapolated.
func (p *Predictor) Predict(ctx context.Context, snap *models.LiveSnapshot, cache *PatternCache) *models.MatchPrediction {
	now := time.Now()
	pred := &models.MatchPrediction{
		HomeTeam:     snap.HomeTeam,
		AwayTeam:     snap.AwayTeam,
		Country:      snap.Country,
		League:       snap.League,
		Minute:       snap.Minute,
		CalculatedAt: now,
	}

	active := p.schedule.Active(snap.Minute)
	if active == nil {
		next := p.schedule.Next(snap.Minute)
		if next != nil {
			pred.IntervalName = next.Name
		}
		pred.Reason = "outside key intervals (" + p.schedule.Bucket(snap.Minute) + ")"
		pred.Home = floorPrediction(snap, models.SideHome, pred.IntervalName, pred.Reason)
		pred.Away = floorPrediction(snap, models.SideAway, pred.IntervalName, pred.Reason)
		pred.Combined = CombineSides(pred.Home.Probability, pred.Away.Probability)
		return pred
	}

	pred.IntervalName = active.Name
	pred.Active = true

	pred.Home = p.predictSide(ctx, snap, models.SideHome, *active, cache)
	pred.Away = p.predictSide(ctx, snap, models.SideAway, *active, cache)
	pred.Combined = CombineSides(pred.Home.Probability, pred.Away.Probability)

	if pred.Home.Confidence == models.ConfidenceInsufficientData && pred.Away.Confidence == models.ConfidenceInsufficientData {
		pred.Reason = "insufficient data for both teams"
	} else {
		pred.Reason = "interval " + active.Name + " active"
	}

	return pred
}

func (p *Predictor) predictSide(ctx context.Context, snap *models.LiveSnapshot, side models.Side, def interval.Definition, cache *PatternCache) models.IntervalPrediction {
	team := snap.TeamForSide(side)
	key := storage.PatternKey{
		Country:      snap.Country,
		League:       snap.League,
		Team:         models.NormalizeTeam(team),
		Side:         side,
		IntervalName: def.Name,
	}

	pattern, err := p.lookupPattern(ctx, key, cache)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		p.logger.Warn("pattern lookup failed, degrading to floor",
			"key", key.String(), "error", err)
	}

	factors := livesignal.Extract(snap, side, pattern, def)
	prob, liveAdj, reason := Combine(pattern, factors, true)

	out := models.IntervalPrediction{
		Team:           team,
		Side:           side,
		IntervalName:   def.Name,
		Active:         true,
		Probability:    prob,
		Confidence:     models.ConfidenceInsufficientData,
		LiveMultiplier: factors.Multiplier(),
		LiveAdjustment: liveAdj,
		Reason:         reason,
	}

	if pattern != nil {
		out.Confidence = pattern.Confidence
		out.HistFrequency = pattern.FreqAnyGoal
		out.RecurrenceLast5 = pattern.RecurrenceLast5
		out.SampleSize = pattern.TotalMatches
		out.AvgMinute = pattern.AvgMinuteAny
		out.SpreadLowMinute = pattern.SpreadLowMinute
		out.SpreadHighMinute = pattern.SpreadHighMinute
	}

	return out
}

func (p *Predictor) lookupPattern(ctx context.Context, key storage.PatternKey, cache *PatternCache) (*models.IntervalPattern, error) {
	if cache != nil {
		if pattern, ok := cache.get(key); ok {
			return pattern, nil
		}
	}

	pattern, err := p.patterns.GetPattern(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) && cache != nil {
			cache.put(key, nil)
		}
		return nil, err
	}

	if cache != nil {
		cache.put(key, pattern)
	}
	return pattern, nil
}

func floorPrediction(snap *models.LiveSnapshot, side models.Side, intervalName, reason string) models.IntervalPrediction {
	return models.IntervalPrediction{
		Team:           snap.TeamForSide(side),
		Side:           side,
		IntervalName:   intervalName,
		Probability:    FloorProbability,
		Confidence:     models.ConfidenceInsufficientData,
		LiveMultiplier: 1.0,
		Reason:         reason,
	}
}
