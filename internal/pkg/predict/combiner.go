// Package predict blends the historical base rate with live in-match signals
// into a single bounded probability per side, plus the combined
// at-least-one-goal number for the match.
package predict

import (
	"fmt"

	"github.com/ostapenko/lategoal/internal/pkg/livesignal"
	"github.com/ostapenko/lategoal/internal/pkg/models"
)

const (
	// FloorProbability is reported outside the critical windows and whenever
	// no historical pattern exists. The final number never reaches 0 or 1.
	FloorProbability = 0.05
	CeilProbability  = 0.95

	// Only 20% of the live deviation from neutral is allowed to move the
	// final number: history carries 80% of the weight.
	liveWeight = 0.20

	// Urgency boost while the window is actually running.
	urgencyBoost = 0.20
)

// CombineSides returns P(at least one goal by either team) under an
// independence assumption: p_home + p_away − p_home·p_away. Explicitly
// approximate; goals by the two sides are correlated in reality.
func CombineSides(pHome, pAway float64) float64 {
	return pHome + pAway - pHome*pAway
}

// Combine blends one side's historical pattern with its live factors.
// A nil pattern degrades to the floor probability with an insufficient-data
// reason; it never fails.
func Combine(pattern *models.IntervalPattern, factors livesignal.Factors, active bool) (prob, liveAdj float64, reason string) {
	if pattern == nil {
		return FloorProbability, 0, "no historical pattern: floor probability"
	}

	hist := pattern.FreqAnyGoal

	// Additive adjustments on the historical component, applied before the
	// live blend and clamped to [0,1].
	hist += recurrenceAdjustment(pattern.RecurrenceLast5)
	hist += confidenceAdjustment(pattern.Confidence)
	if active {
		hist += urgencyBoost
	}
	hist = clamp(hist, 0, 1)

	multiplier := factors.Multiplier()
	liveAdj = (multiplier - 1.0) * liveWeight

	prob = clamp(hist*(1.0+liveAdj), FloorProbability, CeilProbability)

	reason = fmt.Sprintf("hist freq %.2f (%d matches, %s), live x%.2f",
		pattern.FreqAnyGoal, pattern.TotalMatches, pattern.Confidence, multiplier)
	return prob, liveAdj, reason
}

// recurrenceAdjustment rewards or punishes recent form relative to the
// long-run frequency: up to ±0.15.
func recurrenceAdjustment(recurrence *float64) float64 {
	if recurrence == nil {
		return 0
	}
	switch r := *recurrence; {
	case r >= 0.8:
		return 0.15
	case r >= 0.6:
		return 0.10
	case r <= 0.2:
		return -0.15
	case r < 0.4:
		return -0.05
	default:
		return 0
	}
}

// confidenceAdjustment nudges the base rate by up to ±0.10 according to how
// much evidence backs it.
func confidenceAdjustment(c models.Confidence) float64 {
	switch c {
	case models.ConfidenceExcellent:
		return 0.10
	case models.ConfidenceVeryGood:
		return 0.05
	case models.ConfidenceGood:
		return 0
	case models.ConfidenceMedium:
		return -0.02
	case models.ConfidenceWeak:
		return -0.05
	default: // INSUFFICIENT_DATA
		return -0.10
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
