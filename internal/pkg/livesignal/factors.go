// Package livesignal converts a live match snapshot into the normalized
// factors the probability combiner multiplies over the historical base rate.
//
// Every factor defaults to neutral (1.0) when its inputs are missing: absent
// live data must never bias the outcome in either direction.
package livesignal

import (
	"github.com/ostapenko/lategoal/internal/pkg/interval"
	"github.com/ostapenko/lategoal/internal/pkg/models"
)

// Factors holds the per-side multiplicative live factors. Momentum is part of
// the same multiplicative stack (scaled into [0.85, 1.15] around a neutral
// 0.5 share); there is no separate additive momentum blend.
type Factors struct {
	Possession       float64
	Shots            float64
	ShotsOnTarget    float64
	DangerousAttacks float64
	RedCards         float64
	Saturation       float64
	ScoreDiff        float64
	Momentum         float64

	// MomentumShare is this side's raw weighted share of live stats, nil when
	// no live stats were available at all.
	MomentumShare *float64
}

// Neutral returns factors that leave the historical component untouched.
func Neutral() Factors {
	return Factors{
		Possession:       1.0,
		Shots:            1.0,
		ShotsOnTarget:    1.0,
		DangerousAttacks: 1.0,
		RedCards:         1.0,
		Saturation:       1.0,
		ScoreDiff:        1.0,
		Momentum:         1.0,
	}
}

// Multiplier is the product of all factors.
func (f Factors) Multiplier() float64 {
	return f.Possession * f.Shots * f.ShotsOnTarget * f.DangerousAttacks *
		f.RedCards * f.Saturation * f.ScoreDiff * f.Momentum
}

// Extract computes the live factors for one side of the match. The pattern
// may be nil; saturation then falls back to fixed per-interval expectations.
func Extract(snap *models.LiveSnapshot, side models.Side, pattern *models.IntervalPattern, def interval.Definition) Factors {
	f := Neutral()
	if snap == nil {
		return f
	}

	f.Possession = possessionFactor(snap.Possession)
	f.Shots = shotsFactor(snap.Shots)
	f.ShotsOnTarget = shotsOnTargetFactor(snap.ShotsOnTarget)
	f.DangerousAttacks = dangerousAttackFactor(snap.Attacks, snap.DangerousAttacks)
	f.RedCards = redCardFactor(snap.RedCards)
	f.Saturation = saturationFactor(snap.TotalGoals(), pattern, def)
	f.ScoreDiff = scoreDiffFactor(snap.GoalDiff())

	f.MomentumShare = MomentumShare(snap, side)
	f.Momentum = momentumFactor(f.MomentumShare)

	return f
}

// possessionFactor boosts when either side dominates the ball: possession
// outside the 40-60 band means one team is camped in the other's half.
func possessionFactor(p *models.StatPair) float64 {
	if p == nil {
		return 1.0
	}
	if p.Home < 40 || p.Home > 60 || p.Away < 40 || p.Away > 60 {
		return 1.2
	}
	return 1.0
}

func shotsFactor(p *models.StatPair) float64 {
	if p == nil {
		return 1.0
	}
	switch total := p.Total(); {
	case total >= 10:
		return 1.2
	case total >= 5:
		return 1.1
	default:
		return 1.0
	}
}

func shotsOnTargetFactor(p *models.StatPair) float64 {
	if p == nil {
		return 1.0
	}
	switch total := p.Total(); {
	case total >= 4:
		return 1.3
	case total >= 2:
		return 1.1
	default:
		return 1.0
	}
}

// dangerousAttackFactor takes the dangerous/total attack ratio of the
// stronger side, doubled and capped at 1.5.
func dangerousAttackFactor(attacks, dangerous *models.StatPair) float64 {
	if attacks == nil || dangerous == nil {
		return 1.0
	}
	ratio := 0.0
	if attacks.Home > 0 {
		ratio = dangerous.Home / attacks.Home
	}
	if attacks.Away > 0 {
		if r := dangerous.Away / attacks.Away; r > ratio {
			ratio = r
		}
	}
	if ratio <= 0 {
		return 1.0
	}
	f := ratio * 2
	if f > 1.5 {
		f = 1.5
	}
	if f < 1.0 {
		f = 1.0
	}
	return f
}

func redCardFactor(p *models.StatPair) float64 {
	if p == nil {
		return 1.0
	}
	switch total := int(p.Total()); {
	case total >= 2:
		return 0.4
	case total == 1:
		return 0.7
	default:
		return 1.0
	}
}

// Fixed expectations used when no team baseline is available: league-typical
// total goals by the end of each half.
const (
	defaultExpectedFirstHalf = 1.25
	defaultExpectedFullMatch = 2.5
)

// saturationFactor dampens when the match already has more goals than
// statistically expected by this window, and nudges up when it is running
// below expectation.
func saturationFactor(totalGoals int, pattern *models.IntervalPattern, def interval.Definition) float64 {
	if totalGoals == 0 {
		return 1.0
	}

	expected := defaultExpectedFullMatch
	if def.End <= 45 {
		expected = defaultExpectedFirstHalf
	}
	if pattern != nil {
		if def.End <= 45 && pattern.AvgGoalsFirstHalf > 0 {
			expected = pattern.AvgGoalsFirstHalf
		} else if def.End > 45 && pattern.AvgGoalsFullMatch > 0 {
			expected = pattern.AvgGoalsFullMatch
		}
	}
	if expected <= 0 {
		return 1.0
	}

	switch ratio := float64(totalGoals) / expected; {
	case ratio >= 2.0:
		return 0.5
	case ratio >= 1.5:
		return 0.7
	case ratio > 1.1:
		return 0.85
	case ratio <= 0.5:
		return 1.1
	case ratio <= 0.9:
		return 1.05
	default:
		return 1.0
	}
}

// scoreDiffFactor: teams behind press harder, so a larger absolute goal
// difference slightly increases the chance of another goal. Capped modestly.
func scoreDiffFactor(diff int) float64 {
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff >= 3:
		return 1.15
	case diff == 2:
		return 1.10
	case diff == 1:
		return 1.05
	default:
		return 1.0
	}
}

// momentumFactor maps a side's share of live play into a multiplier in
// [0.85, 1.15]: full domination (share 1.0) gives the cap, neutral 0.5 gives
// 1.0. Unknown momentum stays neutral.
func momentumFactor(share *float64) float64 {
	if share == nil {
		return 1.0
	}
	f := 1.0 + (*share-0.5)*0.3
	if f < 0.85 {
		f = 0.85
	}
	if f > 1.15 {
		f = 1.15
	}
	return f
}
