package livesignal

import "github.com/ostapenko/lategoal/internal/pkg/models"

// Momentum weights. Stats the feed did not report simply drop out and the
// remaining weights are re-normalized, so one missing stat never skews the
// blend toward zero.
var momentumWeights = []struct {
	weight float64
	pick   func(*models.LiveSnapshot) *models.StatPair
}{
	{0.25, func(s *models.LiveSnapshot) *models.StatPair { return s.Possession }},
	{0.20, func(s *models.LiveSnapshot) *models.StatPair { return s.Shots }},
	{0.20, func(s *models.LiveSnapshot) *models.StatPair { return s.ShotsOnTarget }},
	{0.15, func(s *models.LiveSnapshot) *models.StatPair { return s.DangerousAttacks }},
	{0.10, func(s *models.LiveSnapshot) *models.StatPair { return s.Attacks }},
	{0.10, func(s *models.LiveSnapshot) *models.StatPair { return s.Corners }},
}

// MomentumShare estimates which fraction of live play the given side
// controls, as a weighted blend of its share of each available stat.
// Returns nil only when no live stats are available at all.
func MomentumShare(snap *models.LiveSnapshot, side models.Side) *float64 {
	if snap == nil {
		return nil
	}

	var weighted, totalWeight float64
	for _, w := range momentumWeights {
		pair := w.pick(snap)
		if pair == nil {
			continue
		}
		total := pair.Total()
		if total <= 0 {
			continue
		}
		weighted += w.weight * (pair.ForSide(side) / total)
		totalWeight += w.weight
	}

	if totalWeight == 0 {
		return nil
	}
	share := weighted / totalWeight
	return &share
}
