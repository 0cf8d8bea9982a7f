package stats

import "github.com/ostapenko/lategoal/internal/pkg/models"

// MinSampleSize is the floor below which a frequency is not trusted at all.
const MinSampleSize = 3

// Classify maps (frequency, sample size, recency) to a discrete confidence
// tier. Rules apply in order, first match wins. This is a coarse gate on how
// much to trust the number shown to a human, not a calibrated posterior.
func Classify(freq float64, totalMatches int, recurrence *float64) models.Confidence {
	if totalMatches < MinSampleSize {
		return models.ConfidenceInsufficientData
	}

	if recurrence == nil {
		switch {
		case freq >= 0.60 && totalMatches >= 8:
			return models.ConfidenceGood
		case freq >= 0.50:
			return models.ConfidenceMedium
		default:
			return models.ConfidenceWeak
		}
	}

	rec := *recurrence
	switch {
	case freq >= 0.65 && totalMatches >= 8 && rec >= 0.60:
		return models.ConfidenceExcellent
	case freq >= 0.55 && totalMatches >= 6 && rec >= 0.40:
		return models.ConfidenceVeryGood
	case freq >= 0.45 && totalMatches >= 5:
		return models.ConfidenceGood
	case freq >= 0.35:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceWeak
	}
}
