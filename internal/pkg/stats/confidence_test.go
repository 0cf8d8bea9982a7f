package stats

import (
	"testing"

	"github.com/ostapenko/lategoal/internal/pkg/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		freq       float64
		matches    int
		recurrence *float64
		want       models.Confidence
	}{
		{"below minimum sample", 1.0, 2, ptr(1.0), models.ConfidenceInsufficientData},
		{"zero matches", 0.0, 0, nil, models.ConfidenceInsufficientData},

		{"excellent", 0.70, 10, ptr(0.8), models.ConfidenceExcellent},
		{"excellent boundary", 0.65, 8, ptr(0.6), models.ConfidenceExcellent},
		{"high freq low recurrence", 0.70, 10, ptr(0.2), models.ConfidenceGood},
		{"very good", 0.55, 6, ptr(0.4), models.ConfidenceVeryGood},
		{"good", 0.45, 5, ptr(0.0), models.ConfidenceGood},
		{"good freq but small sample", 0.50, 4, ptr(0.2), models.ConfidenceMedium},
		{"medium", 0.40, 10, ptr(0.4), models.ConfidenceMedium},
		{"weak", 0.20, 10, ptr(0.2), models.ConfidenceWeak},

		// Short history: recurrence unknown, stricter tiers.
		{"no recurrence good", 0.60, 8, nil, models.ConfidenceGood},
		{"no recurrence medium", 0.55, 4, nil, models.ConfidenceMedium},
		{"no recurrence weak", 0.30, 4, nil, models.ConfidenceWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.freq, tt.matches, tt.recurrence); got != tt.want {
				t.Errorf("Classify(%v, %d, %v) = %s, want %s", tt.freq, tt.matches, tt.recurrence, got, tt.want)
			}
		})
	}
}

// Raising frequency with everything else fixed must never lower the tier.
func TestClassify_MonotonicInFrequency(t *testing.T) {
	rec := ptr(0.6)
	prev := models.ConfidenceInsufficientData
	for f := 0.0; f <= 1.0; f += 0.05 {
		got := Classify(f, 10, rec)
		if got.Rank() < prev.Rank() {
			t.Fatalf("tier dropped from %s to %s at freq %.2f", prev, got, f)
		}
		prev = got
	}
}
