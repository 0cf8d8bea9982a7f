package predict

import (
	"context"
	"math"
	"testing"

	"github.com/ostapenko/lategoal/internal/pkg/interval"
	"github.com/ostapenko/lategoal/internal/pkg/models"
	"github.com/ostapenko/lategoal/internal/pkg/storage"
)

// fakePatternReader serves patterns from a map and counts lookups.
type fakePatternReader struct {
	patterns map[storage.PatternKey]*models.IntervalPattern
	calls    int
}

func (f *fakePatternReader) GetPattern(_ context.Context, key storage.PatternKey) (*models.IntervalPattern, error) {
	f.calls++
	if p, ok := f.patterns[key]; ok {
		return p, nil
	}
	return nil, storage.ErrNotFound
}

func testSchedule(t *testing.T) interval.Schedule {
	t.Helper()
	s, err := interval.NewSchedule(interval.Defaults())
	if err != nil {
		t.Fatalf("default schedule: %v", err)
	}
	return s
}

func key(team string, side models.Side, intervalName string) storage.PatternKey {
	return storage.PatternKey{
		Country:      "England",
		League:       "Premier League",
		Team:         models.NormalizeTeam(team),
		Side:         side,
		IntervalName: intervalName,
	}
}

func snapshot(minute int) *models.LiveSnapshot {
	return &models.LiveSnapshot{
		Country:  "England",
		League:   "Premier League",
		HomeTeam: "Arsenal",
		AwayTeam: "Chelsea",
		Minute:   minute,
	}
}

func TestPredict_OutsideWindowsShortCircuits(t *testing.T) {
	reader := &fakePatternReader{}
	p := NewPredictor(reader, testSchedule(t), nil)

	pred := p.Predict(context.Background(), snapshot(50), NewPatternCache())

	if pred.Active {
		t.Error("minute 50 should not be inside a critical window")
	}
	if pred.IntervalName != "76-90+" {
		t.Errorf("IntervalName = %q, want next window 76-90+", pred.IntervalName)
	}
	if pred.Home.Probability != FloorProbability || pred.Away.Probability != FloorProbability {
		t.Errorf("side probabilities = %v/%v, want floor", pred.Home.Probability, pred.Away.Probability)
	}
	if want := CombineSides(FloorProbability, FloorProbability); math.Abs(pred.Combined-want) > 1e-9 {
		t.Errorf("Combined = %v, want %v", pred.Combined, want)
	}
	if reader.calls != 0 {
		t.Errorf("storage was queried %d times outside the windows, want 0", reader.calls)
	}
}

func TestPredict_NoPatternsDegradesToFloor(t *testing.T) {
	reader := &fakePatternReader{}
	p := NewPredictor(reader, testSchedule(t), nil)

	pred := p.Predict(context.Background(), snapshot(80), NewPatternCache())

	if !pred.Active {
		t.Fatal("minute 80 should be inside the late window")
	}
	if pred.Home.Confidence != models.ConfidenceInsufficientData {
		t.Errorf("home confidence = %s, want INSUFFICIENT_DATA", pred.Home.Confidence)
	}
	if pred.Home.Probability != FloorProbability {
		t.Errorf("home probability = %v, want floor", pred.Home.Probability)
	}
	if pred.Reason != "insufficient data for both teams" {
		t.Errorf("Reason = %q", pred.Reason)
	}
}

func TestPredict_UsesPatternsPerSide(t *testing.T) {
	rec := 0.6
	reader := &fakePatternReader{patterns: map[storage.PatternKey]*models.IntervalPattern{
		key("Arsenal", models.SideHome, "76-90+"): {
			Team: "arsenal", Side: models.SideHome, IntervalName: "76-90+",
			FreqAnyGoal: 0.60, TotalMatches: 12, RecurrenceLast5: &rec,
			Confidence:   models.ConfidenceGood,
			AvgMinuteAny: 82.75, SpreadLowMinute: 80, SpreadHighMinute: 88,
		},
	}}
	p := NewPredictor(reader, testSchedule(t), nil)

	pred := p.Predict(context.Background(), snapshot(80), NewPatternCache())

	// 0.60 + 0.10 recurrence + 0 GOOD + 0.20 urgency = 0.90, neutral live.
	if math.Abs(pred.Home.Probability-0.90) > 1e-9 {
		t.Errorf("home probability = %v, want 0.90", pred.Home.Probability)
	}
	if pred.Home.Confidence != models.ConfidenceGood {
		t.Errorf("home confidence = %s, want GOOD", pred.Home.Confidence)
	}
	if math.Abs(pred.Home.AvgMinute-82.75) > 1e-9 {
		t.Errorf("home AvgMinute = %v, want 82.75", pred.Home.AvgMinute)
	}
	if pred.Home.SpreadLowMinute != 80 || pred.Home.SpreadHighMinute != 88 {
		t.Errorf("home spread = %d..%d, want 80..88", pred.Home.SpreadLowMinute, pred.Home.SpreadHighMinute)
	}

	// Away side has no pattern and stays at the floor.
	if pred.Away.Probability != FloorProbability {
		t.Errorf("away probability = %v, want floor", pred.Away.Probability)
	}
	if want := CombineSides(0.90, FloorProbability); math.Abs(pred.Combined-want) > 1e-9 {
		t.Errorf("Combined = %v, want %v", pred.Combined, want)
	}
	if pred.Reason != "interval 76-90+ active" {
		t.Errorf("Reason = %q", pred.Reason)
	}
}

func TestPredict_CacheMemoizesNegativeLookups(t *testing.T) {
	reader := &fakePatternReader{}
	p := NewPredictor(reader, testSchedule(t), nil)
	cache := NewPatternCache()

	p.Predict(context.Background(), snapshot(80), cache)
	first := reader.calls
	p.Predict(context.Background(), snapshot(81), cache)

	if reader.calls != first {
		t.Errorf("second run hit storage %d more times, want 0 (negative entries cached)", reader.calls-first)
	}
}
