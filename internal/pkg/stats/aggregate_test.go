package stats

import (
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/ostapenko/lategoal/internal/pkg/interval"
	"github.com/ostapenko/lategoal/internal/pkg/models"
)

var lateWindow = interval.Definition{Name: "76-90+", Start: 76, End: 90, OpenEnd: true}

// scenarioMatches builds 10 home matches for one team, most recent first by
// date. Four matches have a goal in the late window: minutes 78 and 85 scored,
// 80 and 88 conceded. Exactly two of the goal matches fall inside the most
// recent five. One extra early goal (minute 12) sits outside the window.
func scenarioMatches() []models.HistoricalMatch {
	base := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	goalsFor := map[int][]int{
		1: {78},
		2: {12},
		6: {85},
	}
	goalsAgainst := map[int][]int{
		3: {80},
		8: {88},
	}

	var out []models.HistoricalMatch
	for i := 1; i <= 10; i++ {
		out = append(out, models.HistoricalMatch{
			MatchID:      fmt.Sprintf("m%d", i),
			Country:      "England",
			League:       "Premier League",
			Team:         "Arsenal",
			Opponent:     fmt.Sprintf("Opponent %d", i),
			Side:         models.SideHome,
			Date:         base.AddDate(0, 0, -i),
			GoalsFor:     goalsFor[i],
			GoalsAgainst: goalsAgainst[i],
		})
	}
	return out
}

func TestBuildPattern_WorkedScenario(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := BuildPattern("England", "Premier League", "Arsenal", models.SideHome, lateWindow, scenarioMatches(), now)

	if p.TotalMatches != 10 {
		t.Fatalf("TotalMatches = %d, want 10", p.TotalMatches)
	}
	if p.GoalsScored != 2 || p.GoalsConceded != 2 || p.AnyGoalTotal != 4 {
		t.Errorf("goal counts = %d/%d/%d, want 2/2/4", p.GoalsScored, p.GoalsConceded, p.AnyGoalTotal)
	}
	if p.MatchesWithScored != 2 || p.MatchesWithConceded != 2 || p.MatchesWithAnyGoal != 4 {
		t.Errorf("match counts = %d/%d/%d, want 2/2/4", p.MatchesWithScored, p.MatchesWithConceded, p.MatchesWithAnyGoal)
	}
	if p.MatchesWithAnyGoal < p.MatchesWithScored || p.MatchesWithAnyGoal < p.MatchesWithConceded {
		t.Errorf("MatchesWithAnyGoal %d below a per-direction count", p.MatchesWithAnyGoal)
	}

	if math.Abs(p.FreqAnyGoal-0.4) > 1e-9 {
		t.Errorf("FreqAnyGoal = %v, want 0.4", p.FreqAnyGoal)
	}

	// Pooled minutes [78, 80, 85, 88]: mean 82.75, sample sd 4.5735 over
	// N−1 = 3, stderr 4.5735/√4 ≈ 2.2867.
	if math.Abs(p.AvgMinuteAny-82.75) > 1e-9 {
		t.Errorf("AvgMinuteAny = %v, want 82.75", p.AvgMinuteAny)
	}
	if math.Abs(p.StderrMinuteAny-2.2867369) > 1e-4 {
		t.Errorf("StderrMinuteAny = %v, want ≈2.2867", p.StderrMinuteAny)
	}
	if math.Abs(p.AvgMinuteScored-81.5) > 1e-9 {
		t.Errorf("AvgMinuteScored = %v, want 81.5", p.AvgMinuteScored)
	}
	if math.Abs(p.AvgMinuteConceded-84.0) > 1e-9 {
		t.Errorf("AvgMinuteConceded = %v, want 84.0", p.AvgMinuteConceded)
	}
	if p.SpreadLowMinute != 80 || p.SpreadHighMinute != 88 {
		t.Errorf("spread = %d..%d, want 80..88", p.SpreadLowMinute, p.SpreadHighMinute)
	}

	if p.RecurrenceLast5 == nil {
		t.Fatal("RecurrenceLast5 = nil, want 0.4")
	}
	if math.Abs(*p.RecurrenceLast5-0.4) > 1e-9 {
		t.Errorf("RecurrenceLast5 = %v, want 0.4", *p.RecurrenceLast5)
	}

	if p.Confidence != models.ConfidenceMedium {
		t.Errorf("Confidence = %s, want MEDIUM", p.Confidence)
	}

	// 5 goals total over 10 matches, 1 in the first half.
	if math.Abs(p.AvgGoalsFullMatch-0.5) > 1e-9 {
		t.Errorf("AvgGoalsFullMatch = %v, want 0.5", p.AvgGoalsFullMatch)
	}
	if math.Abs(p.AvgGoalsFirstHalf-0.1) > 1e-9 {
		t.Errorf("AvgGoalsFirstHalf = %v, want 0.1", p.AvgGoalsFirstHalf)
	}
	if math.Abs(p.AvgGoalsSecondHalf-0.4) > 1e-9 {
		t.Errorf("AvgGoalsSecondHalf = %v, want 0.4", p.AvgGoalsSecondHalf)
	}
}

func TestBuildPattern_ZeroMatches(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := BuildPattern("England", "Premier League", "Arsenal", models.SideHome, lateWindow, nil, now)

	if p.TotalMatches != 0 || p.FreqAnyGoal != 0 || p.AnyGoalTotal != 0 {
		t.Errorf("empty input should aggregate to zeros, got matches=%d freq=%v goals=%d",
			p.TotalMatches, p.FreqAnyGoal, p.AnyGoalTotal)
	}
	if p.AvgMinuteAny != 0 || p.StderrMinuteAny != 0 {
		t.Errorf("minute stats should be 0 on empty input, got %v / %v", p.AvgMinuteAny, p.StderrMinuteAny)
	}
	if p.RecurrenceLast5 != nil {
		t.Errorf("RecurrenceLast5 = %v, want nil", *p.RecurrenceLast5)
	}
	if p.Confidence != models.ConfidenceInsufficientData {
		t.Errorf("Confidence = %s, want INSUFFICIENT_DATA", p.Confidence)
	}
}

func TestBuildPattern_FiltersSideAndTeam(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	matches := scenarioMatches()

	// Away rows and rows for another team must not leak in.
	matches = append(matches,
		models.HistoricalMatch{
			MatchID: "away1", Team: "Arsenal", Side: models.SideAway,
			Date: time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC), GoalsFor: []int{77},
		},
		models.HistoricalMatch{
			MatchID: "other1", Team: "Chelsea", Side: models.SideHome,
			Date: time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC), GoalsFor: []int{77},
		},
	)

	p := BuildPattern("England", "Premier League", "Arsenal", models.SideHome, lateWindow, matches, now)
	if p.TotalMatches != 10 {
		t.Errorf("TotalMatches = %d, want 10 (away and foreign rows ignored)", p.TotalMatches)
	}
	if p.GoalsScored != 2 {
		t.Errorf("GoalsScored = %d, want 2", p.GoalsScored)
	}
}

func TestBuildPattern_DuplicateMatchIDSupersedes(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	matches := scenarioMatches()

	// Re-ingested row for m1: the later row (no late goal) wins.
	matches = append(matches, models.HistoricalMatch{
		MatchID: "m1", Team: "Arsenal", Side: models.SideHome,
		Date: time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC),
	})

	p := BuildPattern("England", "Premier League", "Arsenal", models.SideHome, lateWindow, matches, now)
	if p.TotalMatches != 10 {
		t.Errorf("TotalMatches = %d, want 10 after dedupe", p.TotalMatches)
	}
	if p.GoalsScored != 1 {
		t.Errorf("GoalsScored = %d, want 1 (superseding m1 row has no late goal)", p.GoalsScored)
	}
	if p.MatchesWithAnyGoal != 3 {
		t.Errorf("MatchesWithAnyGoal = %d, want 3", p.MatchesWithAnyGoal)
	}
}

func TestBuildPattern_Deterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	matches := scenarioMatches()

	a := BuildPattern("England", "Premier League", "Arsenal", models.SideHome, lateWindow, matches, now)
	b := BuildPattern("England", "Premier League", "Arsenal", models.SideHome, lateWindow, matches, now)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same input produced different aggregates:\n%+v\n%+v", a, b)
	}
}

func TestBuildPattern_OpenEndFoldsInjuryTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	matches := []models.HistoricalMatch{
		{
			MatchID: "inj1", Team: "Arsenal", Side: models.SideHome,
			Date:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			GoalsFor: []int{93}, // stoppage-time goal counts for the open-ended window
		},
		{
			MatchID: "early1", Team: "Arsenal", Side: models.SideHome,
			Date:     time.Date(2025, 4, 24, 0, 0, 0, 0, time.UTC),
			GoalsFor: []int{70}, // before the window
		},
		{
			MatchID: "blank1", Team: "Arsenal", Side: models.SideHome,
			Date: time.Date(2025, 4, 17, 0, 0, 0, 0, time.UTC),
		},
	}

	p := BuildPattern("England", "Premier League", "Arsenal", models.SideHome, lateWindow, matches, now)
	if p.GoalsScored != 1 {
		t.Errorf("GoalsScored = %d, want 1 (only the minute-93 goal is in window)", p.GoalsScored)
	}
	if p.MatchesWithAnyGoal != 1 {
		t.Errorf("MatchesWithAnyGoal = %d, want 1", p.MatchesWithAnyGoal)
	}
}
