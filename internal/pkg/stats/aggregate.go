package stats

import (
	"sort"
	"time"

	"github.com/ostapenko/lategoal/internal/pkg/interval"
	"github.com/ostapenko/lategoal/internal/pkg/models"
)

// BuildPattern aggregates one team's historical matches in one home/away
// context into the pattern row for one interval. Pure function: the same
// match set always yields the same pattern (ComputedAt aside).
//
// Zero matches is not an error: all rates come out 0.0 and the confidence
// tier is INSUFFICIENT_DATA.
func BuildPattern(country, league, team string, side models.Side, def interval.Definition, matches []models.HistoricalMatch, now time.Time) models.IntervalPattern {
	p := models.IntervalPattern{
		Country:      country,
		League:       league,
		Team:         models.NormalizeTeam(team),
		Side:         side,
		IntervalName: def.Name,
		ComputedAt:   now,
	}

	relevant := dedupeByMatchID(filterTeamSide(matches, p.Team, side))

	// Most recent first, for the recency window.
	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].Date.After(relevant[j].Date)
	})

	var (
		scoredMinutes   []int
		concededMinutes []int
		pooledMinutes   []int
		hadGoal         []bool
		totalGoals      int
		firstHalfGoals  int
		secondHalfGoals int
	)

	for _, m := range relevant {
		inScored := filterMinutes(m.GoalsFor, def)
		inConceded := filterMinutes(m.GoalsAgainst, def)

		p.GoalsScored += len(inScored)
		p.GoalsConceded += len(inConceded)
		if len(inScored) > 0 {
			p.MatchesWithScored++
		}
		if len(inConceded) > 0 {
			p.MatchesWithConceded++
		}
		any := len(inScored) > 0 || len(inConceded) > 0
		if any {
			p.MatchesWithAnyGoal++
		}
		hadGoal = append(hadGoal, any)

		scoredMinutes = append(scoredMinutes, inScored...)
		concededMinutes = append(concededMinutes, inConceded...)
		pooledMinutes = append(pooledMinutes, inScored...)
		pooledMinutes = append(pooledMinutes, inConceded...)

		for _, minute := range append(append([]int{}, m.GoalsFor...), m.GoalsAgainst...) {
			totalGoals++
			if minute <= 45 {
				firstHalfGoals++
			} else {
				secondHalfGoals++
			}
		}
	}

	p.TotalMatches = len(relevant)
	p.AnyGoalTotal = p.GoalsScored + p.GoalsConceded

	if p.TotalMatches > 0 {
		p.FreqAnyGoal = float64(p.MatchesWithAnyGoal) / float64(p.TotalMatches)
		p.AvgGoalsFullMatch = float64(totalGoals) / float64(p.TotalMatches)
		p.AvgGoalsFirstHalf = float64(firstHalfGoals) / float64(p.TotalMatches)
		p.AvgGoalsSecondHalf = float64(secondHalfGoals) / float64(p.TotalMatches)
	}

	p.AvgMinuteScored = mean(scoredMinutes)
	p.StderrMinuteScored = sampleStderr(scoredMinutes)
	p.AvgMinuteConceded = mean(concededMinutes)
	p.StderrMinuteConceded = sampleStderr(concededMinutes)
	p.AvgMinuteAny = mean(pooledMinutes)
	p.StderrMinuteAny = sampleStderr(pooledMinutes)
	p.SpreadLowMinute, p.SpreadHighMinute = floorQuartiles(pooledMinutes)

	p.RecurrenceLast5 = RecurrenceLastN(hadGoal, RecencyWindow)
	p.Confidence = Classify(p.FreqAnyGoal, p.TotalMatches, p.RecurrenceLast5)

	return p
}

func filterTeamSide(matches []models.HistoricalMatch, normalizedTeam string, side models.Side) []models.HistoricalMatch {
	var out []models.HistoricalMatch
	for _, m := range matches {
		if m.Side != side {
			continue
		}
		if models.NormalizeTeam(m.Team) != normalizedTeam {
			continue
		}
		out = append(out, m)
	}
	return out
}

// dedupeByMatchID keeps the last row seen per match id. Both home and away
// ingestion rows can reference the same physical match; within one
// (team, side) slice a duplicate id means a re-ingested, superseding row.
func dedupeByMatchID(matches []models.HistoricalMatch) []models.HistoricalMatch {
	lastIdx := make(map[string]int, len(matches))
	for i, m := range matches {
		lastIdx[m.MatchID] = i
	}
	out := make([]models.HistoricalMatch, 0, len(lastIdx))
	for i, m := range matches {
		if lastIdx[m.MatchID] == i {
			out = append(out, m)
		}
	}
	return out
}

func filterMinutes(minutes []int, def interval.Definition) []int {
	var out []int
	for _, m := range minutes {
		if def.Contains(m) {
			out = append(out, m)
		}
	}
	return out
}
