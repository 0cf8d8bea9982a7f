package models

import "time"

// Confidence is the discrete trust tier attached to a pattern's frequency.
type Confidence string

const (
	ConfidenceInsufficientData Confidence = "INSUFFICIENT_DATA"
	ConfidenceWeak             Confidence = "WEAK"
	ConfidenceMedium           Confidence = "MEDIUM"
	ConfidenceGood             Confidence = "GOOD"
	ConfidenceVeryGood         Confidence = "VERY_GOOD"
	ConfidenceExcellent        Confidence = "EXCELLENT"
)

var confidenceRank = map[Confidence]int{
	ConfidenceInsufficientData: 0,
	ConfidenceWeak:             1,
	ConfidenceMedium:           2,
	ConfidenceGood:             3,
	ConfidenceVeryGood:         4,
	ConfidenceExcellent:        5,
}

// Rank returns the tier's position in the ordering
// INSUFFICIENT_DATA < WEAK < MEDIUM < GOOD < VERY_GOOD < EXCELLENT.
func (c Confidence) Rank() int { return confidenceRank[c] }

// IntervalPattern is the historical aggregate for one team in one home/away
// context and one named interval. Rebuilt wholesale by the aggregation batch
// job and replaced, never merged.
type IntervalPattern struct {
	Country      string `json:"country"`
	League       string `json:"league"`
	Team         string `json:"team"` // normalized team name
	Side         Side   `json:"side"`
	IntervalName string `json:"interval_name"`

	TotalMatches        int `json:"total_matches"`
	GoalsScored         int `json:"goals_scored"`
	GoalsConceded       int `json:"goals_conceded"`
	AnyGoalTotal        int `json:"any_goal_total"` // scored + conceded goals inside the interval
	MatchesWithScored   int `json:"matches_with_scored"`
	MatchesWithConceded int `json:"matches_with_conceded"`
	MatchesWithAnyGoal  int `json:"matches_with_any_goal"` // union over matches, never double counted

	FreqAnyGoal float64 `json:"freq_any_goal"`

	AvgMinuteScored      float64 `json:"avg_minute_scored"`
	StderrMinuteScored   float64 `json:"stderr_minute_scored"`
	AvgMinuteConceded    float64 `json:"avg_minute_conceded"`
	StderrMinuteConceded float64 `json:"stderr_minute_conceded"`

	// Pooled (scored ∪ conceded) in-interval minutes.
	AvgMinuteAny    float64 `json:"avg_minute_any"`
	StderrMinuteAny float64 `json:"stderr_minute_any"`

	// Floor-indexed order statistics over the pooled (scored ∪ conceded)
	// in-interval minutes; secondary spread indicator.
	SpreadLowMinute  int `json:"spread_low_minute"`
	SpreadHighMinute int `json:"spread_high_minute"`

	// Fraction of the most recent 5 matches with ≥1 goal in the interval;
	// nil when fewer than 5 matches exist.
	RecurrenceLast5 *float64 `json:"recurrence_last_5,omitempty"`

	Confidence Confidence `json:"confidence"`

	// Saturation baselines: average total goals (scored + conceded) per match.
	AvgGoalsFullMatch  float64 `json:"avg_goals_full_match"`
	AvgGoalsFirstHalf  float64 `json:"avg_goals_first_half"`
	AvgGoalsSecondHalf float64 `json:"avg_goals_second_half"`

	ComputedAt time.Time `json:"computed_at"`
}
