package models

import "time"

// IntervalPrediction is the externally visible result for one side of a match.
type IntervalPrediction struct {
	Team         string     `json:"team"`
	Side         Side       `json:"side"`
	IntervalName string     `json:"interval_name"`
	Active       bool       `json:"active"`

	Probability float64    `json:"probability"`
	Confidence  Confidence `json:"confidence"`

	// Historical components the probability was derived from.
	HistFrequency   float64  `json:"hist_frequency"`
	RecurrenceLast5 *float64 `json:"recurrence_last_5,omitempty"`
	SampleSize      int      `json:"sample_size"`

	// Live-derived adjustment applied on top of the historical component.
	LiveMultiplier float64 `json:"live_multiplier"`
	LiveAdjustment float64 `json:"live_adjustment"`

	// Narrative fields: typical goal minute and its spread.
	AvgMinute        float64 `json:"avg_minute"`
	SpreadLowMinute  int     `json:"spread_low_minute"`
	SpreadHighMinute int     `json:"spread_high_minute"`

	Reason string `json:"reason"`
}

// MatchPrediction bundles both sides plus the combined at-least-one-goal
// probability for one snapshot of one match.
type MatchPrediction struct {
	HomeTeam     string `json:"home_team"`
	AwayTeam     string `json:"away_team"`
	Country      string `json:"country"`
	League       string `json:"league"`
	Minute       int    `json:"minute"`
	IntervalName string `json:"interval_name"` // active interval, or the next one
	Active       bool   `json:"active"`

	Home IntervalPrediction `json:"home"`
	Away IntervalPrediction `json:"away"`

	// P(at least one goal by either team), independence assumption.
	Combined float64 `json:"combined"`
	Reason   string  `json:"reason"`

	CalculatedAt time.Time `json:"calculated_at"`
}
