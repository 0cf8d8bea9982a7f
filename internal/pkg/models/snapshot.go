package models

import "time"

// StatPair is one live stat observed for both sides.
type StatPair struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// Total returns the combined value for both sides.
func (p StatPair) Total() float64 { return p.Home + p.Away }

// ForSide returns the value for the given side.
func (p StatPair) ForSide(side Side) float64 {
	if side == SideAway {
		return p.Away
	}
	return p.Home
}

// LiveSnapshot is one real-time observation of an in-progress match.
//
// All stat pairs are optional: a nil pointer means the feed did not report the
// stat, which downstream code must treat as neutral/missing, never as zero.
type LiveSnapshot struct {
	Country   string    `json:"country"`
	League    string    `json:"league"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	Minute    int       `json:"minute"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`

	Possession       *StatPair `json:"possession,omitempty"` // percent per side
	Shots            *StatPair `json:"shots,omitempty"`
	ShotsOnTarget    *StatPair `json:"shots_on_target,omitempty"`
	Attacks          *StatPair `json:"attacks,omitempty"`
	DangerousAttacks *StatPair `json:"dangerous_attacks,omitempty"`
	Corners          *StatPair `json:"corners,omitempty"`
	RedCards         *StatPair `json:"red_cards,omitempty"`

	ObservedAt time.Time `json:"observed_at"`
}

// TotalGoals returns the current total score.
func (s *LiveSnapshot) TotalGoals() int { return s.HomeScore + s.AwayScore }

// GoalDiff returns home score minus away score.
func (s *LiveSnapshot) GoalDiff() int { return s.HomeScore - s.AwayScore }

// TeamForSide returns the raw team name playing the given side.
func (s *LiveSnapshot) TeamForSide(side Side) string {
	if side == SideAway {
		return s.AwayTeam
	}
	return s.HomeTeam
}
