package models

import "time"

// Side is the home/away context a pattern or match row is keyed by.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Sides lists both contexts in a stable order for aggregation units.
var Sides = []Side{SideHome, SideAway}

// HistoricalMatch represents one played match from one team's perspective.
// Created during historical ingestion and immutable afterwards; re-ingesting
// the same (match id, team, side) supersedes the previous row.
type HistoricalMatch struct {
	MatchID  string    `json:"match_id"`
	Country  string    `json:"country"`
	League   string    `json:"league"`
	Team     string    `json:"team"`
	Opponent string    `json:"opponent"`
	Side     Side      `json:"side"`
	Date     time.Time `json:"date"`

	// Goal minutes from this team's perspective, already normalized
	// (strictly positive, sorted; see ParseGoalMinutes).
	GoalsFor     []int `json:"goals_for"`
	GoalsAgainst []int `json:"goals_against"`
}
