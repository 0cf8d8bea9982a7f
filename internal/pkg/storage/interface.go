package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ostapenko/lategoal/internal/pkg/models"
)

// ErrNotFound is returned when no pattern row exists for a key. Callers treat
// it as DataAbsent and degrade to the floor probability, never as a failure.
var ErrNotFound = errors.New("storage: not found")

// PatternKey identifies one aggregate row. Team must already be normalized
// (models.NormalizeTeam).
type PatternKey struct {
	Country      string
	League       string
	Team         string
	Side         models.Side
	IntervalName string
}

func (k PatternKey) String() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s", k.Country, k.League, k.Team, k.Side, k.IntervalName)
}

// TeamContext is one aggregation unit source: a team in one home/away context.
type TeamContext struct {
	Country string
	League  string
	Team    string
	Side    models.Side
}

// PatternReader is the read side used at prediction time.
type PatternReader interface {
	// GetPattern returns the aggregate for a key, or ErrNotFound.
	GetPattern(ctx context.Context, key PatternKey) (*models.IntervalPattern, error)
}

// PatternStorage persists the per-team-interval aggregates.
// ReplacePattern has upsert-by-replace semantics: the whole row is swapped
// atomically, never merged, so concurrent readers see either the old or the
// new complete row.
type PatternStorage interface {
	PatternReader

	ReplacePattern(ctx context.Context, p *models.IntervalPattern) error

	// Close closes the database connection
	Close() error
}

// MatchStorage persists historical match rows (one per match id, team, side).
// Storing an existing (match id, team, side) supersedes the previous row.
type MatchStorage interface {
	StoreMatch(ctx context.Context, m *models.HistoricalMatch) error

	// GetTeamMatches returns all rows for one team context, any order; the
	// aggregator sorts by date internally.
	GetTeamMatches(ctx context.Context, tc TeamContext) ([]models.HistoricalMatch, error)

	// ListTeamContexts returns every distinct (country, league, team, side)
	// present in the historical set.
	ListTeamContexts(ctx context.Context) ([]TeamContext, error)

	// Close closes the database connection
	Close() error
}
