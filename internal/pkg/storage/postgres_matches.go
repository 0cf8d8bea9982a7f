package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/ostapenko/lategoal/internal/pkg/config"
	"github.com/ostapenko/lategoal/internal/pkg/models"
)

// Ensure PostgresMatchStorage implements MatchStorage
var _ MatchStorage = (*PostgresMatchStorage)(nil)

// PostgresMatchStorage stores historical match rows in PostgreSQL.
type PostgresMatchStorage struct {
	db *sql.DB
}

// NewPostgresMatchStorage creates a new PostgreSQL storage for historical matches
func NewPostgresMatchStorage(cfg *config.PostgresConfig) (*PostgresMatchStorage, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	storage := &PostgresMatchStorage{db: db}

	if err := storage.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL match storage initialized")
	return storage, nil
}

func (s *PostgresMatchStorage) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS historical_matches (
		id SERIAL PRIMARY KEY,
		match_id VARCHAR(200) NOT NULL,
		country VARCHAR(100) NOT NULL,
		league VARCHAR(200) NOT NULL,
		team VARCHAR(200) NOT NULL,
		opponent VARCHAR(200) NOT NULL,
		side VARCHAR(10) NOT NULL,
		match_date TIMESTAMP NOT NULL,
		goals_for TEXT NOT NULL DEFAULT '',
		goals_against TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		UNIQUE(match_id, team, side)
	);

	CREATE INDEX IF NOT EXISTS idx_matches_team_side ON historical_matches(team, side);
	CREATE INDEX IF NOT EXISTS idx_matches_league ON historical_matches(country, league);
	CREATE INDEX IF NOT EXISTS idx_matches_date ON historical_matches(match_date DESC);
	`

	_, err := s.db.ExecContext(ctx, query)
	return err
}

// StoreMatch inserts one match row; re-ingesting the same (match_id, team,
// side) supersedes the previous row rather than merging with it.
func (s *PostgresMatchStorage) StoreMatch(ctx context.Context, m *models.HistoricalMatch) error {
	query := `
	INSERT INTO historical_matches (
		match_id, country, league, team, opponent, side, match_date, goals_for, goals_against
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (match_id, team, side) DO UPDATE SET
		country = EXCLUDED.country,
		league = EXCLUDED.league,
		opponent = EXCLUDED.opponent,
		match_date = EXCLUDED.match_date,
		goals_for = EXCLUDED.goals_for,
		goals_against = EXCLUDED.goals_against
	`

	_, err := s.db.ExecContext(ctx, query,
		m.MatchID, m.Country, m.League, models.NormalizeTeam(m.Team), m.Opponent, string(m.Side),
		m.Date, models.JoinGoalMinutes(m.GoalsFor), models.JoinGoalMinutes(m.GoalsAgainst),
	)
	if err != nil {
		return fmt.Errorf("failed to store match %s: %w", m.MatchID, err)
	}
	return nil
}

// GetTeamMatches returns all rows for one (country, league, team, side).
func (s *PostgresMatchStorage) GetTeamMatches(ctx context.Context, tc TeamContext) ([]models.HistoricalMatch, error) {
	query := `
	SELECT match_id, country, league, team, opponent, side, match_date, goals_for, goals_against
	FROM historical_matches
	WHERE country = $1 AND league = $2 AND team = $3 AND side = $4
	`

	rows, err := s.db.QueryContext(ctx, query, tc.Country, tc.League, models.NormalizeTeam(tc.Team), string(tc.Side))
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for %s/%s: %w", tc.Team, tc.Side, err)
	}
	defer rows.Close()

	var matches []models.HistoricalMatch
	for rows.Next() {
		var (
			m            models.HistoricalMatch
			side         string
			goalsFor     string
			goalsAgainst string
		)
		if err := rows.Scan(&m.MatchID, &m.Country, &m.League, &m.Team, &m.Opponent, &side, &m.Date, &goalsFor, &goalsAgainst); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		m.Side = models.Side(side)
		// Best-effort re-parse; malformed stored text degrades to empty lists.
		m.GoalsFor = models.ParseGoalMinutes(goalsFor)
		m.GoalsAgainst = models.ParseGoalMinutes(goalsAgainst)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read match rows: %w", err)
	}

	return matches, nil
}

// ListTeamContexts returns every distinct (country, league, team, side).
func (s *PostgresMatchStorage) ListTeamContexts(ctx context.Context) ([]TeamContext, error) {
	query := `
	SELECT DISTINCT country, league, team, side
	FROM historical_matches
	ORDER BY country, league, team, side
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list team contexts: %w", err)
	}
	defer rows.Close()

	var contexts []TeamContext
	for rows.Next() {
		var (
			tc   TeamContext
			side string
		)
		if err := rows.Scan(&tc.Country, &tc.League, &tc.Team, &side); err != nil {
			return nil, fmt.Errorf("failed to scan team context: %w", err)
		}
		tc.Side = models.Side(side)
		contexts = append(contexts, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read team contexts: %w", err)
	}

	return contexts, nil
}

func (s *PostgresMatchStorage) Close() error {
	return s.db.Close()
}
