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

// Ensure PostgresPatternStorage implements PatternStorage
var _ PatternStorage = (*PostgresPatternStorage)(nil)

// PostgresPatternStorage stores IntervalPattern rows in PostgreSQL.
// One row per (country, league, team, side, interval_name); the aggregation
// batch replaces rows wholesale via upsert.
type PostgresPatternStorage struct {
	db *sql.DB
}

// NewPostgresPatternStorage creates a new PostgreSQL storage for patterns
func NewPostgresPatternStorage(cfg *config.PostgresConfig) (*PostgresPatternStorage, error) {
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

	storage := &PostgresPatternStorage{db: db}

	if err := storage.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL pattern storage initialized")
	return storage, nil
}

func (s *PostgresPatternStorage) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS team_interval_patterns (
		id SERIAL PRIMARY KEY,
		country VARCHAR(100) NOT NULL,
		league VARCHAR(200) NOT NULL,
		team VARCHAR(200) NOT NULL,
		side VARCHAR(10) NOT NULL,
		interval_name VARCHAR(20) NOT NULL,
		total_matches INTEGER NOT NULL,
		goals_scored INTEGER NOT NULL,
		goals_conceded INTEGER NOT NULL,
		any_goal_total INTEGER NOT NULL,
		matches_with_scored INTEGER NOT NULL,
		matches_with_conceded INTEGER NOT NULL,
		matches_with_any_goal INTEGER NOT NULL,
		freq_any_goal DECIMAL(6, 4) NOT NULL,
		avg_minute_scored DECIMAL(8, 4) NOT NULL,
		stderr_minute_scored DECIMAL(8, 4) NOT NULL,
		avg_minute_conceded DECIMAL(8, 4) NOT NULL,
		stderr_minute_conceded DECIMAL(8, 4) NOT NULL,
		avg_minute_any DECIMAL(8, 4) NOT NULL,
		stderr_minute_any DECIMAL(8, 4) NOT NULL,
		spread_low_minute INTEGER NOT NULL,
		spread_high_minute INTEGER NOT NULL,
		recurrence_last_5 DECIMAL(6, 4),
		confidence VARCHAR(20) NOT NULL,
		avg_goals_full_match DECIMAL(8, 4) NOT NULL,
		avg_goals_first_half DECIMAL(8, 4) NOT NULL,
		avg_goals_second_half DECIMAL(8, 4) NOT NULL,
		computed_at TIMESTAMP NOT NULL,
		UNIQUE(country, league, team, side, interval_name)
	);

	CREATE INDEX IF NOT EXISTS idx_patterns_team ON team_interval_patterns(team);
	CREATE INDEX IF NOT EXISTS idx_patterns_league ON team_interval_patterns(country, league);
	`

	_, err := s.db.ExecContext(ctx, query)
	return err
}

// ReplacePattern upserts the whole row. The ON CONFLICT update is atomic per
// row, so readers see either the old or the new complete aggregate.
func (s *PostgresPatternStorage) ReplacePattern(ctx context.Context, p *models.IntervalPattern) error {
	query := `
	INSERT INTO team_interval_patterns (
		country, league, team, side, interval_name,
		total_matches, goals_scored, goals_conceded, any_goal_total,
		matches_with_scored, matches_with_conceded, matches_with_any_goal,
		freq_any_goal,
		avg_minute_scored, stderr_minute_scored, avg_minute_conceded, stderr_minute_conceded,
		avg_minute_any, stderr_minute_any,
		spread_low_minute, spread_high_minute,
		recurrence_last_5, confidence,
		avg_goals_full_match, avg_goals_first_half, avg_goals_second_half,
		computed_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
	ON CONFLICT (country, league, team, side, interval_name) DO UPDATE SET
		total_matches = EXCLUDED.total_matches,
		goals_scored = EXCLUDED.goals_scored,
		goals_conceded = EXCLUDED.goals_conceded,
		any_goal_total = EXCLUDED.any_goal_total,
		matches_with_scored = EXCLUDED.matches_with_scored,
		matches_with_conceded = EXCLUDED.matches_with_conceded,
		matches_with_any_goal = EXCLUDED.matches_with_any_goal,
		freq_any_goal = EXCLUDED.freq_any_goal,
		avg_minute_scored = EXCLUDED.avg_minute_scored,
		stderr_minute_scored = EXCLUDED.stderr_minute_scored,
		avg_minute_conceded = EXCLUDED.avg_minute_conceded,
		stderr_minute_conceded = EXCLUDED.stderr_minute_conceded,
		avg_minute_any = EXCLUDED.avg_minute_any,
		stderr_minute_any = EXCLUDED.stderr_minute_any,
		spread_low_minute = EXCLUDED.spread_low_minute,
		spread_high_minute = EXCLUDED.spread_high_minute,
		recurrence_last_5 = EXCLUDED.recurrence_last_5,
		confidence = EXCLUDED.confidence,
		avg_goals_full_match = EXCLUDED.avg_goals_full_match,
		avg_goals_first_half = EXCLUDED.avg_goals_first_half,
		avg_goals_second_half = EXCLUDED.avg_goals_second_half,
		computed_at = EXCLUDED.computed_at
	`

	var recurrence sql.NullFloat64
	if p.RecurrenceLast5 != nil {
		recurrence = sql.NullFloat64{Float64: *p.RecurrenceLast5, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		p.Country, p.League, p.Team, string(p.Side), p.IntervalName,
		p.TotalMatches, p.GoalsScored, p.GoalsConceded, p.AnyGoalTotal,
		p.MatchesWithScored, p.MatchesWithConceded, p.MatchesWithAnyGoal,
		p.FreqAnyGoal,
		p.AvgMinuteScored, p.StderrMinuteScored, p.AvgMinuteConceded, p.StderrMinuteConceded,
		p.AvgMinuteAny, p.StderrMinuteAny,
		p.SpreadLowMinute, p.SpreadHighMinute,
		recurrence, string(p.Confidence),
		p.AvgGoalsFullMatch, p.AvgGoalsFirstHalf, p.AvgGoalsSecondHalf,
		p.ComputedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to replace pattern %s/%s/%s: %w", p.Team, p.Side, p.IntervalName, err)
	}
	return nil
}

// GetPattern retrieves the aggregate for a key, or ErrNotFound.
func (s *PostgresPatternStorage) GetPattern(ctx context.Context, key PatternKey) (*models.IntervalPattern, error) {
	query := `
	SELECT country, league, team, side, interval_name,
		total_matches, goals_scored, goals_conceded, any_goal_total,
		matches_with_scored, matches_with_conceded, matches_with_any_goal,
		freq_any_goal,
		avg_minute_scored, stderr_minute_scored, avg_minute_conceded, stderr_minute_conceded,
		avg_minute_any, stderr_minute_any,
		spread_low_minute, spread_high_minute,
		recurrence_last_5, confidence,
		avg_goals_full_match, avg_goals_first_half, avg_goals_second_half,
		computed_at
	FROM team_interval_patterns
	WHERE country = $1 AND league = $2 AND team = $3 AND side = $4 AND interval_name = $5
	`

	var (
		p          models.IntervalPattern
		side       string
		confidence string
		recurrence sql.NullFloat64
	)

	err := s.db.QueryRowContext(ctx, query, key.Country, key.League, key.Team, string(key.Side), key.IntervalName).Scan(
		&p.Country, &p.League, &p.Team, &side, &p.IntervalName,
		&p.TotalMatches, &p.GoalsScored, &p.GoalsConceded, &p.AnyGoalTotal,
		&p.MatchesWithScored, &p.MatchesWithConceded, &p.MatchesWithAnyGoal,
		&p.FreqAnyGoal,
		&p.AvgMinuteScored, &p.StderrMinuteScored, &p.AvgMinuteConceded, &p.StderrMinuteConceded,
		&p.AvgMinuteAny, &p.StderrMinuteAny,
		&p.SpreadLowMinute, &p.SpreadHighMinute,
		&recurrence, &confidence,
		&p.AvgGoalsFullMatch, &p.AvgGoalsFirstHalf, &p.AvgGoalsSecondHalf,
		&p.ComputedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pattern %s: %w", key, err)
	}

	p.Side = models.Side(side)
	p.Confidence = models.Confidence(confidence)
	if recurrence.Valid {
		r := recurrence.Float64
		p.RecurrenceLast5 = &r
	}

	return &p, nil
}

func (s *PostgresPatternStorage) Close() error {
	return s.db.Close()
}
