package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Alislimm/fantasy-ms/internal/domain/scoring"
	qb "github.com/Alislimm/fantasy-ms/internal/platform/querybuilder"
)

type RuleRepository struct {
	db *sqlx.DB
}

func NewRuleRepository(db *sqlx.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

func (r *RuleRepository) List(ctx context.Context) ([]scoring.Rule, error) {
	query, args, err := qb.Select("metric", "points_per_unit").From("scoring_rules").
		OrderBy("metric").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select scoring rules query: %w", err)
	}

	var rows []scoringRuleTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select scoring rules: %w", err)
	}

	out := make([]scoring.Rule, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.Rule{
			Metric:        row.Metric,
			PointsPerUnit: row.PointsPerUnit,
		})
	}

	return out, nil
}

type PerformanceRepository struct {
	db *sqlx.DB
}

var performanceSelectColumns = []string{
	"id",
	"fixture_id",
	"player_id",
	"points",
	"rebounds",
	"assists",
	"steals",
	"blocks",
	"turnovers",
	"three_made",
	"fantasy_points",
	"recorded_at",
}

func NewPerformanceRepository(db *sqlx.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

func (r *PerformanceRepository) Create(ctx context.Context, p scoring.Performance) error {
	query, args, err := qb.InsertInto("player_performances").
		Columns(performanceSelectColumns...).
		Values(p.ID, p.FixtureID, p.PlayerID, p.Points, p.Rebounds, p.Assists, p.Steals, p.Blocks, p.Turnovers, p.ThreeMade, p.FantasyPoints, p.RecordedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert performance query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert performance fixture=%s player=%s: %w", p.FixtureID, p.PlayerID, err)
	}

	return nil
}

func (r *PerformanceRepository) ListByFixtures(ctx context.Context, fixtureIDs []string) ([]scoring.Performance, error) {
	if len(fixtureIDs) == 0 {
		return []scoring.Performance{}, nil
	}

	query, args, err := qb.Select(performanceSelectColumns...).From("player_performances").
		Where(qb.In("fixture_id", stringSliceToAny(fixtureIDs))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select performances by fixtures query: %w", err)
	}

	var rows []performanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select performances by fixtures: %w", err)
	}

	out := make([]scoring.Performance, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapPerformanceRow(row))
	}

	return out, nil
}

func (r *PerformanceRepository) ListRecentByPlayer(ctx context.Context, playerID string, limit int) ([]scoring.Performance, error) {
	query, args, err := qb.Select(performanceSelectColumns...).From("player_performances").
		Where(qb.Eq("player_id", playerID)).
		OrderBy("recorded_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select recent performances query: %w", err)
	}

	var rows []performanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select recent performances: %w", err)
	}

	out := make([]scoring.Performance, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapPerformanceRow(row))
	}

	return out, nil
}

func (r *PerformanceRepository) GetByFixtureAndPlayer(ctx context.Context, fixtureID, playerID string) (scoring.Performance, bool, error) {
	query, args, err := qb.Select(performanceSelectColumns...).From("player_performances").
		Where(
			qb.Eq("fixture_id", fixtureID),
			qb.Eq("player_id", playerID),
		).
		ToSQL()
	if err != nil {
		return scoring.Performance{}, false, fmt.Errorf("build get performance query: %w", err)
	}

	var row performanceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.Performance{}, false, nil
		}
		return scoring.Performance{}, false, fmt.Errorf("get performance: %w", err)
	}

	return mapPerformanceRow(row), true, nil
}

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) GetTeamGameWeekScore(ctx context.Context, teamID, gameWeekID string) (scoring.TeamGameWeekScore, bool, error) {
	query, args, err := qb.Select("team_id", "game_week_id", "points", "calculated_at").
		From("team_gameweek_scores").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("game_week_id", gameWeekID),
		).
		ToSQL()
	if err != nil {
		return scoring.TeamGameWeekScore{}, false, fmt.Errorf("build get team gameweek score query: %w", err)
	}

	var row teamGameWeekScoreTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.TeamGameWeekScore{}, false, nil
		}
		return scoring.TeamGameWeekScore{}, false, fmt.Errorf("get team gameweek score: %w", err)
	}

	return mapScoreRow(row), true, nil
}

func (r *ScoreRepository) UpsertTeamGameWeekScore(ctx context.Context, score scoring.TeamGameWeekScore) error {
	const upsertQuery = `
INSERT INTO team_gameweek_scores (team_id, game_week_id, points, calculated_at)
VALUES (:team_id, :game_week_id, :points, :calculated_at)
ON CONFLICT (team_id, game_week_id)
DO UPDATE SET
    points = EXCLUDED.points,
    calculated_at = EXCLUDED.calculated_at`

	query, args, err := sqlx.Named(upsertQuery, map[string]any{
		"team_id":       score.TeamID,
		"game_week_id":  score.GameWeekID,
		"points":        score.Points,
		"calculated_at": score.CalculatedAt,
	})
	if err != nil {
		return fmt.Errorf("bind upsert team gameweek score query: %w", err)
	}
	query = r.db.Rebind(query)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team gameweek score team=%s: %w", score.TeamID, err)
	}

	return nil
}

func (r *ScoreRepository) ListByGameWeek(ctx context.Context, gameWeekID string) ([]scoring.TeamGameWeekScore, error) {
	query, args, err := qb.Select("team_id", "game_week_id", "points", "calculated_at").
		From("team_gameweek_scores").
		Where(qb.Eq("game_week_id", gameWeekID)).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team gameweek scores query: %w", err)
	}

	var rows []teamGameWeekScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team gameweek scores: %w", err)
	}

	out := make([]scoring.TeamGameWeekScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapScoreRow(row))
	}

	return out, nil
}

func mapPerformanceRow(row performanceTableModel) scoring.Performance {
	return scoring.Performance{
		ID:            row.ID,
		FixtureID:     row.FixtureID,
		PlayerID:      row.PlayerID,
		Points:        row.Points,
		Rebounds:      row.Rebounds,
		Assists:       row.Assists,
		Steals:        row.Steals,
		Blocks:        row.Blocks,
		Turnovers:     row.Turnovers,
		ThreeMade:     row.ThreeMade,
		FantasyPoints: row.FantasyPoints,
		RecordedAt:    row.RecordedAt,
	}
}

func mapScoreRow(row teamGameWeekScoreTableModel) scoring.TeamGameWeekScore {
	return scoring.TeamGameWeekScore{
		TeamID:       row.TeamID,
		GameWeekID:   row.GameWeekID,
		Points:       row.Points,
		CalculatedAt: row.CalculatedAt,
	}
}
