package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Alislimm/fantasy-ms/internal/domain/fixture"
	qb "github.com/Alislimm/fantasy-ms/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

var fixtureSelectColumns = []string{
	"id",
	"game_week_id",
	"home_team_id",
	"away_team_id",
	"kickoff_at",
	"venue",
	"status",
	"created_at",
	"updated_at",
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) GetByID(ctx context.Context, id string) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select(fixtureSelectColumns...).From("fixtures").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build get fixture query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("get fixture: %w", err)
	}

	return mapFixtureRow(row), true, nil
}

func (r *FixtureRepository) ListByGameWeek(ctx context.Context, gameWeekID string) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureSelectColumns...).From("fixtures").
		Where(qb.Eq("game_week_id", gameWeekID)).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures by gameweek: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapFixtureRow(row))
	}

	return out, nil
}

func (r *FixtureRepository) Create(ctx context.Context, f fixture.Fixture) error {
	query, args, err := qb.InsertInto("fixtures").
		Columns("id", "game_week_id", "home_team_id", "away_team_id", "kickoff_at", "venue", "status").
		Values(f.ID, f.GameWeekID, f.HomeTeamID, f.AwayTeamID, f.KickoffAt, f.Venue, string(f.Status)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert fixture query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert fixture id=%s: %w", f.ID, err)
	}

	return nil
}

func (r *FixtureRepository) UpdateStatus(ctx context.Context, id string, status fixture.Status) error {
	query, args, err := qb.Update("fixtures").
		Set("status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update fixture status query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update fixture status id=%s: %w", id, err)
	}

	return nil
}

func mapFixtureRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:         row.ID,
		GameWeekID: row.GameWeekID,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		KickoffAt:  row.KickoffAt,
		Venue:      row.Venue,
		Status:     fixture.Status(row.Status),
	}
}
