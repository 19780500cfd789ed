package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Alislimm/fantasy-ms/internal/domain/gameweek"
	qb "github.com/Alislimm/fantasy-ms/internal/platform/querybuilder"
)

type GameWeekRepository struct {
	db *sqlx.DB
}

var gameWeekSelectColumns = []string{
	"id",
	"number",
	"status",
	"start_date",
	"end_date",
	"created_at",
	"updated_at",
}

func NewGameWeekRepository(db *sqlx.DB) *GameWeekRepository {
	return &GameWeekRepository{db: db}
}

func (r *GameWeekRepository) GetByID(ctx context.Context, id string) (gameweek.GameWeek, bool, error) {
	query, args, err := qb.Select(gameWeekSelectColumns...).From("game_weeks").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return gameweek.GameWeek{}, false, fmt.Errorf("build get gameweek query: %w", err)
	}

	var row gameWeekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameweek.GameWeek{}, false, nil
		}
		return gameweek.GameWeek{}, false, fmt.Errorf("get gameweek: %w", err)
	}

	return mapGameWeekRow(row), true, nil
}

func (r *GameWeekRepository) GetByNumber(ctx context.Context, number int) (gameweek.GameWeek, bool, error) {
	query, args, err := qb.Select(gameWeekSelectColumns...).From("game_weeks").
		Where(qb.Eq("number", number)).
		ToSQL()
	if err != nil {
		return gameweek.GameWeek{}, false, fmt.Errorf("build get gameweek by number query: %w", err)
	}

	var row gameWeekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameweek.GameWeek{}, false, nil
		}
		return gameweek.GameWeek{}, false, fmt.Errorf("get gameweek by number: %w", err)
	}

	return mapGameWeekRow(row), true, nil
}

func (r *GameWeekRepository) List(ctx context.Context) ([]gameweek.GameWeek, error) {
	query, args, err := qb.Select(gameWeekSelectColumns...).From("game_weeks").
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select gameweeks query: %w", err)
	}

	var rows []gameWeekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select gameweeks: %w", err)
	}

	out := make([]gameweek.GameWeek, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapGameWeekRow(row))
	}

	return out, nil
}

func (r *GameWeekRepository) Create(ctx context.Context, gw gameweek.GameWeek) error {
	query, args, err := qb.InsertInto("game_weeks").
		Columns("id", "number", "status", "start_date", "end_date").
		Values(gw.ID, gw.Number, string(gw.Status), gw.StartDate, gw.EndDate).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert gameweek query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert gameweek number=%d: %w", gw.Number, err)
	}

	return nil
}

func (r *GameWeekRepository) UpdateStatus(ctx context.Context, id string, status gameweek.Status) error {
	query, args, err := qb.Update("game_weeks").
		Set("status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update gameweek status query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update gameweek status id=%s: %w", id, err)
	}

	return nil
}

func mapGameWeekRow(row gameWeekTableModel) gameweek.GameWeek {
	return gameweek.GameWeek{
		ID:        row.ID,
		Number:    row.Number,
		Status:    gameweek.Status(row.Status),
		StartDate: row.StartDate,
		EndDate:   row.EndDate,
	}
}
