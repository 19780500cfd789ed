package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Alislimm/fantasy-ms/internal/domain/lineup"
	qb "github.com/Alislimm/fantasy-ms/internal/platform/querybuilder"
)

type LineupRepository struct {
	db *sqlx.DB
}

var lineupSelectColumns = []string{
	"id",
	"team_id",
	"game_week_id",
	"created_at",
	"updated_at",
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) GetByTeamAndGameWeek(ctx context.Context, teamID, gameWeekID string) (lineup.Lineup, bool, error) {
	query, args, err := qb.Select(lineupSelectColumns...).From("lineups").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("game_week_id", gameWeekID),
		).
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, fmt.Errorf("get lineup: %w", err)
	}

	slots, err := r.listSlots(ctx, []string{row.ID})
	if err != nil {
		return lineup.Lineup{}, false, err
	}

	return mapLineupRow(row, slots[row.ID]), true, nil
}

func (r *LineupRepository) ListByGameWeek(ctx context.Context, gameWeekID string) ([]lineup.Lineup, error) {
	query, args, err := qb.Select(lineupSelectColumns...).From("lineups").
		Where(qb.Eq("game_week_id", gameWeekID)).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select lineups query: %w", err)
	}

	var rows []lineupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select lineups by gameweek: %w", err)
	}

	lineupIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		lineupIDs = append(lineupIDs, row.ID)
	}
	slots, err := r.listSlots(ctx, lineupIDs)
	if err != nil {
		return nil, err
	}

	out := make([]lineup.Lineup, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapLineupRow(row, slots[row.ID]))
	}

	return out, nil
}

// Upsert replaces the lineup row and its whole slot set in one transaction.
func (r *LineupRepository) Upsert(ctx context.Context, l lineup.Lineup) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for lineup upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsertLineupQuery = `
INSERT INTO lineups (id, team_id, game_week_id, created_at, updated_at)
VALUES (:id, :team_id, :game_week_id, :created_at, :updated_at)
ON CONFLICT (team_id, game_week_id)
DO UPDATE SET
    updated_at = EXCLUDED.updated_at
RETURNING id`

	upsertSQL, upsertArgs, err := sqlx.Named(upsertLineupQuery, map[string]any{
		"id":           l.ID,
		"team_id":      l.TeamID,
		"game_week_id": l.GameWeekID,
		"created_at":   l.CreatedAt,
		"updated_at":   l.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("bind upsert lineup query: %w", err)
	}
	upsertSQL = tx.Rebind(upsertSQL)

	var lineupID string
	if err := tx.GetContext(ctx, &lineupID, upsertSQL, upsertArgs...); err != nil {
		return fmt.Errorf("upsert lineup: %w", err)
	}

	const clearSlotsQuery = `DELETE FROM lineup_slots WHERE lineup_id = $1`
	if _, err := tx.ExecContext(ctx, clearSlotsQuery, lineupID); err != nil {
		return fmt.Errorf("clear lineup slots: %w", err)
	}

	const insertSlotQuery = `
INSERT INTO lineup_slots (lineup_id, player_id, is_starter, slot_position)
VALUES (:lineup_id, :player_id, :is_starter, :slot_position)`
	for _, slot := range l.Slots {
		slotSQL, slotArgs, err := sqlx.Named(insertSlotQuery, map[string]any{
			"lineup_id":     lineupID,
			"player_id":     slot.PlayerID,
			"is_starter":    slot.Starter,
			"slot_position": slot.SlotPosition,
		})
		if err != nil {
			return fmt.Errorf("bind insert lineup slot player=%s query: %w", slot.PlayerID, err)
		}
		slotSQL = tx.Rebind(slotSQL)
		if _, err := tx.ExecContext(ctx, slotSQL, slotArgs...); err != nil {
			return fmt.Errorf("insert lineup slot player=%s: %w", slot.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit lineup upsert tx: %w", err)
	}

	return nil
}

func (r *LineupRepository) listSlots(ctx context.Context, lineupIDs []string) (map[string][]lineup.Slot, error) {
	if len(lineupIDs) == 0 {
		return map[string][]lineup.Slot{}, nil
	}

	query, args, err := qb.Select("lineup_id", "player_id", "is_starter", "slot_position").
		From("lineup_slots").
		Where(qb.In("lineup_id", stringSliceToAny(lineupIDs))).
		OrderBy("lineup_id", "is_starter DESC", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select lineup slots query: %w", err)
	}

	var rows []lineupSlotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select lineup slots: %w", err)
	}

	out := make(map[string][]lineup.Slot, len(lineupIDs))
	for _, row := range rows {
		out[row.LineupID] = append(out[row.LineupID], lineup.Slot{
			PlayerID:     row.PlayerID,
			Starter:      row.IsStarter,
			SlotPosition: row.SlotPosition,
		})
	}

	return out, nil
}

func mapLineupRow(row lineupTableModel, slots []lineup.Slot) lineup.Lineup {
	return lineup.Lineup{
		ID:         row.ID,
		TeamID:     row.TeamID,
		GameWeekID: row.GameWeekID,
		Slots:      slots,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
