package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Alislimm/fantasy-ms/internal/domain/fantasy"
	"github.com/Alislimm/fantasy-ms/internal/domain/transfer"
	qb "github.com/Alislimm/fantasy-ms/internal/platform/querybuilder"
)

// FantasyRepository owns the team aggregate tables: fantasy_teams,
// fantasy_team_players, transfers and transfer_penalties. Every write that
// spans more than one row runs in a single transaction guarded by the
// team's optimistic version.
type FantasyRepository struct {
	db *sqlx.DB
}

var fantasyTeamSelectColumns = []string{
	"id",
	"owner_id",
	"name",
	"budget",
	"total_points",
	"version",
	"created_at",
	"updated_at",
}

var fantasyTeamPlayerSelectColumns = []string{
	"id",
	"team_id",
	"player_id",
	"purchase_price",
	"is_active",
	"acquired_at",
	"released_at",
}

var transferSelectColumns = []string{
	"id",
	"team_id",
	"game_week_id",
	"player_out_id",
	"player_in_id",
	"price_difference",
	"created_at",
}

func NewFantasyRepository(db *sqlx.DB) *FantasyRepository {
	return &FantasyRepository{db: db}
}

func (r *FantasyRepository) GetByID(ctx context.Context, id string) (fantasy.Team, bool, error) {
	query, args, err := qb.Select(fantasyTeamSelectColumns...).From("fantasy_teams").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fantasy.Team{}, false, fmt.Errorf("build get fantasy team query: %w", err)
	}

	var row fantasyTeamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.Team{}, false, nil
		}
		return fantasy.Team{}, false, fmt.Errorf("get fantasy team: %w", err)
	}

	return mapFantasyTeamRow(row), true, nil
}

func (r *FantasyRepository) GetByOwner(ctx context.Context, ownerID string) (fantasy.Team, bool, error) {
	query, args, err := qb.Select(fantasyTeamSelectColumns...).From("fantasy_teams").
		Where(qb.Eq("owner_id", ownerID)).
		ToSQL()
	if err != nil {
		return fantasy.Team{}, false, fmt.Errorf("build get fantasy team by owner query: %w", err)
	}

	var row fantasyTeamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.Team{}, false, nil
		}
		return fantasy.Team{}, false, fmt.Errorf("get fantasy team by owner: %w", err)
	}

	return mapFantasyTeamRow(row), true, nil
}

func (r *FantasyRepository) List(ctx context.Context) ([]fantasy.Team, error) {
	query, args, err := qb.Select(fantasyTeamSelectColumns...).From("fantasy_teams").
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fantasy teams query: %w", err)
	}

	var rows []fantasyTeamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fantasy teams: %w", err)
	}

	out := make([]fantasy.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapFantasyTeamRow(row))
	}

	return out, nil
}

func (r *FantasyRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("fantasy_teams").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count fantasy teams query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count fantasy teams: %w", err)
	}

	return count, nil
}

func (r *FantasyRepository) Create(ctx context.Context, t fantasy.Team) error {
	query, args, err := qb.InsertInto("fantasy_teams").
		Columns("id", "owner_id", "name", "budget", "total_points", "version", "created_at", "updated_at").
		Values(t.ID, t.OwnerID, t.Name, t.Budget, t.TotalPoints, t.Version, t.CreatedAt, t.UpdatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert fantasy team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert fantasy team owner=%s: %w", t.OwnerID, err)
	}

	return nil
}

func (r *FantasyRepository) Save(ctx context.Context, t fantasy.Team) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for fantasy team save: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := saveFantasyTeam(ctx, tx, t); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit fantasy team save tx: %w", err)
	}

	return nil
}

func (r *FantasyRepository) ListActivePlayers(ctx context.Context, teamID string) ([]fantasy.TeamPlayer, error) {
	query, args, err := qb.Select(fantasyTeamPlayerSelectColumns...).From("fantasy_team_players").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("is_active", true),
		).
		OrderBy("acquired_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active squad players query: %w", err)
	}

	var rows []fantasyTeamPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select active squad players: %w", err)
	}

	out := make([]fantasy.TeamPlayer, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapFantasyTeamPlayerRow(row))
	}

	return out, nil
}

func (r *FantasyRepository) GetActivePlayer(ctx context.Context, teamID, playerID string) (fantasy.TeamPlayer, bool, error) {
	query, args, err := qb.Select(fantasyTeamPlayerSelectColumns...).From("fantasy_team_players").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("player_id", playerID),
			qb.Eq("is_active", true),
		).
		ToSQL()
	if err != nil {
		return fantasy.TeamPlayer{}, false, fmt.Errorf("build get active squad player query: %w", err)
	}

	var row fantasyTeamPlayerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.TeamPlayer{}, false, nil
		}
		return fantasy.TeamPlayer{}, false, fmt.Errorf("get active squad player: %w", err)
	}

	return mapFantasyTeamPlayerRow(row), true, nil
}

func (r *FantasyRepository) CountActiveTeamsByPlayer(ctx context.Context, playerID string) (int, error) {
	query, args, err := qb.Select("COUNT(DISTINCT team_id)").From("fantasy_team_players").
		Where(
			qb.Eq("player_id", playerID),
			qb.Eq("is_active", true),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count active holders query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count active holders: %w", err)
	}

	return count, nil
}

func (r *FantasyRepository) BuildSquad(ctx context.Context, t fantasy.Team, links []fantasy.TeamPlayer) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for squad build: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := saveFantasyTeam(ctx, tx, t); err != nil {
		return err
	}
	for _, link := range links {
		if err := insertTeamPlayer(ctx, tx, link); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit squad build tx: %w", err)
	}

	return nil
}

func (r *FantasyRepository) ExecuteTransfer(
	ctx context.Context,
	t fantasy.Team,
	out fantasy.TeamPlayer,
	in fantasy.TeamPlayer,
	record transfer.Record,
	charge transfer.PenaltyCharge,
) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for transfer: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := saveFantasyTeam(ctx, tx, t); err != nil {
		return err
	}

	const releaseQuery = `
UPDATE fantasy_team_players
SET is_active = FALSE,
    released_at = :released_at
WHERE id = :id`
	releaseSQL, releaseArgs, err := sqlx.Named(releaseQuery, map[string]any{
		"id":          out.ID,
		"released_at": out.ReleasedAt,
	})
	if err != nil {
		return fmt.Errorf("bind release squad player query: %w", err)
	}
	releaseSQL = tx.Rebind(releaseSQL)
	if _, err := tx.ExecContext(ctx, releaseSQL, releaseArgs...); err != nil {
		return fmt.Errorf("release squad player=%s: %w", out.PlayerID, err)
	}

	if err := insertTeamPlayer(ctx, tx, in); err != nil {
		return err
	}

	const insertTransferQuery = `
INSERT INTO transfers (id, team_id, game_week_id, player_out_id, player_in_id, price_difference, created_at)
VALUES (:id, :team_id, :game_week_id, :player_out_id, :player_in_id, :price_difference, :created_at)`
	transferSQL, transferArgs, err := sqlx.Named(insertTransferQuery, map[string]any{
		"id":               record.ID,
		"team_id":          record.TeamID,
		"game_week_id":     record.GameWeekID,
		"player_out_id":    record.PlayerOutID,
		"player_in_id":     record.PlayerInID,
		"price_difference": record.PriceDifference,
		"created_at":       record.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("bind insert transfer query: %w", err)
	}
	transferSQL = tx.Rebind(transferSQL)
	if _, err := tx.ExecContext(ctx, transferSQL, transferArgs...); err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}

	const upsertPenaltyQuery = `
INSERT INTO transfer_penalties (team_id, game_week_id, points, updated_at)
VALUES (:team_id, :game_week_id, :points, :updated_at)
ON CONFLICT (team_id, game_week_id)
DO UPDATE SET
    points = EXCLUDED.points,
    updated_at = EXCLUDED.updated_at`
	penaltySQL, penaltyArgs, err := sqlx.Named(upsertPenaltyQuery, map[string]any{
		"team_id":      charge.TeamID,
		"game_week_id": charge.GameWeekID,
		"points":       charge.Points,
		"updated_at":   charge.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("bind upsert transfer penalty query: %w", err)
	}
	penaltySQL = tx.Rebind(penaltySQL)
	if _, err := tx.ExecContext(ctx, penaltySQL, penaltyArgs...); err != nil {
		return fmt.Errorf("upsert transfer penalty: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transfer tx: %w", err)
	}

	return nil
}

func (r *FantasyRepository) CountByTeamAndGameWeek(ctx context.Context, teamID, gameWeekID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("transfers").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("game_week_id", gameWeekID),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count gameweek transfers query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count gameweek transfers: %w", err)
	}

	return count, nil
}

func (r *FantasyRepository) CountByTeam(ctx context.Context, teamID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("transfers").
		Where(qb.Eq("team_id", teamID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count team transfers query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count team transfers: %w", err)
	}

	return count, nil
}

func (r *FantasyRepository) ListByTeam(ctx context.Context, teamID string) ([]transfer.Record, error) {
	query, args, err := qb.Select(transferSelectColumns...).From("transfers").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team transfers query: %w", err)
	}

	var rows []transferTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team transfers: %w", err)
	}

	out := make([]transfer.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, transfer.Record{
			ID:              row.ID,
			TeamID:          row.TeamID,
			GameWeekID:      row.GameWeekID,
			PlayerOutID:     row.PlayerOutID,
			PlayerInID:      row.PlayerInID,
			PriceDifference: row.PriceDifference,
			CreatedAt:       row.CreatedAt,
		})
	}

	return out, nil
}

func (r *FantasyRepository) GetPenaltyCharged(ctx context.Context, teamID, gameWeekID string) (transfer.PenaltyCharge, bool, error) {
	query, args, err := qb.Select("team_id", "game_week_id", "points", "updated_at").
		From("transfer_penalties").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("game_week_id", gameWeekID),
		).
		ToSQL()
	if err != nil {
		return transfer.PenaltyCharge{}, false, fmt.Errorf("build get transfer penalty query: %w", err)
	}

	var row transferPenaltyTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return transfer.PenaltyCharge{}, false, nil
		}
		return transfer.PenaltyCharge{}, false, fmt.Errorf("get transfer penalty: %w", err)
	}

	return transfer.PenaltyCharge{
		TeamID:     row.TeamID,
		GameWeekID: row.GameWeekID,
		Points:     row.Points,
		UpdatedAt:  row.UpdatedAt,
	}, true, nil
}

// saveFantasyTeam writes the team row guarded by the optimistic version.
// Zero affected rows means another writer bumped the version first.
func saveFantasyTeam(ctx context.Context, tx *sqlx.Tx, t fantasy.Team) error {
	const saveQuery = `
UPDATE fantasy_teams
SET name = :name,
    budget = :budget,
    total_points = :total_points,
    version = version + 1,
    updated_at = :updated_at
WHERE id = :id
  AND version = :version`

	query, args, err := sqlx.Named(saveQuery, map[string]any{
		"id":           t.ID,
		"name":         t.Name,
		"budget":       t.Budget,
		"total_points": t.TotalPoints,
		"version":      t.Version,
		"updated_at":   t.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("bind save fantasy team query: %w", err)
	}
	query = tx.Rebind(query)

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save fantasy team: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("save fantasy team rows affected: %w", err)
	}
	if affected == 0 {
		return fantasy.ErrVersionMismatch
	}

	return nil
}

func insertTeamPlayer(ctx context.Context, tx *sqlx.Tx, link fantasy.TeamPlayer) error {
	const insertQuery = `
INSERT INTO fantasy_team_players (id, team_id, player_id, purchase_price, is_active, acquired_at, released_at)
VALUES (:id, :team_id, :player_id, :purchase_price, :is_active, :acquired_at, :released_at)`

	query, args, err := sqlx.Named(insertQuery, map[string]any{
		"id":             link.ID,
		"team_id":        link.TeamID,
		"player_id":      link.PlayerID,
		"purchase_price": link.PurchasePrice,
		"is_active":      link.Active,
		"acquired_at":    link.AcquiredAt,
		"released_at":    link.ReleasedAt,
	})
	if err != nil {
		return fmt.Errorf("bind insert squad player query: %w", err)
	}
	query = tx.Rebind(query)

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert squad player=%s: %w", link.PlayerID, err)
	}

	return nil
}

func mapFantasyTeamRow(row fantasyTeamTableModel) fantasy.Team {
	return fantasy.Team{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Name:        row.Name,
		Budget:      row.Budget,
		TotalPoints: row.TotalPoints,
		Version:     row.Version,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func mapFantasyTeamPlayerRow(row fantasyTeamPlayerTableModel) fantasy.TeamPlayer {
	return fantasy.TeamPlayer{
		ID:            row.ID,
		TeamID:        row.TeamID,
		PlayerID:      row.PlayerID,
		PurchasePrice: row.PurchasePrice,
		Active:        row.IsActive,
		AcquiredAt:    row.AcquiredAt,
		ReleasedAt:    row.ReleasedAt,
	}
}
