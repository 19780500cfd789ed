package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Alislimm/fantasy-ms/internal/domain/pricing"
	qb "github.com/Alislimm/fantasy-ms/internal/platform/querybuilder"
)

type PricingRepository struct {
	db *sqlx.DB
}

var priceChangeSelectColumns = []string{
	"id",
	"player_id",
	"game_week_id",
	"old_price",
	"new_price",
	"ownership_pct",
	"performance_score",
	"reason",
	"created_at",
}

func NewPricingRepository(db *sqlx.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

func (r *PricingRepository) Append(ctx context.Context, change pricing.PriceChange) error {
	gameWeekID := sql.NullString{String: change.GameWeekID, Valid: change.GameWeekID != ""}

	query, args, err := qb.InsertInto("player_price_history").
		Columns(priceChangeSelectColumns...).
		Values(change.ID, change.PlayerID, gameWeekID, change.OldPrice, change.NewPrice, change.OwnershipPct, change.PerformanceScore, change.Reason, change.CreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert price change query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert price change player=%s: %w", change.PlayerID, err)
	}

	return nil
}

func (r *PricingRepository) ListByPlayer(ctx context.Context, playerID string) ([]pricing.PriceChange, error) {
	query, args, err := qb.Select(priceChangeSelectColumns...).From("player_price_history").
		Where(qb.Eq("player_id", playerID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select price changes query: %w", err)
	}

	var rows []priceChangeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select price changes: %w", err)
	}

	out := make([]pricing.PriceChange, 0, len(rows))
	for _, row := range rows {
		out = append(out, pricing.PriceChange{
			ID:               row.ID,
			PlayerID:         row.PlayerID,
			GameWeekID:       row.GameWeekID.String,
			OldPrice:         row.OldPrice,
			NewPrice:         row.NewPrice,
			OwnershipPct:     row.OwnershipPct,
			PerformanceScore: row.PerformanceScore,
			Reason:           row.Reason,
			CreatedAt:        row.CreatedAt,
		})
	}

	return out, nil
}
