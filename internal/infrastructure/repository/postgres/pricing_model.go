package postgres

import (
	"database/sql"
	"time"
)

type priceChangeTableModel struct {
	ID               string         `db:"id"`
	PlayerID         string         `db:"player_id"`
	GameWeekID       sql.NullString `db:"game_week_id"`
	OldPrice         int64          `db:"old_price"`
	NewPrice         int64          `db:"new_price"`
	OwnershipPct     float64        `db:"ownership_pct"`
	PerformanceScore float64        `db:"performance_score"`
	Reason           string         `db:"reason"`
	CreatedAt        time.Time      `db:"created_at"`
}
