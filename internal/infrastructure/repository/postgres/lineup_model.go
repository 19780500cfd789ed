package postgres

import "time"

type lineupTableModel struct {
	ID         string    `db:"id"`
	TeamID     string    `db:"team_id"`
	GameWeekID string    `db:"game_week_id"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type lineupSlotTableModel struct {
	LineupID     string `db:"lineup_id"`
	PlayerID     string `db:"player_id"`
	IsStarter    bool   `db:"is_starter"`
	SlotPosition string `db:"slot_position"`
}
