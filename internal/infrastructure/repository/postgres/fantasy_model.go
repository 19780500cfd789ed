package postgres

import "time"

type fantasyTeamTableModel struct {
	ID          string    `db:"id"`
	OwnerID     string    `db:"owner_id"`
	Name        string    `db:"name"`
	Budget      int64     `db:"budget"`
	TotalPoints int       `db:"total_points"`
	Version     int64     `db:"version"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type fantasyTeamPlayerTableModel struct {
	ID            string     `db:"id"`
	TeamID        string     `db:"team_id"`
	PlayerID      string     `db:"player_id"`
	PurchasePrice int64      `db:"purchase_price"`
	IsActive      bool       `db:"is_active"`
	AcquiredAt    time.Time  `db:"acquired_at"`
	ReleasedAt    *time.Time `db:"released_at"`
}

type transferTableModel struct {
	ID              string    `db:"id"`
	TeamID          string    `db:"team_id"`
	GameWeekID      string    `db:"game_week_id"`
	PlayerOutID     string    `db:"player_out_id"`
	PlayerInID      string    `db:"player_in_id"`
	PriceDifference int64     `db:"price_difference"`
	CreatedAt       time.Time `db:"created_at"`
}

type transferPenaltyTableModel struct {
	TeamID     string    `db:"team_id"`
	GameWeekID string    `db:"game_week_id"`
	Points     int       `db:"points"`
	UpdatedAt  time.Time `db:"updated_at"`
}
