package postgres

import "time"

type playerTableModel struct {
	ID          string     `db:"id"`
	TeamID      string     `db:"team_id"`
	FirstName   string     `db:"first_name"`
	LastName    string     `db:"last_name"`
	Position    string     `db:"position"`
	MarketValue int64      `db:"market_value"`
	IsActive    bool       `db:"is_active"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}
