package postgres

import "time"

type gameWeekTableModel struct {
	ID        string    `db:"id"`
	Number    int       `db:"number"`
	Status    string    `db:"status"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type fixtureTableModel struct {
	ID         string    `db:"id"`
	GameWeekID string    `db:"game_week_id"`
	HomeTeamID string    `db:"home_team_id"`
	AwayTeamID string    `db:"away_team_id"`
	KickoffAt  time.Time `db:"kickoff_at"`
	Venue      string    `db:"venue"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
