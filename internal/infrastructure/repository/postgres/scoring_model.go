package postgres

import "time"

type scoringRuleTableModel struct {
	Metric        string  `db:"metric"`
	PointsPerUnit float64 `db:"points_per_unit"`
}

type performanceTableModel struct {
	ID            string    `db:"id"`
	FixtureID     string    `db:"fixture_id"`
	PlayerID      string    `db:"player_id"`
	Points        *int      `db:"points"`
	Rebounds      *int      `db:"rebounds"`
	Assists       *int      `db:"assists"`
	Steals        *int      `db:"steals"`
	Blocks        *int      `db:"blocks"`
	Turnovers     *int      `db:"turnovers"`
	ThreeMade     *int      `db:"three_made"`
	FantasyPoints *int      `db:"fantasy_points"`
	RecordedAt    time.Time `db:"recorded_at"`
}

type teamGameWeekScoreTableModel struct {
	TeamID       string    `db:"team_id"`
	GameWeekID   string    `db:"game_week_id"`
	Points       int       `db:"points"`
	CalculatedAt time.Time `db:"calculated_at"`
}
