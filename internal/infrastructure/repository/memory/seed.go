package memory

import (
	"time"

	"github.com/Alislimm/fantasy-ms/internal/domain/fixture"
	"github.com/Alislimm/fantasy-ms/internal/domain/gameweek"
	"github.com/Alislimm/fantasy-ms/internal/domain/player"
	"github.com/Alislimm/fantasy-ms/internal/domain/scoring"
	"github.com/Alislimm/fantasy-ms/internal/domain/team"
)

const (
	TeamIDLakers   = "nba-lal"
	TeamIDCeltics  = "nba-bos"
	TeamIDWarriors = "nba-gsw"
	TeamIDNuggets  = "nba-den"

	GameWeekID1 = "gw-2026-01"
	GameWeekID2 = "gw-2026-02"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDLakers, Name: "Los Angeles Lakers", City: "Los Angeles"},
		{ID: TeamIDCeltics, Name: "Boston Celtics", City: "Boston"},
		{ID: TeamIDWarriors, Name: "Golden State Warriors", City: "San Francisco"},
		{ID: TeamIDNuggets, Name: "Denver Nuggets", City: "Denver"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "lal-pg-01", TeamID: TeamIDLakers, FirstName: "Marcus", LastName: "Bell", Position: player.PositionPointGuard, MarketValue: 1250, Active: true},
		{ID: "lal-sf-01", TeamID: TeamIDLakers, FirstName: "Dario", LastName: "Kovac", Position: player.PositionSmallForward, MarketValue: 1100, Active: true},
		{ID: "lal-c-01", TeamID: TeamIDLakers, FirstName: "Theo", LastName: "Grant", Position: player.PositionCenter, MarketValue: 980, Active: true},
		{ID: "bos-pg-01", TeamID: TeamIDCeltics, FirstName: "Jalen", LastName: "Price", Position: player.PositionPointGuard, MarketValue: 1180, Active: true},
		{ID: "bos-sg-01", TeamID: TeamIDCeltics, FirstName: "Owen", LastName: "Fitzgerald", Position: player.PositionShootingGuard, MarketValue: 1020, Active: true},
		{ID: "bos-pf-01", TeamID: TeamIDCeltics, FirstName: "Luka", LastName: "Simic", Position: player.PositionPowerForward, MarketValue: 940, Active: true},
		{ID: "gsw-sg-01", TeamID: TeamIDWarriors, FirstName: "Andre", LastName: "Whitfield", Position: player.PositionShootingGuard, MarketValue: 1310, Active: true},
		{ID: "gsw-sf-01", TeamID: TeamIDWarriors, FirstName: "Kenji", LastName: "Mori", Position: player.PositionSmallForward, MarketValue: 890, Active: true},
		{ID: "gsw-c-01", TeamID: TeamIDWarriors, FirstName: "Pavel", LastName: "Horak", Position: player.PositionCenter, MarketValue: 860, Active: true},
		{ID: "den-pg-01", TeamID: TeamIDNuggets, FirstName: "Silas", LastName: "Okafor", Position: player.PositionPointGuard, MarketValue: 1040, Active: true},
		{ID: "den-pf-01", TeamID: TeamIDNuggets, FirstName: "Bruno", LastName: "Ferreira", Position: player.PositionPowerForward, MarketValue: 920, Active: true},
		{ID: "den-c-01", TeamID: TeamIDNuggets, FirstName: "Mateo", LastName: "Vidal", Position: player.PositionCenter, MarketValue: 1150, Active: true},
	}
}

func SeedGameWeeks() []gameweek.GameWeek {
	return []gameweek.GameWeek{
		{
			ID:        GameWeekID1,
			Number:    1,
			Status:    gameweek.StatusActive,
			StartDate: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, time.January, 11, 23, 59, 59, 0, time.UTC),
		},
		{
			ID:        GameWeekID2,
			Number:    2,
			Status:    gameweek.StatusUpcoming,
			StartDate: time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, time.January, 18, 23, 59, 59, 0, time.UTC),
		},
	}
}

func SeedFixtures() []fixture.Fixture {
	return []fixture.Fixture{
		{
			ID:         "fx-gw1-lal-bos",
			GameWeekID: GameWeekID1,
			HomeTeamID: TeamIDLakers,
			AwayTeamID: TeamIDCeltics,
			KickoffAt:  time.Date(2026, time.January, 6, 19, 30, 0, 0, time.UTC),
			Venue:      "Crypto.com Arena",
			Status:     fixture.StatusScheduled,
		},
		{
			ID:         "fx-gw1-gsw-den",
			GameWeekID: GameWeekID1,
			HomeTeamID: TeamIDWarriors,
			AwayTeamID: TeamIDNuggets,
			KickoffAt:  time.Date(2026, time.January, 7, 20, 0, 0, 0, time.UTC),
			Venue:      "Chase Center",
			Status:     fixture.StatusScheduled,
		},
	}
}

func SeedScoringRules() []scoring.Rule {
	return []scoring.Rule{
		{Metric: scoring.MetricPoint, PointsPerUnit: 1},
		{Metric: scoring.MetricRebound, PointsPerUnit: 1},
		{Metric: scoring.MetricAssist, PointsPerUnit: 1},
		{Metric: scoring.MetricSteal, PointsPerUnit: 3},
		{Metric: scoring.MetricBlock, PointsPerUnit: 3},
		{Metric: scoring.MetricTurnover, PointsPerUnit: 1},
		{Metric: scoring.MetricThreeMade, PointsPerUnit: 1},
	}
}
