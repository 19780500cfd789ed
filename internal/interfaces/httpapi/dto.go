package httpapi

import (
	"context"
	"time"

	"github.com/Alislimm/fantasy-ms/internal/domain/fantasy"
	"github.com/Alislimm/fantasy-ms/internal/domain/fixture"
	"github.com/Alislimm/fantasy-ms/internal/domain/gameweek"
	"github.com/Alislimm/fantasy-ms/internal/domain/lineup"
	"github.com/Alislimm/fantasy-ms/internal/domain/transfer"
	"github.com/Alislimm/fantasy-ms/internal/usecase"
)

type fantasyTeamDTO struct {
	ID           string `json:"id"`
	OwnerID      string `json:"owner_id"`
	Name         string `json:"name"`
	Budget       int64  `json:"budget"`
	TotalPoints  int    `json:"total_points"`
	Version      int64  `json:"version"`
	CreatedAtUTC string `json:"created_at_utc"`
	UpdatedAtUTC string `json:"updated_at_utc"`
}

type squadPlayerDTO struct {
	PlayerID      string `json:"player_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Position      string `json:"position"`
	TeamID        string `json:"team_id"`
	MarketValue   int64  `json:"market_value"`
	PurchasePrice int64  `json:"purchase_price"`
	AcquiredAtUTC string `json:"acquired_at_utc"`
}

type lineupDTO struct {
	ID           string   `json:"id"`
	TeamID       string   `json:"team_id"`
	GameWeekID   string   `json:"game_week_id"`
	Starters     []string `json:"starters"`
	Bench        []string `json:"bench"`
	CaptainID    string   `json:"captain_id,omitempty"`
	UpdatedAtUTC string   `json:"updated_at_utc"`
}

type transferDTO struct {
	ID              string `json:"id"`
	TeamID          string `json:"team_id"`
	GameWeekID      string `json:"game_week_id"`
	PlayerOutID     string `json:"player_out_id"`
	PlayerInID      string `json:"player_in_id"`
	PriceDifference int64  `json:"price_difference"`
	CreatedAtUTC    string `json:"created_at_utc"`
}

type gameWeekDTO struct {
	ID           string `json:"id"`
	Number       int    `json:"number"`
	Status       string `json:"status"`
	StartDateUTC string `json:"start_date_utc"`
	EndDateUTC   string `json:"end_date_utc"`
}

type fixtureDTO struct {
	ID           string `json:"id"`
	GameWeekID   string `json:"game_week_id"`
	HomeTeamID   string `json:"home_team_id"`
	AwayTeamID   string `json:"away_team_id"`
	KickoffAtUTC string `json:"kickoff_at_utc"`
	Venue        string `json:"venue,omitempty"`
	Status       string `json:"status"`
}

type playerDTO struct {
	ID           string  `json:"id"`
	TeamID       string  `json:"team_id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Position     string  `json:"position"`
	MarketValue  int64   `json:"market_value"`
	Active       bool    `json:"active"`
	OwnershipPct float64 `json:"ownership_pct"`
}

type gameWeekPointsDTO struct {
	GameWeekID  string `json:"game_week_id"`
	PointsDelta int    `json:"points_delta"`
}

func fantasyTeamToDTO(ctx context.Context, v fantasy.Team) fantasyTeamDTO {
	ctx, span := startSpan(ctx, "httpapi.fantasyTeamToDTO")
	defer span.End()

	return fantasyTeamDTO{
		ID:           v.ID,
		OwnerID:      v.OwnerID,
		Name:         v.Name,
		Budget:       v.Budget,
		TotalPoints:  v.TotalPoints,
		Version:      v.Version,
		CreatedAtUTC: formatTimeUTC(v.CreatedAt),
		UpdatedAtUTC: formatTimeUTC(v.UpdatedAt),
	}
}

func squadPlayerToDTO(ctx context.Context, v usecase.SquadPlayer) squadPlayerDTO {
	ctx, span := startSpan(ctx, "httpapi.squadPlayerToDTO")
	defer span.End()

	return squadPlayerDTO{
		PlayerID:      v.Player.ID,
		FirstName:     v.Player.FirstName,
		LastName:      v.Player.LastName,
		Position:      string(v.Player.Position),
		TeamID:        v.Player.TeamID,
		MarketValue:   v.Player.MarketValue,
		PurchasePrice: v.Link.PurchasePrice,
		AcquiredAtUTC: formatTimeUTC(v.Link.AcquiredAt),
	}
}

func lineupToDTO(ctx context.Context, v lineup.Lineup) lineupDTO {
	ctx, span := startSpan(ctx, "httpapi.lineupToDTO")
	defer span.End()

	starters := make([]string, 0, lineup.StartersCount)
	bench := make([]string, 0, lineup.BenchCount)
	for _, slot := range v.Slots {
		if slot.Starter {
			starters = append(starters, slot.PlayerID)
			continue
		}
		bench = append(bench, slot.PlayerID)
	}

	captainID, _ := v.CaptainID()

	return lineupDTO{
		ID:           v.ID,
		TeamID:       v.TeamID,
		GameWeekID:   v.GameWeekID,
		Starters:     starters,
		Bench:        bench,
		CaptainID:    captainID,
		UpdatedAtUTC: formatTimeUTC(v.UpdatedAt),
	}
}

func transferToDTO(ctx context.Context, v transfer.Record) transferDTO {
	ctx, span := startSpan(ctx, "httpapi.transferToDTO")
	defer span.End()

	return transferDTO{
		ID:              v.ID,
		TeamID:          v.TeamID,
		GameWeekID:      v.GameWeekID,
		PlayerOutID:     v.PlayerOutID,
		PlayerInID:      v.PlayerInID,
		PriceDifference: v.PriceDifference,
		CreatedAtUTC:    formatTimeUTC(v.CreatedAt),
	}
}

func gameWeekToDTO(ctx context.Context, v gameweek.GameWeek) gameWeekDTO {
	ctx, span := startSpan(ctx, "httpapi.gameWeekToDTO")
	defer span.End()

	return gameWeekDTO{
		ID:           v.ID,
		Number:       v.Number,
		Status:       string(v.Status),
		StartDateUTC: formatTimeUTC(v.StartDate),
		EndDateUTC:   formatTimeUTC(v.EndDate),
	}
}

func fixtureToDTO(ctx context.Context, v fixture.Fixture) fixtureDTO {
	ctx, span := startSpan(ctx, "httpapi.fixtureToDTO")
	defer span.End()

	return fixtureDTO{
		ID:           v.ID,
		GameWeekID:   v.GameWeekID,
		HomeTeamID:   v.HomeTeamID,
		AwayTeamID:   v.AwayTeamID,
		KickoffAtUTC: formatTimeUTC(v.KickoffAt),
		Venue:        v.Venue,
		Status:       string(v.Status),
	}
}

func playerListingToDTO(ctx context.Context, v usecase.PlayerListing) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerListingToDTO")
	defer span.End()

	return playerDTO{
		ID:           v.Player.ID,
		TeamID:       v.Player.TeamID,
		FirstName:    v.Player.FirstName,
		LastName:     v.Player.LastName,
		Position:     string(v.Player.Position),
		MarketValue:  v.Player.MarketValue,
		Active:       v.Player.Active,
		OwnershipPct: v.OwnershipPct,
	}
}

func formatTimeUTC(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
