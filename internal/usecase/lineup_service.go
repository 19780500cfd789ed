package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Alislimm/fantasy-ms/internal/domain/fantasy"
	"github.com/Alislimm/fantasy-ms/internal/domain/gameweek"
	"github.com/Alislimm/fantasy-ms/internal/domain/lineup"
	idgen "github.com/Alislimm/fantasy-ms/internal/platform/id"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
)

// SetLineupInput is the incoming payload for a weekly lineup save.
type SetLineupInput struct {
	TeamID     string
	GameWeekID string
	Starters   []string
	Bench      []string
	CaptainID  string
}

type LineupService struct {
	fantasyRepo  fantasy.Repository
	gameWeekRepo gameweek.Repository
	lineupRepo   lineup.Repository
	idGen        idgen.Generator
	logger       *logging.Logger
	now          func() time.Time
}

func NewLineupService(
	fantasyRepo fantasy.Repository,
	gameWeekRepo gameweek.Repository,
	lineupRepo lineup.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LineupService{
		fantasyRepo:  fantasyRepo,
		gameWeekRepo: gameWeekRepo,
		lineupRepo:   lineupRepo,
		idGen:        idGen,
		logger:       logger,
		now:          time.Now,
	}
}

// SetLineup validates and persists a starter/bench selection for one
// gameweek. Saves are full overwrites: the previous slot set, captain tag
// included, is replaced wholesale.
func (s *LineupService) SetLineup(ctx context.Context, input SetLineupInput) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.SetLineup")
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	input.GameWeekID = strings.TrimSpace(input.GameWeekID)
	input.CaptainID = strings.TrimSpace(input.CaptainID)
	if input.TeamID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if input.GameWeekID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}

	starters, err := cleanPlayerIDs(input.Starters)
	if err != nil {
		return lineup.Lineup{}, err
	}
	bench, err := cleanPlayerIDs(input.Bench)
	if err != nil {
		return lineup.Lineup{}, err
	}

	if len(starters) != lineup.StartersCount {
		return lineup.Lineup{}, fmt.Errorf("%w: starters must contain exactly %d players", ErrInvalidInput, lineup.StartersCount)
	}
	if len(bench) != lineup.BenchCount {
		return lineup.Lineup{}, fmt.Errorf("%w: bench must contain exactly %d players", ErrInvalidInput, lineup.BenchCount)
	}

	starterSet := make(map[string]struct{}, len(starters))
	for _, id := range starters {
		starterSet[id] = struct{}{}
	}
	for _, id := range bench {
		if _, overlaps := starterSet[id]; overlaps {
			return lineup.Lineup{}, fmt.Errorf("%w: player %s cannot be both starter and bench", ErrInvalidInput, id)
		}
	}

	team, exists, err := s.fantasyRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return lineup.Lineup{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.TeamID)
	}

	gw, exists, err := s.gameWeekRepo.GetByID(ctx, input.GameWeekID)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get gameweek by id: %w", err)
	}
	if !exists {
		return lineup.Lineup{}, fmt.Errorf("%w: gameweek=%s", ErrNotFound, input.GameWeekID)
	}
	if !gw.MutationsOpen() {
		return lineup.Lineup{}, fmt.Errorf("%w: lineup deadline passed for completed gameweek %d", ErrInvalidInput, gw.Number)
	}

	activeLinks, err := s.fantasyRepo.ListActivePlayers(ctx, team.ID)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("list active squad players: %w", err)
	}
	activeSet := make(map[string]struct{}, len(activeLinks))
	for _, link := range activeLinks {
		activeSet[link.PlayerID] = struct{}{}
	}
	for _, id := range append(append([]string(nil), starters...), bench...) {
		if _, ok := activeSet[id]; !ok {
			return lineup.Lineup{}, fmt.Errorf("%w: player %s not in team squad", ErrInvalidInput, id)
		}
	}

	if input.CaptainID != "" {
		if _, ok := starterSet[input.CaptainID]; !ok {
			return lineup.Lineup{}, fmt.Errorf("%w: captain must be among starters", ErrInvalidInput)
		}
	}

	now := s.now().UTC()
	existingLineup, lineupExists, err := s.lineupRepo.GetByTeamAndGameWeek(ctx, team.ID, gw.ID)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get lineup by team and gameweek: %w", err)
	}

	lineupID := existingLineup.ID
	createdAt := existingLineup.CreatedAt
	if !lineupExists {
		lineupID, err = s.idGen.NewID()
		if err != nil {
			return lineup.Lineup{}, fmt.Errorf("generate lineup id: %w", err)
		}
		createdAt = now
	}

	slots := make([]lineup.Slot, 0, lineup.StartersCount+lineup.BenchCount)
	for _, id := range starters {
		slot := lineup.Slot{PlayerID: id, Starter: true}
		if id == input.CaptainID {
			slot.SlotPosition = lineup.CaptainMarker
		}
		slots = append(slots, slot)
	}
	for _, id := range bench {
		slots = append(slots, lineup.Slot{PlayerID: id, Starter: false})
	}

	item := lineup.Lineup{
		ID:         lineupID,
		TeamID:     team.ID,
		GameWeekID: gw.ID,
		Slots:      slots,
		CreatedAt:  createdAt,
		UpdatedAt:  now,
	}

	if err := s.lineupRepo.Upsert(ctx, item); err != nil {
		return lineup.Lineup{}, fmt.Errorf("save lineup: %w", err)
	}

	s.logger.InfoContext(ctx, "lineup saved",
		"team_id", team.ID,
		"gameweek_id", gw.ID,
		"captain_id", input.CaptainID,
	)

	return item, nil
}

func (s *LineupService) GetLineup(ctx context.Context, teamID, gameWeekID string) (lineup.Lineup, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.GetLineup")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	gameWeekID = strings.TrimSpace(gameWeekID)
	if teamID == "" || gameWeekID == "" {
		return lineup.Lineup{}, false, fmt.Errorf("%w: team_id and gameweek_id are required", ErrInvalidInput)
	}

	item, exists, err := s.lineupRepo.GetByTeamAndGameWeek(ctx, teamID, gameWeekID)
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("get lineup by team and gameweek: %w", err)
	}

	return item, exists, nil
}
