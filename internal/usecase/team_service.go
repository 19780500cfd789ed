package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Alislimm/fantasy-ms/internal/domain/fantasy"
	idgen "github.com/Alislimm/fantasy-ms/internal/platform/id"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
)

// CreateTeamInput is the incoming payload for fantasy team creation.
type CreateTeamInput struct {
	OwnerID string
	Name    string
}

type TeamService struct {
	fantasyRepo fantasy.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewTeamService(fantasyRepo fantasy.Repository, idGen idgen.Generator, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		fantasyRepo: fantasyRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateTeam provisions one fantasy team per owner with the starting
// budget and an empty squad.
func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (fantasy.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	input.OwnerID = strings.TrimSpace(input.OwnerID)
	input.Name = strings.TrimSpace(input.Name)
	if input.OwnerID == "" {
		return fantasy.Team{}, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return fantasy.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	if _, exists, err := s.fantasyRepo.GetByOwner(ctx, input.OwnerID); err != nil {
		return fantasy.Team{}, fmt.Errorf("get team by owner: %w", err)
	} else if exists {
		return fantasy.Team{}, fmt.Errorf("%w: owner already has a fantasy team", ErrInvalidInput)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	team := fantasy.Team{
		ID:          id,
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Budget:      fantasy.InitialBudget,
		TotalPoints: 0,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := team.Validate(); err != nil {
		return fantasy.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.fantasyRepo.Create(ctx, team); err != nil {
		return fantasy.Team{}, fmt.Errorf("create fantasy team: %w", err)
	}

	s.logger.InfoContext(ctx, "fantasy team created",
		"team_id", team.ID,
		"owner_id", team.OwnerID,
	)

	return team, nil
}

func (s *TeamService) GetByOwner(ctx context.Context, ownerID string) (fantasy.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetByOwner")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return fantasy.Team{}, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	team, exists, err := s.fantasyRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("get team by owner: %w", err)
	}
	if !exists {
		return fantasy.Team{}, fmt.Errorf("%w: owner has no fantasy team", ErrNotFound)
	}

	return team, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (fantasy.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	team, exists, err := s.fantasyRepo.GetByID(ctx, strings.TrimSpace(teamID))
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return fantasy.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return team, nil
}
