package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Alislimm/fantasy-ms/internal/domain/fantasy"
	"github.com/Alislimm/fantasy-ms/internal/domain/transfer"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
)

type LeaderboardEntry struct {
	Rank          int       `json:"rank"`
	TeamID        string    `json:"team_id"`
	TeamName      string    `json:"team_name"`
	OwnerID       string    `json:"owner_id"`
	TotalPoints   int       `json:"total_points"`
	TransferCount int       `json:"transfer_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type LeaderboardService struct {
	fantasyRepo  fantasy.Repository
	transferRepo transfer.Repository
	logger       *logging.Logger
}

func NewLeaderboardService(fantasyRepo fantasy.Repository, transferRepo transfer.Repository, logger *logging.Logger) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeaderboardService{
		fantasyRepo:  fantasyRepo,
		transferRepo: transferRepo,
		logger:       logger,
	}
}

// GetLeaderboard ranks every team by total points; ties break on fewer
// lifetime transfers, then on earlier team creation.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GetLeaderboard")
	defer span.End()

	teams, err := s.fantasyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(teams))
	for _, t := range teams {
		count, err := s.transferRepo.CountByTeam(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("count transfers for team %s: %w", t.ID, err)
		}
		entries = append(entries, LeaderboardEntry{
			TeamID:        t.ID,
			TeamName:      t.Name,
			OwnerID:       t.OwnerID,
			TotalPoints:   t.TotalPoints,
			TransferCount: count,
			CreatedAt:     t.CreatedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		if entries[i].TransferCount != entries[j].TransferCount {
			return entries[i].TransferCount < entries[j].TransferCount
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}
