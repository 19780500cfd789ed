package transfer

import "context"

// Repository reads the transfer log and penalty ledger. Writes happen
// atomically through fantasy.Repository.ExecuteTransfer.
type Repository interface {
	CountByTeamAndGameWeek(ctx context.Context, teamID, gameWeekID string) (int, error)
	CountByTeam(ctx context.Context, teamID string) (int, error)
	ListByTeam(ctx context.Context, teamID string) ([]Record, error)
	GetPenaltyCharged(ctx context.Context, teamID, gameWeekID string) (PenaltyCharge, bool, error)
}
