package fantasy

import (
	"context"

	"github.com/Alislimm/fantasy-ms/internal/domain/transfer"
)

// Repository owns the team aggregate: the team row, its roster links and
// the transfer writes that must commit with them. Save and the two
// multi-row operations compare the given team's Version against storage
// and fail with ErrVersionMismatch when another writer got there first.
type Repository interface {
	GetByID(ctx context.Context, id string) (Team, bool, error)
	GetByOwner(ctx context.Context, ownerID string) (Team, bool, error)
	List(ctx context.Context) ([]Team, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, t Team) error
	Save(ctx context.Context, t Team) error

	ListActivePlayers(ctx context.Context, teamID string) ([]TeamPlayer, error)
	GetActivePlayer(ctx context.Context, teamID, playerID string) (TeamPlayer, bool, error)
	CountActiveTeamsByPlayer(ctx context.Context, playerID string) (int, error)

	// BuildSquad debits the team and creates all links in one transaction.
	BuildSquad(ctx context.Context, t Team, links []TeamPlayer) error
	// ExecuteTransfer deactivates out, activates in, appends the log row,
	// upserts the penalty ledger and saves the team in one transaction.
	ExecuteTransfer(ctx context.Context, t Team, out TeamPlayer, in TeamPlayer, record transfer.Record, charge transfer.PenaltyCharge) error
}
