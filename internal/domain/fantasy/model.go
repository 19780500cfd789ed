package fantasy

import (
	"errors"
	"fmt"
	"time"
)

// InitialBudget is every new team's starting budget in hundredths (100.00).
const InitialBudget int64 = 10000

// SquadSize is the exact number of players an initial squad build accepts.
const SquadSize = 8

// ErrVersionMismatch reports a lost optimistic-concurrency race on the
// team aggregate. Use cases surface it as a retryable conflict.
var ErrVersionMismatch = errors.New("fantasy team version mismatch")

// Team is a user's fantasy franchise: the aggregate root for budget,
// running point total and squad membership. Version is a monotonic
// counter checked-and-incremented on every write.
type Team struct {
	ID          string
	OwnerID     string
	Name        string
	Budget      int64
	TotalPoints int
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TeamPlayer is one roster membership record. At most one active record
// may exist per (team, player) pair at a time.
type TeamPlayer struct {
	ID            string
	TeamID        string
	PlayerID      string
	PurchasePrice int64
	Active        bool
	AcquiredAt    time.Time
	ReleasedAt    *time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("fantasy team id is required")
	}
	if t.OwnerID == "" {
		return fmt.Errorf("fantasy team owner id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("fantasy team name is required")
	}
	if t.Budget < 0 {
		return fmt.Errorf("fantasy team budget cannot be negative")
	}
	if t.TotalPoints < 0 {
		return fmt.Errorf("fantasy team total points cannot be negative")
	}

	return nil
}
