package usecase

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Alislimm/fantasy-ms/internal/domain/fantasy"
	"github.com/Alislimm/fantasy-ms/internal/infrastructure/repository/memory"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
)

// seqIDGenerator hands out prefix-001, prefix-002, ... so tests can assert
// on deterministic IDs. The mutex matters for the worker-pool paths.
type seqIDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func newSeqIDGenerator(prefix string) *seqIDGenerator {
	return &seqIDGenerator{prefix: prefix}
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.next++
	return fmt.Sprintf("%s-%03d", g.prefix, g.next), nil
}

func statPtr(v int) *int {
	return &v
}

// defaultSquadPlayerIDs cost 8220 against the 10000 starting budget.
var defaultSquadPlayerIDs = []string{
	"lal-pg-01",
	"lal-sf-01",
	"lal-c-01",
	"bos-pg-01",
	"bos-sg-01",
	"bos-pf-01",
	"gsw-sf-01",
	"gsw-c-01",
}

// squadFixture is a fantasy team with its initial squad already built,
// wired against seeded memory repositories.
type squadFixture struct {
	fantasyRepo  *memory.FantasyRepository
	playerRepo   *memory.PlayerRepository
	gameWeekRepo *memory.GameWeekRepository
	team         fantasy.Team
}

func newSquadFixture(t *testing.T, at time.Time) squadFixture {
	t.Helper()

	fantasyRepo := memory.NewFantasyRepository()
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	gameWeekRepo := memory.NewGameWeekRepository(memory.SeedGameWeeks())

	teamService := NewTeamService(fantasyRepo, newSeqIDGenerator("team"), logging.NewNop())
	teamService.now = func() time.Time { return at }
	team, err := teamService.CreateTeam(t.Context(), CreateTeamInput{
		OwnerID: "owner-1",
		Name:    "Hardwood Heroes",
	})
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}

	squadService := NewSquadService(fantasyRepo, playerRepo, newSeqIDGenerator("link"), logging.NewNop())
	squadService.now = func() time.Time { return at }
	team, err = squadService.BuildInitialSquad(t.Context(), BuildSquadInput{
		TeamID:    team.ID,
		PlayerIDs: defaultSquadPlayerIDs,
	})
	if err != nil {
		t.Fatalf("build initial squad failed: %v", err)
	}

	return squadFixture{
		fantasyRepo:  fantasyRepo,
		playerRepo:   playerRepo,
		gameWeekRepo: gameWeekRepo,
		team:         team,
	}
}
