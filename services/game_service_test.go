package services

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hokkyo/riichi-league/models"
	"github.com/hokkyo/riichi-league/pairing"
	"github.com/hokkyo/riichi-league/repositories"
)

type gameFixture struct {
	svc        GameService
	playerRepo repositories.PlayerRepository
	roundRepo  repositories.RoundRepository
}

func newGameFixture(t *testing.T, players []models.Player) *gameFixture {
	t.Helper()
	f := &gameFixture{
		playerRepo: repositories.NewMemoryPlayerRepository(),
		roundRepo:  repositories.NewMemoryRoundRepository(),
	}
	require.NoError(t, f.playerRepo.SaveAll(context.Background(), players))
	f.svc = NewGameService(f.playerRepo, f.roundRepo, rand.New(rand.NewSource(42)), nil, nil)
	return f
}

func rosterWithTotals(totals ...models.Score) []models.Player {
	players := models.DefaultRoster()
	for i := range totals {
		players[i].TotalScore = totals[i]
	}
	return players
}

func TestCreateRoundPairsFullRoster(t *testing.T) {
	f := newGameFixture(t, models.DefaultRoster())
	ctx := context.Background()

	round, err := f.svc.CreateRound(ctx, 1, pairing.PolicySequential)
	require.NoError(t, err)

	assert.Equal(t, 1, round.Number)
	require.Len(t, round.Tables, 2)
	seen := map[int]bool{}
	for _, table := range round.Tables {
		assert.Len(t, table.Players, 4)
		for _, id := range table.Players {
			seen[id] = true
		}
	}
	assert.Len(t, seen, 8)
	assert.False(t, round.IsCompleted)
}

func TestSubmitResultsAdvancesRound(t *testing.T) {
	f := newGameFixture(t, models.DefaultRoster())
	ctx := context.Background()
	_, err := f.svc.CreateRound(ctx, 1, pairing.PolicySequential)
	require.NoError(t, err)

	scores := map[int]models.Score{
		1: 350, 2: 120, 3: -40, 4: -430,
		5: 280, 6: 55, 7: -100, 8: -235,
	}
	require.NoError(t, f.svc.SubmitResults(ctx, scores, SubmitOptions{Advance: true}))

	round1, err := f.roundRepo.GetByNumber(ctx, 1)
	require.NoError(t, err)
	assert.True(t, round1.IsCompleted)
	assert.Equal(t, models.Score(350), round1.Tables[0].Scores[1])

	current, err := f.svc.CurrentRoundNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, current)

	round2, err := f.svc.CurrentRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, round2.Number)
	assert.False(t, round2.IsCompleted)

	players, err := f.playerRepo.List(ctx)
	require.NoError(t, err)
	for _, p := range players {
		assert.Equal(t, scores[p.ID], p.TotalScore)
		assert.Equal(t, []models.Score{scores[p.ID]}, p.Scores)
		assert.False(t, p.HasFilledSchedule)
	}
}

func TestSubmitResultsKeepsRoundOpen(t *testing.T) {
	players := models.DefaultRoster()
	players[0].HasFilledSchedule = true
	f := newGameFixture(t, players)
	ctx := context.Background()
	_, err := f.svc.CreateRound(ctx, 1, pairing.PolicySequential)
	require.NoError(t, err)

	require.NoError(t, f.svc.SubmitResults(ctx, map[int]models.Score{1: 100}, SubmitOptions{}))

	round, err := f.svc.CurrentRound(ctx)
	require.NoError(t, err)
	assert.False(t, round.IsCompleted)

	current, err := f.svc.CurrentRoundNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, current)

	p1, err := f.playerRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, p1.HasFilledSchedule, "schedule flag is only reset when the round advances")
}

func TestSubmitResultsDefaultsAbsentPlayersToZero(t *testing.T) {
	f := newGameFixture(t, models.DefaultRoster())
	ctx := context.Background()
	_, err := f.svc.CreateRound(ctx, 1, pairing.PolicySequential)
	require.NoError(t, err)

	require.NoError(t, f.svc.SubmitResults(ctx, map[int]models.Score{1: 300}, SubmitOptions{Advance: true}))

	p2, err := f.playerRepo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, models.Score(0), p2.TotalScore)
	assert.Equal(t, []models.Score{0}, p2.Scores)
}

func TestSubmitResultsKeepsTenthExact(t *testing.T) {
	f := newGameFixture(t, models.DefaultRoster())
	ctx := context.Background()
	_, err := f.svc.CreateRound(ctx, 1, pairing.PolicySequential)
	require.NoError(t, err)

	score, err := models.ParseScore("-5.5")
	require.NoError(t, err)
	require.NoError(t, f.svc.SubmitResults(ctx, map[int]models.Score{1: score}, SubmitOptions{Advance: true}))

	p1, err := f.playerRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "-5.5", p1.TotalScore.String())
}

func TestSubmitResultsReplacesTableRecordsWholesale(t *testing.T) {
	f := newGameFixture(t, models.DefaultRoster())
	ctx := context.Background()
	_, err := f.svc.CreateRound(ctx, 1, pairing.PolicySequential)
	require.NoError(t, err)

	// First submission fills table 1's ratings and record link.
	require.NoError(t, f.svc.SubmitResults(ctx, map[int]models.Score{1: 100}, SubmitOptions{
		Ratings:    map[int]map[int]string{1: {1: "1st", 4: "2nd"}},
		RecordURLs: map[int]string{1: "https://example.com/records/a"},
	}))

	round, err := f.svc.CurrentRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/records/a", round.Tables[0].RecordURL)
	assert.Equal(t, "1st", round.Tables[0].Ratings[1])

	// Resubmission replaces every table record wholesale; entries absent from
	// the new payload must not survive from the first one.
	require.NoError(t, f.svc.SubmitResults(ctx, map[int]models.Score{4: 200}, SubmitOptions{
		Ratings:    map[int]map[int]string{1: {4: "1st"}},
		RecordURLs: map[int]string{2: "https://example.com/records/b"},
	}))

	round, err = f.svc.CurrentRound(ctx)
	require.NoError(t, err)
	table1 := round.Tables[0]
	assert.Equal(t, "", table1.RecordURL, "record link absent from resubmission is cleared")
	assert.Equal(t, "", table1.Ratings[1], "rating absent from resubmission is cleared")
	assert.Equal(t, "1st", table1.Ratings[4])
	assert.Equal(t, models.Score(0), table1.Scores[1])
	assert.Equal(t, models.Score(200), table1.Scores[4])
	assert.Equal(t, "https://example.com/records/b", round.Tables[1].RecordURL)
}

func TestSubmitResultsRejectsCompletedRound(t *testing.T) {
	f := newGameFixture(t, models.DefaultRoster())
	ctx := context.Background()
	round, err := f.svc.CreateRound(ctx, 1, pairing.PolicySequential)
	require.NoError(t, err)
	round.IsCompleted = true
	require.NoError(t, f.roundRepo.Save(ctx, *round))
	require.NoError(t, f.roundRepo.SetCurrentRound(ctx, 1))

	err = f.svc.SubmitResults(ctx, map[int]models.Score{1: 100}, SubmitOptions{Advance: true})
	assert.ErrorIs(t, err, ErrRoundCompleted)
}

func TestSeasonStopsAtFinalRound(t *testing.T) {
	f := newGameFixture(t, models.DefaultRoster())
	ctx := context.Background()
	require.NoError(t, f.roundRepo.SetCurrentRound(ctx, models.MaxRounds))
	_, err := f.svc.CreateRound(ctx, models.MaxRounds, pairing.PolicySequential)
	require.NoError(t, err)

	require.NoError(t, f.svc.SubmitResults(ctx, map[int]models.Score{1: 100}, SubmitOptions{Advance: true}))

	current, err := f.svc.CurrentRoundNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.MaxRounds, current)

	rounds, err := f.roundRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rounds, 1)
}

func TestRegroupReplacesSeating(t *testing.T) {
	f := newGameFixture(t, rosterWithTotals(800, 700, 600, 500, 400, 300, 200, 100))
	ctx := context.Background()
	_, err := f.svc.CreateRound(ctx, 1, pairing.PolicyRandom)
	require.NoError(t, err)

	round, err := f.svc.RegroupCurrentRound(ctx, pairing.PolicySequential)
	require.NoError(t, err)

	assert.Equal(t, 1, round.Number)
	// Snake seeding on the strict ranking 1..8.
	assert.Equal(t, []int{1, 4, 5, 8}, round.Tables[0].Players)
	assert.Equal(t, []int{2, 3, 6, 7}, round.Tables[1].Players)
}

func TestRegroupRejectsCompletedRound(t *testing.T) {
	f := newGameFixture(t, models.DefaultRoster())
	ctx := context.Background()
	round, err := f.svc.CreateRound(ctx, 1, pairing.PolicySequential)
	require.NoError(t, err)
	round.IsCompleted = true
	require.NoError(t, f.roundRepo.Save(ctx, *round))

	_, err = f.svc.RegroupCurrentRound(ctx, pairing.PolicyRandom)
	assert.ErrorIs(t, err, ErrRoundCompleted)
}

func TestCurrentRoundMissing(t *testing.T) {
	f := newGameFixture(t, models.DefaultRoster())

	_, err := f.svc.CurrentRound(context.Background())
	assert.ErrorIs(t, err, ErrNoCurrentRound)
}

func TestCreateRoundUnknownPolicy(t *testing.T) {
	f := newGameFixture(t, models.DefaultRoster())

	_, err := f.svc.CreateRound(context.Background(), 1, "swiss")
	assert.Error(t, err)
}
