package tournament_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/mauv0809/swiss-ledger/internal/database"
	"github.com/mauv0809/swiss-ledger/internal/metrics"
	"github.com/mauv0809/swiss-ledger/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (tournament.Ledger, *metrics.Mock) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	m := metrics.NewMock()
	return tournament.New(db, m), m
}

// setupRawDB is setupTestDB but also hands back the connection so tests can
// tamper with the schema or close it early.
func setupRawDB(t *testing.T) (*sql.DB, func(), tournament.Ledger, *metrics.Mock) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	m := metrics.NewMock()
	return db, teardown, tournament.New(db, m), m
}

// register adds players in order and returns their ids.
func register(t *testing.T, ledger tournament.Ledger, names ...string) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		p, err := ledger.RegisterPlayer(context.Background(), name)
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	return ids
}

func TestRegisterAndCountPlayers(t *testing.T) {
	ledger, m := setupTestDB(t)
	ctx := context.Background()

	count, err := ledger.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "an empty registry should count zero")

	ids := register(t, ledger, "Alice", "Alice", "")
	assert.Len(t, ids, 3)
	assert.NotEqual(t, ids[0], ids[1], "duplicate names must still get distinct ids")

	count, err = ledger.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 3, m.PlayersRegistered())
}

func TestDeletePlayers(t *testing.T) {
	ledger, _ := setupTestDB(t)
	ctx := context.Background()

	ids := register(t, ledger, "Alice", "Bob", "Carol", "Dave")
	_, err := ledger.ReportMatch(ctx, ids[0], ids[1])
	require.NoError(t, err)

	require.NoError(t, ledger.DeletePlayers(ctx), "deleting players with recorded matches should clear matches first")

	count, err := ledger.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	matches, err := ledger.ListMatches(ctx)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestDeleteMatchesResetsStandings(t *testing.T) {
	ledger, _ := setupTestDB(t)
	ctx := context.Background()

	ids := register(t, ledger, "Alice", "Bob", "Carol", "Dave")
	_, err := ledger.ReportMatch(ctx, ids[0], ids[1])
	require.NoError(t, err)
	_, err = ledger.ReportMatch(ctx, ids[2], ids[3])
	require.NoError(t, err)

	require.NoError(t, ledger.DeleteMatches(ctx))
	require.NoError(t, ledger.DeleteMatches(ctx), "clearing an empty matches table should succeed")

	standings, err := ledger.PlayerStandings(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 4)
	for _, st := range standings {
		assert.Zero(t, st.Wins, "player %s", st.Name)
		assert.Zero(t, st.Matches, "player %s", st.Name)
	}
}

func TestPlayerStandingsBeforeMatches(t *testing.T) {
	ledger, _ := setupTestDB(t)

	ids := register(t, ledger, "Melpomene Murray", "Randy Schwartz")

	standings, err := ledger.PlayerStandings(context.Background())
	require.NoError(t, err)
	require.Len(t, standings, 2, "players should appear in standings before they have played")

	assert.Equal(t, tournament.Standing{ID: ids[0], Name: "Melpomene Murray"}, standings[0])
	assert.Equal(t, tournament.Standing{ID: ids[1], Name: "Randy Schwartz"}, standings[1])
}

func TestReportMatch(t *testing.T) {
	ledger, m := setupTestDB(t)
	ctx := context.Background()

	ids := register(t, ledger, "Bruno Walton", "Boots O'Neal", "Cathy Burton", "Diane Grant")

	match, err := ledger.ReportMatch(ctx, ids[0], ids[1])
	require.NoError(t, err)
	assert.NotZero(t, match.ID)
	assert.Equal(t, ids[0], match.Winner)
	assert.Equal(t, ids[1], match.Loser)
	assert.False(t, match.ReportedAt.IsZero())

	_, err = ledger.ReportMatch(ctx, ids[2], ids[3])
	require.NoError(t, err)

	standings, err := ledger.PlayerStandings(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 4)

	wins := map[int64]int{}
	for _, st := range standings {
		assert.Equal(t, 1, st.Matches, "each player should have one match recorded")
		wins[st.ID] = st.Wins
	}
	assert.Equal(t, 1, wins[ids[0]])
	assert.Equal(t, 0, wins[ids[1]])
	assert.Equal(t, 1, wins[ids[2]])
	assert.Equal(t, 0, wins[ids[3]])
	assert.Equal(t, 2, m.MatchesReported())
}

func TestReportMatchRejections(t *testing.T) {
	ledger, m := setupTestDB(t)
	ctx := context.Background()

	ids := register(t, ledger, "Alice", "Bob")
	_, err := ledger.ReportMatch(ctx, ids[0], ids[1])
	require.NoError(t, err)

	tests := []struct {
		name        string
		winner      int64
		loser       int64
		expectedErr error
		reason      string
	}{
		{"rematch same orientation", ids[0], ids[1], tournament.ErrDuplicateMatch, "duplicate"},
		{"rematch reversed orientation", ids[1], ids[0], tournament.ErrDuplicateMatch, "duplicate"},
		{"self pairing", ids[0], ids[0], tournament.ErrSelfPairing, "self_pairing"},
		{"unknown winner", 9999, ids[1], tournament.ErrUnknownPlayer, "unknown_player"},
		{"unknown loser", ids[0], 9999, tournament.ErrUnknownPlayer, "unknown_player"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := m.MatchRejections(tt.reason)

			_, err := ledger.ReportMatch(ctx, tt.winner, tt.loser)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, before+1, m.MatchRejections(tt.reason))
		})
	}

	matches, err := ledger.ListMatches(ctx)
	require.NoError(t, err)
	assert.Len(t, matches, 1, "rejected reports must not write anything")

	standings, err := ledger.PlayerStandings(ctx)
	require.NoError(t, err)
	for _, st := range standings {
		assert.Equal(t, 1, st.Matches, "player %s", st.Name)
	}
}

func TestWritesOnClosedStoreReturnErrStoreWrite(t *testing.T) {
	_, teardown, ledger, m := setupRawDB(t)
	ctx := context.Background()
	ids := register(t, ledger, "Alice", "Bob")
	teardown()

	_, err := ledger.RegisterPlayer(ctx, "Carol")
	assert.ErrorIs(t, err, tournament.ErrStoreWrite, "RegisterPlayer")

	_, err = ledger.ReportMatch(ctx, ids[0], ids[1])
	assert.ErrorIs(t, err, tournament.ErrStoreWrite, "ReportMatch")
	assert.NotErrorIs(t, err, tournament.ErrInvalidMatch)

	assert.ErrorIs(t, ledger.DeletePlayers(ctx), tournament.ErrStoreWrite, "DeletePlayers")
	assert.ErrorIs(t, ledger.DeleteMatches(ctx), tournament.ErrStoreWrite, "DeleteMatches")

	assert.Equal(t, 2, m.PlayersRegistered())
	assert.Equal(t, 0, m.MatchesReported())
}

func TestReportMatchFailedInsertLeavesNoTrace(t *testing.T) {
	db, _, ledger, m := setupRawDB(t)
	ctx := context.Background()

	ids := register(t, ledger, "Alice", "Bob", "Carol")
	_, err := ledger.ReportMatch(ctx, ids[0], ids[1])
	require.NoError(t, err)

	matchesBefore, err := ledger.ListMatches(ctx)
	require.NoError(t, err)
	standingsBefore, err := ledger.PlayerStandings(ctx)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `
		CREATE TRIGGER refuse_matches BEFORE INSERT ON matches
		BEGIN SELECT RAISE(ABORT, 'matches are read-only'); END`)
	require.NoError(t, err)

	_, err = ledger.ReportMatch(ctx, ids[2], ids[0])
	require.Error(t, err)
	assert.ErrorIs(t, err, tournament.ErrStoreWrite)
	assert.NotErrorIs(t, err, tournament.ErrDuplicateMatch)
	assert.Equal(t, 1, m.MatchesReported())

	matchesAfter, err := ledger.ListMatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, matchesBefore, matchesAfter)

	standingsAfter, err := ledger.PlayerStandings(ctx)
	require.NoError(t, err)
	assert.Equal(t, standingsBefore, standingsAfter)
}

func TestDeletePlayersRollsBackOnFailure(t *testing.T) {
	db, _, ledger, _ := setupRawDB(t)
	ctx := context.Background()

	ids := register(t, ledger, "Alice", "Bob")
	_, err := ledger.ReportMatch(ctx, ids[0], ids[1])
	require.NoError(t, err)

	// Matches are cleared first, so this fails halfway through the reset.
	_, err = db.ExecContext(ctx, `
		CREATE TRIGGER keep_players BEFORE DELETE ON players
		BEGIN SELECT RAISE(ABORT, 'players are permanent'); END`)
	require.NoError(t, err)

	err = ledger.DeletePlayers(ctx)
	assert.ErrorIs(t, err, tournament.ErrStoreWrite)

	count, err := ledger.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	matches, err := ledger.ListMatches(ctx)
	require.NoError(t, err)
	assert.Len(t, matches, 1, "matches deleted inside the failed transaction must come back")
}

func TestInvalidMatchErrorsShareParent(t *testing.T) {
	assert.ErrorIs(t, tournament.ErrSelfPairing, tournament.ErrInvalidMatch)
	assert.ErrorIs(t, tournament.ErrUnknownPlayer, tournament.ErrInvalidMatch)
	assert.NotErrorIs(t, tournament.ErrDuplicateMatch, tournament.ErrInvalidMatch)
}

func TestTalliesAgreeWithHistory(t *testing.T) {
	ledger, _ := setupTestDB(t)
	ctx := context.Background()

	ids := register(t, ledger, "A", "B", "C", "D", "E", "F")
	reports := [][2]int64{
		{ids[0], ids[1]},
		{ids[2], ids[3]},
		{ids[4], ids[5]},
		{ids[0], ids[2]},
		{ids[5], ids[1]},
		{ids[3], ids[4]},
		{ids[2], ids[0]}, // rematch, rejected
	}
	recorded := 0
	for _, r := range reports {
		if _, err := ledger.ReportMatch(ctx, r[0], r[1]); err == nil {
			recorded++
		} else {
			assert.ErrorIs(t, err, tournament.ErrDuplicateMatch)
		}
	}
	require.Equal(t, 6, recorded)

	standings, err := ledger.PlayerStandings(ctx)
	require.NoError(t, err)

	totalWins, totalMatches := 0, 0
	for i, st := range standings {
		totalWins += st.Wins
		totalMatches += st.Matches
		if i > 0 {
			prev := standings[i-1]
			assert.True(t, prev.Wins > st.Wins || (prev.Wins == st.Wins && prev.ID < st.ID),
				"standings must be ordered by wins desc then id asc")
		}
	}
	assert.Equal(t, recorded, totalWins)
	assert.Equal(t, 2*recorded, totalMatches)
}

func TestPlayerStandingsIsStable(t *testing.T) {
	ledger, _ := setupTestDB(t)
	ctx := context.Background()

	ids := register(t, ledger, "Zed", "Yan", "Xia", "Wu")
	_, err := ledger.ReportMatch(ctx, ids[3], ids[0])
	require.NoError(t, err)

	first, err := ledger.PlayerStandings(ctx)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := ledger.PlayerStandings(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	got := make([]int64, 0, len(first))
	for _, st := range first {
		got = append(got, st.ID)
	}
	assert.Equal(t, []int64{ids[3], ids[0], ids[1], ids[2]}, got)
}

func TestGetStandingByName(t *testing.T) {
	ledger, _ := setupTestDB(t)
	ctx := context.Background()

	ids := register(t, ledger, "Alice Smith", "Bob Jones", "Alicia Keys", "Dave")
	_, err := ledger.ReportMatch(ctx, ids[2], ids[3])
	require.NoError(t, err)

	st, err := ledger.GetStandingByName(ctx, "ALI")
	require.NoError(t, err)
	assert.Equal(t, ids[2], st.ID, "the higher ranked match should win")
	assert.Equal(t, 1, st.Wins)

	st, err = ledger.GetStandingByName(ctx, "jones")
	require.NoError(t, err)
	assert.Equal(t, "Bob Jones", st.Name)

	_, err = ledger.GetStandingByName(ctx, "nobody")
	assert.ErrorIs(t, err, tournament.ErrPlayerNotFound)
}

func TestGetStandingByNameMatchesWildcardsLiterally(t *testing.T) {
	ledger, _ := setupTestDB(t)
	ctx := context.Background()
	register(t, ledger, "Alice", "100% Dave", `C:\Bob`)

	tests := []struct {
		query string
		want  string
	}{
		{query: "%", want: "100% Dave"},
		{query: "0% d", want: "100% Dave"},
		{query: `:\b`, want: `C:\Bob`},
		{query: "A_ice"},
		{query: "_"},
		{query: `\%`},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			st, err := ledger.GetStandingByName(ctx, tt.query)
			if tt.want == "" {
				assert.ErrorIs(t, err, tournament.ErrPlayerNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, st.Name)
		})
	}
}

func TestSwissPairings(t *testing.T) {
	ledger, m := setupTestDB(t)
	ctx := context.Background()

	ids := register(t, ledger, "Alice", "Bob", "Carol", "Dave")

	pairings, err := ledger.SwissPairings(ctx)
	require.NoError(t, err)
	require.Len(t, pairings, 2)

	_, err = ledger.ReportMatch(ctx, ids[0], ids[1])
	require.NoError(t, err)
	_, err = ledger.ReportMatch(ctx, ids[2], ids[3])
	require.NoError(t, err)

	pairings, err = ledger.SwissPairings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []tournament.Pairing{
		{ID1: ids[0], Name1: "Alice", ID2: ids[2], Name2: "Carol"},
		{ID1: ids[1], Name1: "Bob", ID2: ids[3], Name2: "Dave"},
	}, pairings)
	assert.Equal(t, 2, m.PairingsGenerated())
}

func TestSwissPairingsOddCount(t *testing.T) {
	ledger, m := setupTestDB(t)

	register(t, ledger, "Alice", "Bob", "Carol")

	pairings, err := ledger.SwissPairings(context.Background())
	assert.ErrorIs(t, err, tournament.ErrOddPlayerCount)
	assert.Nil(t, pairings)
	assert.Equal(t, 0, m.PairingsGenerated())
}

func TestSwissPairingsCoverEveryPlayer(t *testing.T) {
	ledger, _ := setupTestDB(t)
	ctx := context.Background()

	ids := register(t, ledger, "P1", "P2", "P3", "P4", "P5", "P6", "P7", "P8")

	// Play two rounds from the ledger's own pairings.
	for round := 0; round < 2; round++ {
		pairings, err := ledger.SwissPairings(ctx)
		require.NoError(t, err)
		for _, p := range pairings {
			_, err := ledger.ReportMatch(ctx, p.ID1, p.ID2)
			require.NoError(t, err, "round %d", round+1)
		}
	}

	standings, err := ledger.PlayerStandings(ctx)
	require.NoError(t, err)
	winsByID := map[int64]int{}
	for _, st := range standings {
		winsByID[st.ID] = st.Wins
	}

	pairings, err := ledger.SwissPairings(ctx)
	require.NoError(t, err)
	require.Len(t, pairings, len(ids)/2)

	seen := map[int64]bool{}
	lastWins := len(ids)
	for _, p := range pairings {
		for _, id := range []int64{p.ID1, p.ID2} {
			assert.False(t, seen[id], "player %d paired twice", id)
			seen[id] = true
		}
		assert.LessOrEqual(t, winsByID[p.ID1], lastWins, "pairs should be ordered by descending wins")
		assert.GreaterOrEqual(t, winsByID[p.ID1], winsByID[p.ID2])
		lastWins = winsByID[p.ID2]
	}
	assert.Len(t, seen, len(ids))
}
