package tournament

import "context"

// Ledger defines the operations of a Swiss tournament ledger.
type Ledger interface {
	// RegisterPlayer adds a player. Names need not be unique.
	RegisterPlayer(ctx context.Context, name string) (Player, error)
	// CountPlayers returns the number of registered players.
	CountPlayers(ctx context.Context) (int, error)
	// DeletePlayers removes every match and every player.
	DeletePlayers(ctx context.Context) error
	// DeleteMatches removes every match, leaving players registered.
	DeleteMatches(ctx context.Context) error

	// ReportMatch records the outcome of a match between two players who have not met before.
	ReportMatch(ctx context.Context, winnerID, loserID int64) (Match, error)
	// ListMatches returns all recorded matches, oldest first.
	ListMatches(ctx context.Context) ([]Match, error)

	// PlayerStandings returns all players ranked by wins.
	PlayerStandings(ctx context.Context) ([]Standing, error)
	// GetStandingByName finds the highest ranked player whose name contains name.
	GetStandingByName(ctx context.Context, name string) (*Standing, error)

	// SwissPairings pairs adjacent players in the current standings.
	SwissPairings(ctx context.Context) ([]Pairing, error)
}
