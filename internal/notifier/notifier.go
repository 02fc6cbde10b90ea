package notifier

import "github.com/mauv0809/swiss-ledger/internal/tournament"

// Notifier defines a high-level interface for sending notifications about tournament events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For recorded matches
	SendMatchResult(match tournament.Match, winnerName, loserName string, dryRun bool) error
	// For announcing the next round
	SendPairings(pairings []tournament.Pairing, dryRun bool) error
	SendStandings(standings []tournament.Standing, dryRun bool) error

	// For formatting responses for slash commands
	FormatStandingsResponse(standings []tournament.Standing) (any, error)
	FormatPairingsResponse(pairings []tournament.Pairing) (any, error)
	FormatPlayerStandingResponse(standing *tournament.Standing, query string) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
	FormatErrorResponse(text string) (any, error)
}
