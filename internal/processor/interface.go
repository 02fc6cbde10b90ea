package processor

import (
	"context"

	"github.com/mauv0809/swiss-ledger/internal/notifier"
	"github.com/mauv0809/swiss-ledger/internal/tournament"
)

// Ledger defines the tournament operations required by the processor.
type Ledger interface {
	ReportMatch(ctx context.Context, winnerID, loserID int64) (tournament.Match, error)
	PlayerStandings(ctx context.Context) ([]tournament.Standing, error)
	SwissPairings(ctx context.Context) ([]tournament.Pairing, error)
}

// Notifier defines the notification operations required by the processor.
// This is an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
