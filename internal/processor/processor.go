package processor

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-ledger/internal/pubsub"
	"github.com/mauv0809/swiss-ledger/internal/tournament"
)

// New creates a new Processor. pubsub may be nil.
func New(ledger Ledger, notifier Notifier, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		ledger:   ledger,
		pubsub:   pubsub,
		notifier: notifier,
	}
}

// ReportMatch records the result and announces it. A failed announcement is
// logged; the match stays recorded.
func (p *Processor) ReportMatch(ctx context.Context, winnerID, loserID int64, dryRun bool) (tournament.Match, error) {
	match, err := p.ledger.ReportMatch(ctx, winnerID, loserID)
	if err != nil {
		return tournament.Match{}, err
	}

	names, err := p.playerNames(ctx)
	if err != nil {
		log.Error("Failed to look up player names for announcement", "error", err, "matchID", match.ID)
	}
	event := pubsub.NewMatchReportedEvent(match, names[winnerID], names[loserID])

	if dryRun || p.pubsub == nil {
		if err := p.HandleMatchReported(event, dryRun); err != nil {
			log.Error("Failed to announce match", "error", err, "matchID", match.ID)
		}
		return match, nil
	}
	if err := p.pubsub.SendMessage(pubsub.EventMatchReported, event); err != nil {
		log.Error("Failed to publish match event", "error", err, "matchID", match.ID, "eventID", event.EventID)
	}
	return match, nil
}

// AnnouncePairings computes the next round and publishes it.
func (p *Processor) AnnouncePairings(ctx context.Context, dryRun bool) ([]tournament.Pairing, error) {
	pairings, err := p.ledger.SwissPairings(ctx)
	if err != nil {
		return nil, err
	}

	event := pubsub.NewRoundPairedEvent(pairings)
	if dryRun || p.pubsub == nil {
		if err := p.HandleRoundPaired(event, dryRun); err != nil {
			return pairings, fmt.Errorf("failed to announce pairings: %w", err)
		}
		return pairings, nil
	}
	if err := p.pubsub.SendMessage(pubsub.EventRoundPaired, event); err != nil {
		return pairings, fmt.Errorf("failed to publish pairings: %w", err)
	}
	return pairings, nil
}

// AnnounceStandings posts the current standings. Standings are a snapshot of
// the ledger, so they are sent directly instead of through pubsub.
func (p *Processor) AnnounceStandings(ctx context.Context, dryRun bool) ([]tournament.Standing, error) {
	standings, err := p.ledger.PlayerStandings(ctx)
	if err != nil {
		return nil, err
	}

	log.Info("Announcing standings", "players", len(standings))
	if err := p.notifier.SendStandings(standings, dryRun); err != nil {
		return standings, fmt.Errorf("failed to announce standings: %w", err)
	}
	return standings, nil
}

// HandleMatchReported posts the result of a reported match.
func (p *Processor) HandleMatchReported(event pubsub.MatchReportedEvent, dryRun bool) error {
	log.Info("Announcing match result", "eventID", event.EventID, "matchID", event.Match.ID)
	return p.notifier.SendMatchResult(event.Match, event.WinnerName, event.LoserName, dryRun)
}

// HandleRoundPaired posts the pairings of the next round.
func (p *Processor) HandleRoundPaired(event pubsub.RoundPairedEvent, dryRun bool) error {
	log.Info("Announcing pairings", "eventID", event.EventID, "pairs", len(event.Pairings))
	return p.notifier.SendPairings(event.Pairings, dryRun)
}

func (p *Processor) playerNames(ctx context.Context) (map[int64]string, error) {
	standings, err := p.ledger.PlayerStandings(ctx)
	if err != nil {
		return map[int64]string{}, err
	}
	names := make(map[int64]string, len(standings))
	for _, st := range standings {
		names[st.ID] = st.Name
	}
	return names, nil
}
