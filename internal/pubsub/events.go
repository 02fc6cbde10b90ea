package pubsub

import (
	"github.com/google/uuid"
	"github.com/mauv0809/swiss-ledger/internal/tournament"
)

// MatchReportedEvent is published after a match has been recorded.
type MatchReportedEvent struct {
	EventID    string           `msgpack:"event_id"`
	Match      tournament.Match `msgpack:"match"`
	WinnerName string           `msgpack:"winner_name"`
	LoserName  string           `msgpack:"loser_name"`
}

// RoundPairedEvent is published when pairings for the next round are announced.
type RoundPairedEvent struct {
	EventID  string               `msgpack:"event_id"`
	Pairings []tournament.Pairing `msgpack:"pairings"`
}

func NewMatchReportedEvent(match tournament.Match, winnerName, loserName string) MatchReportedEvent {
	return MatchReportedEvent{
		EventID:    uuid.NewString(),
		Match:      match,
		WinnerName: winnerName,
		LoserName:  loserName,
	}
}

func NewRoundPairedEvent(pairings []tournament.Pairing) RoundPairedEvent {
	return RoundPairedEvent{
		EventID:  uuid.NewString(),
		Pairings: pairings,
	}
}
