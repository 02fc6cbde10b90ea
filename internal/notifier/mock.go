package notifier

import (
	"sync"

	"github.com/mauv0809/swiss-ledger/internal/tournament"
)

var _ Notifier = (*Mock)(nil)

// MatchResultCall holds the arguments for a call to SendMatchResult.
type MatchResultCall struct {
	Match      tournament.Match
	WinnerName string
	LoserName  string
	DryRun     bool
}

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendMatchResultCalls []MatchResultCall
	SendPairingsCalls    [][]tournament.Pairing
	SendStandingsCalls   [][]tournament.Standing

	// Spies
	SendMatchResultFunc func(match tournament.Match, winnerName, loserName string, dryRun bool) error
	SendPairingsFunc    func(pairings []tournament.Pairing, dryRun bool) error
	SendStandingsFunc   func(standings []tournament.Standing, dryRun bool) error

	// Last formatted responses
	LastStandingsResponse      []tournament.Standing
	LastPairingsResponse       []tournament.Pairing
	LastPlayerStandingResponse *tournament.Standing
	LastPlayerNotFoundQuery    string
	LastErrorResponse          string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = nil
	m.SendPairingsCalls = nil
	m.SendStandingsCalls = nil
	m.LastStandingsResponse = nil
	m.LastPairingsResponse = nil
	m.LastPlayerStandingResponse = nil
	m.LastPlayerNotFoundQuery = ""
	m.LastErrorResponse = ""
}

func (m *Mock) SendMatchResult(match tournament.Match, winnerName, loserName string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, MatchResultCall{
		Match:      match,
		WinnerName: winnerName,
		LoserName:  loserName,
		DryRun:     dryRun,
	})
	if m.SendMatchResultFunc != nil {
		return m.SendMatchResultFunc(match, winnerName, loserName, dryRun)
	}
	return nil
}

func (m *Mock) SendPairings(pairings []tournament.Pairing, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPairingsCalls = append(m.SendPairingsCalls, pairings)
	if m.SendPairingsFunc != nil {
		return m.SendPairingsFunc(pairings, dryRun)
	}
	return nil
}

func (m *Mock) SendStandings(standings []tournament.Standing, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, standings)
	if m.SendStandingsFunc != nil {
		return m.SendStandingsFunc(standings, dryRun)
	}
	return nil
}

func (m *Mock) FormatStandingsResponse(standings []tournament.Standing) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastStandingsResponse = standings
	return map[string]any{"standings": standings}, nil
}

func (m *Mock) FormatPairingsResponse(pairings []tournament.Pairing) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastPairingsResponse = pairings
	return map[string]any{"pairings": pairings}, nil
}

func (m *Mock) FormatPlayerStandingResponse(standing *tournament.Standing, query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastPlayerStandingResponse = standing
	return map[string]any{"standing": standing, "query": query}, nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastPlayerNotFoundQuery = query
	return map[string]any{"not_found": query}, nil
}

func (m *Mock) FormatErrorResponse(text string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastErrorResponse = text
	return map[string]any{"error": text}, nil
}

// MatchResults returns a snapshot of the recorded SendMatchResult calls.
func (m *Mock) MatchResults() []MatchResultCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MatchResultCall(nil), m.SendMatchResultCalls...)
}

// Pairings returns a snapshot of the recorded SendPairings calls.
func (m *Mock) Pairings() [][]tournament.Pairing {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]tournament.Pairing(nil), m.SendPairingsCalls...)
}

// Standings returns a snapshot of the recorded SendStandings calls.
func (m *Mock) Standings() [][]tournament.Standing {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]tournament.Standing(nil), m.SendStandingsCalls...)
}
