package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	playersRegistered  int
	matchesReported    int
	matchRejections    map[string]int
	pairingsGenerated  int
	standingsDurations []float64
	slackNotifSent     int
	slackNotifFailed   int
	startupTime        float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		matchRejections:    make(map[string]int),
		standingsDurations: make([]float64, 0),
	}
}

func (m *Mock) IncPlayersRegistered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playersRegistered++
}

func (m *Mock) IncMatchesReported() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesReported++
}

func (m *Mock) IncMatchRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchRejections[reason]++
}

func (m *Mock) IncPairingsGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pairingsGenerated++
}

func (m *Mock) ObserveStandingsDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.standingsDurations = append(m.standingsDurations, seconds)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// PlayersRegistered returns the number of times IncPlayersRegistered was called.
func (m *Mock) PlayersRegistered() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playersRegistered
}

// MatchesReported returns the number of times IncMatchesReported was called.
func (m *Mock) MatchesReported() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesReported
}

// MatchRejections returns how many reports were rejected for reason.
func (m *Mock) MatchRejections(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchRejections[reason]
}

// PairingsGenerated returns the number of times IncPairingsGenerated was called.
func (m *Mock) PairingsGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pairingsGenerated
}

// StandingsQueries returns the number of observed standings queries.
func (m *Mock) StandingsQueries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.standingsDurations)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
