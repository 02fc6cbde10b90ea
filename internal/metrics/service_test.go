package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)

	svc.IncPlayersRegistered()
	svc.IncPlayersRegistered()
	svc.IncMatchesReported()
	svc.IncMatchRejected("duplicate")
	svc.IncMatchRejected("duplicate")
	svc.IncMatchRejected("self_pairing")
	svc.IncPairingsGenerated()
	svc.ObserveStandingsDuration(0.002)

	assert.Equal(t, 2.0, testutil.ToFloat64(svc.PlayersRegistered))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.MatchesReported))
	assert.Equal(t, 2.0, testutil.ToFloat64(svc.MatchRejections.WithLabelValues("duplicate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.MatchRejections.WithLabelValues("self_pairing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.PairingsGenerated))
	assert.Equal(t, 1, testutil.CollectAndCount(svc.StandingsDuration))
}

func TestMetricsHandlerServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)
	svc.IncMatchesReported()

	rr := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/metrics", nil)
	require.NoError(t, err)
	NewMetricsHandler(reg).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "swiss_matches_reported_total 1")
}

func TestMockRecordsCalls(t *testing.T) {
	m := NewMock()
	m.IncMatchRejected("duplicate")
	m.IncSlackNotifSent()
	m.ObserveStandingsDuration(0.1)

	assert.Equal(t, 1, m.MatchRejections("duplicate"))
	assert.Equal(t, 0, m.MatchRejections("self_pairing"))
	assert.Equal(t, 1, m.SlackNotifSent())
	assert.Equal(t, 1, m.StandingsQueries())
}
