package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	PlayersRegistered  prometheus.Counter
	MatchesReported    prometheus.Counter
	MatchRejections    *prometheus.CounterVec
	PairingsGenerated  prometheus.Counter
	StandingsDuration  prometheus.Histogram
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
