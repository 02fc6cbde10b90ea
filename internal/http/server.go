package http

import (
	"net/http"

	"github.com/mauv0809/swiss-ledger/internal/config"
	"github.com/mauv0809/swiss-ledger/internal/notifier"
	"github.com/mauv0809/swiss-ledger/internal/processor"
	"github.com/mauv0809/swiss-ledger/internal/pubsub"
	"github.com/mauv0809/swiss-ledger/internal/tournament"
)

func NewServer(ledger tournament.Ledger, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Ledger:         ledger,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Slack commands additionally verify the request signature.
	slackVerify := slackSignatureMiddleware(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("POST /players", Chain(s.RegisterPlayerHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/count", Chain(s.CountPlayersHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /players", Chain(s.DeletePlayersHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches", Chain(s.ReportMatchHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /matches", Chain(s.DeleteMatchesHandler(), paramsMiddleware))

	s.Router.Handle("GET /standings", Chain(s.StandingsHandler(), paramsMiddleware))
	s.Router.Handle("GET /pairings", Chain(s.PairingsHandler(), paramsMiddleware))

	s.Router.Handle("POST /pubsub/match-reported", Chain(s.MatchReportedPushHandler(), paramsMiddleware))
	s.Router.Handle("POST /pubsub/round-paired", Chain(s.RoundPairedPushHandler(), paramsMiddleware))

	s.Router.Handle("POST /slack/command/standings", Chain(s.StandingsCommandHandler(), paramsMiddleware, slackVerify))
	s.Router.Handle("POST /slack/command/pairings", Chain(s.PairingsCommandHandler(), paramsMiddleware, slackVerify))
	s.Router.Handle("POST /slack/command/player", Chain(s.PlayerCommandHandler(), paramsMiddleware, slackVerify))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
