package http

import (
	"net/http"

	"github.com/mauv0809/swiss-ledger/internal/config"
	"github.com/mauv0809/swiss-ledger/internal/notifier"
	"github.com/mauv0809/swiss-ledger/internal/processor"
	"github.com/mauv0809/swiss-ledger/internal/pubsub"
	"github.com/mauv0809/swiss-ledger/internal/tournament"
)

type Server struct {
	Ledger         tournament.Ledger
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

// Name must be present but may be empty.
type registerPlayerRequest struct {
	Name *string `json:"name" validate:"required"`
}

type reportMatchRequest struct {
	Winner int64 `json:"winner" validate:"required,gt=0"`
	Loser  int64 `json:"loser" validate:"required,gt=0"`
}

type countResponse struct {
	Count int `json:"count"`
}

// pushEnvelope is the body Pub/Sub POSTs to push subscriptions.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID   string `json:"messageId"`
		Data string `json:"data"` // base64-encoded MessagePack payload
	} `json:"message"`
}
