package processor

import "github.com/mauv0809/swiss-ledger/internal/pubsub"

// Processor records results and announces rounds. Announcements travel as
// Pub/Sub events and come back through the push handlers; with no Pub/Sub
// client they are delivered in-process.
type Processor struct {
	ledger   Ledger
	pubsub   pubsub.PubSubClient
	notifier Notifier
}
