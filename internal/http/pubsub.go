package http

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/mauv0809/swiss-ledger/internal/pubsub"
)

// MatchReportedPushHandler receives match-reported events from a Pub/Sub push subscription.
func (s *Server) MatchReportedPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event pubsub.MatchReportedEvent
		if !s.decodePush(w, r, &event) {
			return
		}
		if err := s.Processor.HandleMatchReported(event, isDryRunFromContext(r)); err != nil {
			requestLogger(r).Error("Failed to announce match result", "error", err, "eventID", event.EventID)
			http.Error(w, "Failed to announce match result", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// RoundPairedPushHandler receives round-paired events from a Pub/Sub push subscription.
func (s *Server) RoundPairedPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event pubsub.RoundPairedEvent
		if !s.decodePush(w, r, &event) {
			return
		}
		if err := s.Processor.HandleRoundPaired(event, isDryRunFromContext(r)); err != nil {
			requestLogger(r).Error("Failed to announce pairings", "error", err, "eventID", event.EventID)
			http.Error(w, "Failed to announce pairings", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// decodePush unwraps a push envelope into event. It writes the error
// response itself and reports whether decoding succeeded.
func (s *Server) decodePush(w http.ResponseWriter, r *http.Request, event any) bool {
	if s.pubsub == nil {
		http.Error(w, "Pub/Sub is not configured", http.StatusServiceUnavailable)
		return false
	}
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		requestLogger(r).Error("Failed to read request body", "error", err)
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return false
	}
	requestLogger(r).Debug("Received push message", "path", r.URL.Path, "body", string(bodyBytes))

	var envelope pushEnvelope
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		requestLogger(r).Error("Failed to unmarshal wrapper JSON", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		requestLogger(r).Error("Failed to decode base64 data", "error", err)
		http.Error(w, "Invalid base64 data", http.StatusBadRequest)
		return false
	}
	if err := s.pubsub.ProcessMessage(rawData, event); err != nil {
		http.Error(w, "Invalid message payload", http.StatusBadRequest)
		return false
	}
	requestLogger(r).Debug("Decoded push message", "subscription", envelope.Subscription, "messageID", envelope.Message.ID)
	return true
}
