package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-ledger/internal/tournament"
)

// respondWithSlackMsg is a helper to write a formatted Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// StandingsCommandHandler returns a handler for the /standings Slack command.
func (s *Server) StandingsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.Ledger.PlayerStandings(r.Context())
		if err != nil {
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			requestLogger(r).Error("Failed to get standings from ledger", "error", err)
			return
		}

		msg, err := s.Notifier.FormatStandingsResponse(standings)
		if err != nil {
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			requestLogger(r).Error("Failed to format standings", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

// PairingsCommandHandler returns a handler for the /pairings Slack command.
// An odd field is answered in the channel rather than as an HTTP error.
func (s *Server) PairingsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pairings, err := s.Ledger.SwissPairings(r.Context())
		var msg any
		switch {
		case errors.Is(err, tournament.ErrOddPlayerCount):
			msg, err = s.Notifier.FormatErrorResponse("Pairings need an even number of players. Register or remove a player first.")
		case err != nil:
			http.Error(w, "Failed to generate pairings", http.StatusInternalServerError)
			requestLogger(r).Error("Failed to generate pairings", "error", err)
			return
		default:
			msg, err = s.Notifier.FormatPairingsResponse(pairings)
		}
		if err != nil {
			http.Error(w, "Failed to format pairings", http.StatusInternalServerError)
			requestLogger(r).Error("Failed to format pairings", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

// PlayerCommandHandler returns a handler for the /player Slack command.
func (s *Server) PlayerCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		playerName := strings.TrimSpace(r.FormValue("text"))
		if playerName == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		requestLogger(r).Info("Received player command", "player", playerName)

		standing, err := s.Ledger.GetStandingByName(r.Context(), playerName)
		var msg any
		switch {
		case errors.Is(err, tournament.ErrPlayerNotFound):
			requestLogger(r).Warn("Could not find player", "player", playerName)
			msg, err = s.Notifier.FormatPlayerNotFoundResponse(playerName)
		case err != nil:
			http.Error(w, "Failed to get player standing", http.StatusInternalServerError)
			requestLogger(r).Error("Failed to get player standing", "error", err)
			return
		default:
			msg, err = s.Notifier.FormatPlayerStandingResponse(standing, playerName)
		}
		if err != nil {
			http.Error(w, "Failed to format player standing", http.StatusInternalServerError)
			requestLogger(r).Error("Failed to format player standing", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}
