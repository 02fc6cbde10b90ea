package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-ledger/internal/tournament"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestLogger(r).Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) RegisterPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerPlayerRequest
		if err := decodeAndValidate(r, &req); err != nil {
			requestLogger(r).Warn("Rejected register request", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		player, err := s.Ledger.RegisterPlayer(r.Context(), *req.Name)
		if err != nil {
			respondWithError(w, r, "Failed to register player", err)
			return
		}
		respondWithJSON(w, http.StatusCreated, player)
	}
}

func (s *Server) CountPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := s.Ledger.CountPlayers(r.Context())
		if err != nil {
			respondWithError(w, r, "Failed to count players", err)
			return
		}
		respondWithJSON(w, http.StatusOK, countResponse{Count: count})
	}
}

func (s *Server) DeletePlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestLogger(r).Info("Received request to delete all players")
		if err := s.Ledger.DeletePlayers(r.Context()); err != nil {
			respondWithError(w, r, "Failed to delete players", err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Players deleted!")
	}
}

func (s *Server) ReportMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reportMatchRequest
		if err := decodeAndValidate(r, &req); err != nil {
			requestLogger(r).Warn("Rejected match report", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		match, err := s.Processor.ReportMatch(r.Context(), req.Winner, req.Loser, isDryRunFromContext(r))
		if err != nil {
			respondWithError(w, r, "Failed to report match", err)
			return
		}
		respondWithJSON(w, http.StatusCreated, match)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Ledger.ListMatches(r.Context())
		if err != nil {
			respondWithError(w, r, "Failed to get matches", err)
			return
		}
		respondWithJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) DeleteMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestLogger(r).Info("Received request to delete all matches")
		if err := s.Ledger.DeleteMatches(r.Context()); err != nil {
			respondWithError(w, r, "Failed to delete matches", err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Matches deleted!")
	}
}

// StandingsHandler returns the ranked standings. With announce=true they are
// also posted to Slack.
func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			standings []tournament.Standing
			err       error
		)
		if r.URL.Query().Get("announce") == "true" {
			standings, err = s.Processor.AnnounceStandings(r.Context(), isDryRunFromContext(r))
		} else {
			standings, err = s.Ledger.PlayerStandings(r.Context())
		}
		if err != nil {
			respondWithError(w, r, "Failed to get standings", err)
			return
		}
		respondWithJSON(w, http.StatusOK, standings)
	}
}

// PairingsHandler returns the next round. With announce=true the round is
// also posted to Slack.
func (s *Server) PairingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			pairings []tournament.Pairing
			err      error
		)
		if r.URL.Query().Get("announce") == "true" {
			pairings, err = s.Processor.AnnouncePairings(r.Context(), isDryRunFromContext(r))
		} else {
			pairings, err = s.Ledger.SwissPairings(r.Context())
		}
		if err != nil {
			respondWithError(w, r, "Failed to generate pairings", err)
			return
		}
		respondWithJSON(w, http.StatusOK, pairings)
	}
}

// statusFor maps ledger errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tournament.ErrInvalidMatch):
		return http.StatusBadRequest
	case errors.Is(err, tournament.ErrDuplicateMatch), errors.Is(err, tournament.ErrOddPlayerCount):
		return http.StatusConflict
	case errors.Is(err, tournament.ErrPlayerNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondWithError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		requestLogger(r).Error(msg, "error", err)
		http.Error(w, msg, status)
		return
	}
	requestLogger(r).Info(msg, "error", err, "status", status)
	http.Error(w, err.Error(), status)
}

func respondWithJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}
