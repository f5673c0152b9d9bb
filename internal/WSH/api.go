package wsh

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"mr-league/internal/form"
	mtH "mr-league/internal/matchHandlers"
	"mr-league/internal/models"
)

func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "mr-league",
	})
}

func (s *Server) GetTeams(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"teams": s.Teams})
}

// GetPlayers lists the directory with positions.
func (s *Server) GetPlayers(w http.ResponseWriter, r *http.Request) {
	idx := s.Matches.Roster.Index(r.Context())
	players := make([]models.PlayerPosition, 0, idx.Len())
	for _, name := range idx.Players() {
		players = append(players, models.PlayerPosition{Player: name, Position: idx.PositionOf(name, false)})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"players": players,
		"count":   len(players),
	})
}

func (s *Server) GetRoster(w http.ResponseWriter, r *http.Request) {
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil || round < 1 {
		respondError(w, http.StatusBadRequest, "round must be a positive integer")
		return
	}
	team := s.Teams.Canonical(chi.URLParam(r, "team"))
	if team == "" {
		respondError(w, http.StatusNotFound, "unknown team")
		return
	}

	idx := s.Matches.Roster.Index(r.Context())
	players := idx.RosterFor(round, team)
	out := make([]models.PlayerPosition, 0, len(players))
	for _, p := range players {
		out = append(out, models.PlayerPosition{Player: p, Position: idx.PositionOf(p, false)})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"round":   round,
		"team":    team,
		"players": out,
	})
}

func (s *Server) GetNextMatchID(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]int{"next_id": s.Matches.NextMatchID(r.Context())})
}

// PreviewMatch returns the live score for a request without writing anything.
func (s *Server) PreviewMatch(w http.ResponseWriter, r *http.Request) {
	state, ok := s.decodeMatch(w, r)
	if !ok {
		return
	}
	sb := s.Matches.Preview(state)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"match":      state.Match,
		"scoreboard": sb.String(),
		"result":     sb.Result,
		"team1":      state.Records(models.Team1),
		"team2":      state.Records(models.Team2),
	})
}

func (s *Server) CreateMatch(w http.ResponseWriter, r *http.Request) {
	state, ok := s.decodeMatch(w, r)
	if !ok {
		return
	}
	sub, err := s.Matches.Submit(r.Context(), state)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "failed to register match",
			"written": sub.Written,
			"rows":    sub.Rows,
		})
		return
	}
	respondJSON(w, http.StatusCreated, sub)
}

func (s *Server) decodeMatch(w http.ResponseWriter, r *http.Request) (form.State, bool) {
	var req mtH.FormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return form.State{}, false
	}
	state, _, err := s.Matches.NewForm(r.Context(), req)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("match request rejected")
		status := http.StatusBadRequest
		if errors.Is(err, mtH.ErrUnknownTeam) {
			status = http.StatusUnprocessableEntity
		}
		respondError(w, status, err.Error())
		return form.State{}, false
	}
	return state, true
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
