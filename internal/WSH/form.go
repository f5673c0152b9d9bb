package wsh

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/hlog"

	"mr-league/internal/form"
	mtH "mr-league/internal/matchHandlers"
	"mr-league/internal/models"
	"mr-league/internal/roster"
)

const (
	msgSuccess = "✅ Todos os jogadores da partida foram registrados com sucesso!"
	msgFailure = "❌ Não foi possível registrar a partida. Tente novamente."
)

type fieldView struct {
	Name  string
	Stat  models.Stat
	Value int
}

type slotView struct {
	Slot     int
	Player   string
	Position string
	Fields   []fieldView
}

type sideView struct {
	Number     int
	Team       string
	Goalkeeper slotView
	Outfield   []slotView
}

type pageData struct {
	League     string
	Date       string
	Round      int
	MatchID    int
	Team1      string
	Team2      string
	Mobile     bool
	Teams      []string
	Players    []string
	Sides      []sideView
	Scoreboard mtH.Scoreboard
	Success    string
	Error      string
}

// ServeForm renders the form; a POST re-renders it with the edited values.
func (s *Server) ServeForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return
	}
	req, err := parseFormRequest(r.Form)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, err)
		return
	}

	state, idx, err := s.Matches.NewForm(r.Context(), req)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, err)
		return
	}
	s.render(w, r, http.StatusOK, s.page(state, idx))
}

// SubmitForm registers the match. Any write failure shows one generic message.
func (s *Server) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return
	}
	req, err := parseFormRequest(r.Form)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, err)
		return
	}
	state, idx, err := s.Matches.NewForm(r.Context(), req)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, err)
		return
	}

	if _, err := s.Matches.Submit(r.Context(), state); err != nil {
		page := s.page(state, idx)
		page.Error = msgFailure
		s.render(w, r, http.StatusInternalServerError, page)
		return
	}

	fresh, idx, err := s.Matches.NewForm(r.Context(), mtH.FormRequest{
		Date:   req.Date,
		Round:  state.Match.Round,
		Team1:  state.Match.Team1,
		Team2:  state.Match.Team2,
		Mobile: state.Mobile,
	})
	if err != nil {
		s.renderError(w, r, http.StatusInternalServerError, err)
		return
	}
	page := s.page(fresh, idx)
	page.Success = msgSuccess
	s.render(w, r, http.StatusOK, page)
}

func (s *Server) page(state form.State, idx *roster.Index) pageData {
	m := state.Match
	p := pageData{
		League:     s.League,
		Date:       m.Date.Format("2006-01-02"),
		Round:      m.Round,
		MatchID:    m.MatchID,
		Team1:      m.Team1,
		Team2:      m.Team2,
		Mobile:     state.Mobile,
		Teams:      s.Teams,
		Players:    idx.Players(),
		Scoreboard: s.Matches.Preview(state),
	}
	for _, side := range []models.Side{models.Team1, models.Team2} {
		sheet := state.Team(side)
		n := int(side) + 1
		sv := sideView{Number: n, Team: sheet.Team}
		sv.Goalkeeper = slotFor(n, form.GoalkeeperSlot, sheet.Goalkeeper, true)
		for i, rec := range sheet.Outfield {
			sv.Outfield = append(sv.Outfield, slotFor(n, i+1, rec, false))
		}
		p.Sides = append(p.Sides, sv)
	}
	return p
}

func slotFor(team, slot int, rec models.PlayerMatchRecord, goalkeeper bool) slotView {
	v := slotView{Slot: slot, Player: rec.Player, Position: rec.Position}
	stats := models.OutfieldStats
	if goalkeeper {
		stats = append(append([]models.Stat{}, models.OutfieldStats...), models.GoalkeeperStats...)
	}
	for _, st := range stats {
		v.Fields = append(v.Fields, fieldView{Name: statField(team, slot, st), Stat: st, Value: rec.Get(st)})
	}
	return v
}

func statField(team, slot int, st models.Stat) string {
	return fmt.Sprintf("s_%d_%d_%s", team, slot, st)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "form.html", data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("render form")
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, err error) {
	hlog.FromRequest(r).Warn().Err(err).Msg("form rejected")
	msg := "Dados inválidos."
	if status >= 500 {
		msg = msgFailure
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	s.tmpl.ExecuteTemplate(w, "error.html", map[string]string{"Message": msg, "League": s.League})
}

// parseFormRequest reads the HTML form fields. The prev_* fields name the form the
// counters were typed into.
func parseFormRequest(v url.Values) (mtH.FormRequest, error) {
	req := mtH.FormRequest{
		Date:        v.Get("date"),
		Team1:       v.Get("team1"),
		Team2:       v.Get("team2"),
		Goalkeeper1: v.Get("gk1"),
		Goalkeeper2: v.Get("gk2"),
		Mobile:      v.Get("mobile") != "",
		PrevTeam1:   v.Get("prev_team1"),
		PrevTeam2:   v.Get("prev_team2"),
	}
	var err error
	if req.Round, err = optionalInt(v.Get("round")); err != nil {
		return req, fmt.Errorf("%w: round", mtH.ErrInvalidInput)
	}
	if req.MatchID, err = optionalInt(v.Get("match_id")); err != nil {
		return req, fmt.Errorf("%w: match_id", mtH.ErrInvalidInput)
	}
	if req.PrevRound, err = optionalInt(v.Get("prev_round")); err != nil {
		return req, fmt.Errorf("%w: prev_round", mtH.ErrInvalidInput)
	}

	for key, vals := range v {
		if !strings.HasPrefix(key, "s_") || len(vals) == 0 || strings.TrimSpace(vals[0]) == "" {
			continue
		}
		parts := strings.SplitN(key, "_", 4)
		if len(parts) != 4 {
			return req, fmt.Errorf("%w: field %s", mtH.ErrInvalidInput, key)
		}
		team, err1 := strconv.Atoi(parts[1])
		slot, err2 := strconv.Atoi(parts[2])
		value, err3 := strconv.Atoi(strings.TrimSpace(vals[0]))
		if err := errors.Join(err1, err2, err3); err != nil {
			return req, fmt.Errorf("%w: field %s: %v", mtH.ErrInvalidInput, key, err)
		}
		req.Stats = append(req.Stats, mtH.StatEntry{Team: team, Slot: slot, Stat: models.Stat(parts[3]), Value: value})
	}
	return req, nil
}

func optionalInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
