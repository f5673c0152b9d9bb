package matchhandlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"mr-league/internal/form"
	"mr-league/internal/ledger"
	"mr-league/internal/models"
	"mr-league/internal/result"
	"mr-league/internal/roster"
)

var (
	ErrInvalidInput = errors.New("invalid match input")
	ErrUnknownTeam  = errors.New("unknown team")
)

// Notifier is told about every fully written submission.
type Notifier interface {
	NotifySubmission(ctx context.Context, sub Submission) error
}

// StatEntry sets one counter. Team is 1 or 2; slot 0 is the goalkeeper.
type StatEntry struct {
	Team  int         `json:"team"`
	Slot  int         `json:"slot"`
	Stat  models.Stat `json:"stat"`
	Value int         `json:"value"`
}

// FormRequest is everything the form posts. Zero values fall back to defaults: today,
// round 1, the suggested match id, the first team, the first directory player.
// PrevRound and PrevTeam* describe the form the counters were typed into; when set,
// counters of a side that changed since then are carried over by form.State.WithMatch.
type FormRequest struct {
	Date        string      `json:"date"`
	Round       int         `json:"round"`
	MatchID     int         `json:"match_id"`
	Team1       string      `json:"team1"`
	Team2       string      `json:"team2"`
	Goalkeeper1 string      `json:"goalkeeper1"`
	Goalkeeper2 string      `json:"goalkeeper2"`
	Mobile      bool        `json:"mobile"`
	Stats       []StatEntry `json:"stats"`
	PrevRound   int         `json:"prev_round,omitempty"`
	PrevTeam1   string      `json:"prev_team1,omitempty"`
	PrevTeam2   string      `json:"prev_team2,omitempty"`
}

// Scoreboard is the live score line.
type Scoreboard struct {
	Team1  string             `json:"team1"`
	Team2  string             `json:"team2"`
	Result models.MatchResult `json:"result"`
}

func (s Scoreboard) String() string {
	return fmt.Sprintf("%s %d x %d %s", s.Team1, s.Result.Score1, s.Result.Score2, s.Team2)
}

// Submission describes one submit action. ID is only used to correlate logs.
type Submission struct {
	ID          string              `json:"id"`
	Match       models.MatchContext `json:"match"`
	Result      models.MatchResult  `json:"result"`
	Rows        int                 `json:"rows"`
	Written     int                 `json:"written"`
	SubmittedAt time.Time           `json:"submitted_at"`
}

type Handler struct {
	Roster   *roster.Service
	Ledger   *ledger.Service
	Notifier Notifier
	League   string
	Teams    models.Teams

	now func() time.Time
}

func NewHandler(r *roster.Service, l *ledger.Service, n Notifier, league string, teams models.Teams) *Handler {
	return &Handler{Roster: r, Ledger: l, Notifier: n, League: league, Teams: teams, now: time.Now}
}

// NewForm builds a form snapshot from a request and applies the posted counters.
func (h *Handler) NewForm(ctx context.Context, req FormRequest) (form.State, *roster.Index, error) {
	idx := h.Roster.Index(ctx)

	match, err := h.matchContext(ctx, req)
	if err != nil {
		return form.State{}, idx, err
	}

	typed, err := h.previousMatch(match, req)
	if err != nil {
		return form.State{}, idx, err
	}

	state := form.New(typed, idx, "", "").WithMobile(req.Mobile)
	for side, name := range []string{req.Goalkeeper1, req.Goalkeeper2} {
		if strings.TrimSpace(name) != "" {
			state = state.WithGoalkeeper(models.Side(side), strings.TrimSpace(name), idx)
		}
	}
	for _, e := range req.Stats {
		side := models.Side(e.Team - 1)
		state, err = state.WithStat(side, e.Slot, e.Stat, e.Value)
		if err != nil {
			return state, idx, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	state = state.WithMatch(match, idx)

	for _, side := range []models.Side{models.Team1, models.Team2} {
		if state.Team(side).Goalkeeper.Player == "" {
			return state, idx, fmt.Errorf("%w: team %d has no goalkeeper", ErrInvalidInput, side+1)
		}
	}
	return state, idx, nil
}

// previousMatch is the match the posted counters belong to. Without Prev* fields it is
// match itself.
func (h *Handler) previousMatch(match models.MatchContext, req FormRequest) (models.MatchContext, error) {
	prev := match
	if req.PrevRound > 0 {
		prev.Round = req.PrevRound
	}
	var err error
	if strings.TrimSpace(req.PrevTeam1) != "" {
		if prev.Team1, err = h.team(req.PrevTeam1); err != nil {
			return prev, err
		}
	}
	if strings.TrimSpace(req.PrevTeam2) != "" {
		if prev.Team2, err = h.team(req.PrevTeam2); err != nil {
			return prev, err
		}
	}
	return prev, nil
}

func (h *Handler) matchContext(ctx context.Context, req FormRequest) (models.MatchContext, error) {
	m := models.MatchContext{Round: req.Round, MatchID: req.MatchID}

	if strings.TrimSpace(req.Date) == "" {
		now := h.now()
		m.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		d, err := time.Parse(ledger.DateLayout, strings.TrimSpace(req.Date))
		if err != nil {
			return m, fmt.Errorf("%w: date %q", ErrInvalidInput, req.Date)
		}
		m.Date = d
	}

	if m.Round < 1 {
		m.Round = 1
	}
	if m.MatchID < 1 {
		m.MatchID = h.Ledger.NextMatchID(ctx)
	}

	var err error
	if m.Team1, err = h.team(req.Team1); err != nil {
		return m, err
	}
	if m.Team2, err = h.team(req.Team2); err != nil {
		return m, err
	}
	return m, nil
}

// team resolves a selector value. The same team may be picked on both sides.
func (h *Handler) team(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return h.Teams[0], nil
	}
	if c := h.Teams.Canonical(name); c != "" {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTeam, name)
}

func (h *Handler) Preview(state form.State) Scoreboard {
	return Scoreboard{
		Team1:  state.Match.Team1,
		Team2:  state.Match.Team2,
		Result: result.Compute(state.Records(models.Team1), state.Records(models.Team2)),
	}
}

// Submit computes the result and appends one ledger row per player. Rows written before
// a failure stay written; the returned Submission reports how many.
func (h *Handler) Submit(ctx context.Context, state form.State) (*Submission, error) {
	team1 := state.Records(models.Team1)
	team2 := state.Records(models.Team2)

	res := result.Compute(team1, team2)
	team1 = result.WithGoalsConceded(team1, res.Score2)
	team2 = result.WithGoalsConceded(team2, res.Score1)
	rows := ledger.Materialize(h.League, state.Match, res, team1, team2)

	sub := &Submission{
		ID:          uuid.NewString(),
		Match:       state.Match,
		Result:      res,
		Rows:        len(rows),
		SubmittedAt: h.now(),
	}
	logger := log.With().
		Str("submission", sub.ID).
		Int("match_id", state.Match.MatchID).
		Int("round", state.Match.Round).
		Logger()

	written, err := h.Ledger.Append(ctx, rows)
	sub.Written = written
	if err != nil {
		logger.Error().Err(err).Int("written", written).Int("rows", len(rows)).Msg("match submission failed")
		return sub, err
	}
	logger.Info().
		Str("score", fmt.Sprintf("%s %d x %d %s", state.Match.Team1, res.Score1, res.Score2, state.Match.Team2)).
		Int("rows", written).
		Msg("match registered")

	if h.Notifier != nil {
		if err := h.Notifier.NotifySubmission(ctx, *sub); err != nil {
			logger.Warn().Err(err).Msg("submission notification failed")
		}
	}
	return sub, nil
}

// NextMatchID is exposed for the API and the bot.
func (h *Handler) NextMatchID(ctx context.Context) int {
	return h.Ledger.NextMatchID(ctx)
}
