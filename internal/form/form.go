// Package form holds the match form as immutable snapshots. Every edit returns a new
// State and leaves the receiver untouched.
package form

import (
	"errors"
	"fmt"

	"mr-league/internal/models"
	"mr-league/internal/roster"
)

var (
	ErrNegative       = errors.New("form: value must be a non-negative integer")
	ErrGoalkeeperOnly = errors.New("form: stat is only entered for the goalkeeper")
	ErrSlot           = errors.New("form: no such player slot")
	ErrStat           = errors.New("form: unknown stat")
)

// GoalkeeperSlot is slot 0 of every team; outfield players follow from slot 1.
const GoalkeeperSlot = 0

// TeamSheet is one team's block of the form.
type TeamSheet struct {
	Team       string
	Goalkeeper models.PlayerMatchRecord
	Outfield   []models.PlayerMatchRecord
}

func (t TeamSheet) clone() TeamSheet {
	c := TeamSheet{Team: t.Team, Goalkeeper: t.Goalkeeper.Clone()}
	c.Outfield = make([]models.PlayerMatchRecord, len(t.Outfield))
	for i, r := range t.Outfield {
		c.Outfield[i] = r.Clone()
	}
	return c
}

// Records returns the goalkeeper first, then the outfield players.
func (t TeamSheet) Records() []models.PlayerMatchRecord {
	out := make([]models.PlayerMatchRecord, 0, 1+len(t.Outfield))
	out = append(out, t.Goalkeeper.Clone())
	for _, r := range t.Outfield {
		out = append(out, r.Clone())
	}
	return out
}

func (t TeamSheet) Slots() int { return 1 + len(t.Outfield) }

// State is one snapshot of the whole form.
type State struct {
	Match  models.MatchContext
	Mobile bool
	teams  [2]TeamSheet
}

// New builds the form for match. An empty goalkeeper name picks the first player of the
// directory, like an untouched selector would.
func New(match models.MatchContext, idx *roster.Index, gk1, gk2 string) State {
	s := State{Match: match}
	s.teams[models.Team1] = newSheet(match.Round, match.Team1, gk1, idx)
	s.teams[models.Team2] = newSheet(match.Round, match.Team2, gk2, idx)
	return s
}

func newSheet(round int, team, goalkeeper string, idx *roster.Index) TeamSheet {
	if goalkeeper == "" {
		if players := idx.Players(); len(players) > 0 {
			goalkeeper = players[0]
		}
	}
	sheet := TeamSheet{Team: team, Goalkeeper: newGoalkeeper(goalkeeper, team, idx)}
	for _, name := range idx.RosterFor(round, team) {
		sheet.Outfield = append(sheet.Outfield, models.PlayerMatchRecord{
			Player:   name,
			Position: idx.PositionOf(name, false),
			Team:     team,
		})
	}
	return sheet
}

func newGoalkeeper(name, team string, idx *roster.Index) models.PlayerMatchRecord {
	return models.PlayerMatchRecord{
		Player:         name,
		Position:       idx.PositionOf(name, true),
		Team:           team,
		DifficultSaves: models.IntPtr(0),
		PenaltySaves:   models.IntPtr(0),
	}
}

func (s State) clone() State {
	c := s
	c.teams[0] = s.teams[0].clone()
	c.teams[1] = s.teams[1].clone()
	return c
}

// Team returns a copy of one side's sheet.
func (s State) Team(side models.Side) TeamSheet {
	return s.teams[side].clone()
}

// Records returns copies of one side's records, goalkeeper first.
func (s State) Records(side models.Side) []models.PlayerMatchRecord {
	return s.teams[side].Records()
}

// WithStat sets one counter of one player.
func (s State) WithStat(side models.Side, slot int, stat models.Stat, value int) (State, error) {
	if !side.Valid() || slot < 0 || slot >= s.teams[side].Slots() {
		return s, fmt.Errorf("%w: team %d slot %d", ErrSlot, side+1, slot)
	}
	if !stat.Valid() {
		return s, fmt.Errorf("%w: %q", ErrStat, stat)
	}
	if value < 0 {
		return s, fmt.Errorf("%w: %s = %d", ErrNegative, stat, value)
	}
	if stat.GoalkeeperOnly() && slot != GoalkeeperSlot {
		return s, fmt.Errorf("%w: %s", ErrGoalkeeperOnly, stat)
	}

	next := s.clone()
	sheet := &next.teams[side]
	if slot == GoalkeeperSlot {
		sheet.Goalkeeper.Set(stat, value)
	} else {
		sheet.Outfield[slot-1].Set(stat, value)
	}
	return next, nil
}

// WithGoalkeeper swaps the goalkeeper and keeps the counters already typed in.
func (s State) WithGoalkeeper(side models.Side, name string, idx *roster.Index) State {
	next := s.clone()
	gk := &next.teams[side].Goalkeeper
	gk.Player = name
	gk.Position = idx.PositionOf(name, true)
	return next
}

// WithMatch replaces the match metadata. A side whose team or round changed gets a fresh
// outfield list from the roster; its goalkeeper keeps the counters.
func (s State) WithMatch(match models.MatchContext, idx *roster.Index) State {
	next := s.clone()
	for _, side := range []models.Side{models.Team1, models.Team2} {
		team := match.Team(side)
		if team == s.Match.Team(side) && match.Round == s.Match.Round {
			continue
		}
		fresh := newSheet(match.Round, team, next.teams[side].Goalkeeper.Player, idx)
		fresh.Goalkeeper = next.teams[side].Goalkeeper
		fresh.Goalkeeper.Team = team
		next.teams[side] = fresh
	}
	next.Match = match
	return next
}

// WithMobile toggles the stacked layout.
func (s State) WithMobile(mobile bool) State {
	next := s.clone()
	next.Mobile = mobile
	return next
}
