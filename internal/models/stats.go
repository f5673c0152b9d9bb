package models

// Stat names one counter of a PlayerMatchRecord.
type Stat string

const (
	StatGoals           Stat = "goals"
	StatAssists         Stat = "assists"
	StatOwnGoals        Stat = "own_goals"
	StatYellowCards     Stat = "yellow_cards"
	StatBlueCards       Stat = "blue_cards"
	StatRedCards        Stat = "red_cards"
	StatPenaltiesMissed Stat = "penalties_missed"
	StatFouls           Stat = "fouls"
	StatDifficultSaves  Stat = "difficult_saves"
	StatPenaltySaves    Stat = "penalty_saves"
)

// OutfieldStats are the counters every player has, in form order.
var OutfieldStats = []Stat{
	StatGoals, StatAssists, StatOwnGoals, StatYellowCards, StatBlueCards,
	StatRedCards, StatPenaltiesMissed, StatFouls,
}

// GoalkeeperStats are entered only in the goalkeeper slot.
var GoalkeeperStats = []Stat{StatDifficultSaves, StatPenaltySaves}

func (s Stat) GoalkeeperOnly() bool {
	return s == StatDifficultSaves || s == StatPenaltySaves
}

func (s Stat) Valid() bool {
	for _, k := range OutfieldStats {
		if k == s {
			return true
		}
	}
	return s.GoalkeeperOnly()
}

// Label is the Portuguese caption used by the form.
func (s Stat) Label() string {
	switch s {
	case StatGoals:
		return "Gols"
	case StatAssists:
		return "Assistências"
	case StatOwnGoals:
		return "Gol Contra"
	case StatYellowCards:
		return "Cartão Amarelo"
	case StatBlueCards:
		return "Cartão Azul"
	case StatRedCards:
		return "Cartão Vermelho"
	case StatPenaltiesMissed:
		return "Pênalti Perdido"
	case StatFouls:
		return "Faltas Cometidas"
	case StatDifficultSaves:
		return "Defesas Difíceis"
	case StatPenaltySaves:
		return "Defesas de Pênalti"
	}
	return string(s)
}

// PlayerMatchRecord holds one player's scouting counters for one match.
// DifficultSaves, PenaltySaves and GoalsConceded are nil outside the goalkeeper role.
type PlayerMatchRecord struct {
	Player          string `json:"player"`
	Position        string `json:"position"`
	Team            string `json:"team"`
	Goals           int    `json:"goals"`
	Assists         int    `json:"assists"`
	OwnGoals        int    `json:"own_goals"`
	YellowCards     int    `json:"yellow_cards"`
	BlueCards       int    `json:"blue_cards"`
	RedCards        int    `json:"red_cards"`
	PenaltiesMissed int    `json:"penalties_missed"`
	Fouls           int    `json:"fouls"`
	DifficultSaves  *int   `json:"difficult_saves"`
	PenaltySaves    *int   `json:"penalty_saves"`
	GoalsConceded   *int   `json:"goals_conceded"`
}

func (r PlayerMatchRecord) IsGoalkeeper() bool {
	return r.Position == PositionGK
}

// Clone returns a deep copy; the pointer fields are not shared.
func (r PlayerMatchRecord) Clone() PlayerMatchRecord {
	c := r
	c.DifficultSaves = cloneInt(r.DifficultSaves)
	c.PenaltySaves = cloneInt(r.PenaltySaves)
	c.GoalsConceded = cloneInt(r.GoalsConceded)
	return c
}

// Get returns the value of a counter; absent goalkeeper fields read as 0.
func (r PlayerMatchRecord) Get(s Stat) int {
	switch s {
	case StatGoals:
		return r.Goals
	case StatAssists:
		return r.Assists
	case StatOwnGoals:
		return r.OwnGoals
	case StatYellowCards:
		return r.YellowCards
	case StatBlueCards:
		return r.BlueCards
	case StatRedCards:
		return r.RedCards
	case StatPenaltiesMissed:
		return r.PenaltiesMissed
	case StatFouls:
		return r.Fouls
	case StatDifficultSaves:
		return deref(r.DifficultSaves)
	case StatPenaltySaves:
		return deref(r.PenaltySaves)
	}
	return 0
}

// Set writes a counter in place. Callers own r.
func (r *PlayerMatchRecord) Set(s Stat, v int) {
	switch s {
	case StatGoals:
		r.Goals = v
	case StatAssists:
		r.Assists = v
	case StatOwnGoals:
		r.OwnGoals = v
	case StatYellowCards:
		r.YellowCards = v
	case StatBlueCards:
		r.BlueCards = v
	case StatRedCards:
		r.RedCards = v
	case StatPenaltiesMissed:
		r.PenaltiesMissed = v
	case StatFouls:
		r.Fouls = v
	case StatDifficultSaves:
		r.DifficultSaves = IntPtr(v)
	case StatPenaltySaves:
		r.PenaltySaves = IntPtr(v)
	}
}

func IntPtr(v int) *int { return &v }

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	return IntPtr(*p)
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
