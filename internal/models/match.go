package models

import "time"

// Side selects team1 or team2 of a match.
type Side int

const (
	Team1 Side = iota
	Team2
)

func (s Side) Opponent() Side {
	if s == Team1 {
		return Team2
	}
	return Team1
}

func (s Side) Valid() bool { return s == Team1 || s == Team2 }

// MatchContext is the match metadata entered at the top of the form.
type MatchContext struct {
	Date    time.Time `json:"date"`
	Round   int       `json:"round"`
	MatchID int       `json:"match_id"`
	Team1   string    `json:"team1"`
	Team2   string    `json:"team2"`
}

func (m MatchContext) Team(s Side) string {
	if s == Team2 {
		return m.Team2
	}
	return m.Team1
}

// Outcome codes match the ledger's historical V/E/D values.
type Outcome string

const (
	Win  Outcome = "V"
	Draw Outcome = "E"
	Loss Outcome = "D"
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "Win"
	case Draw:
		return "Draw"
	case Loss:
		return "Loss"
	}
	return string(o)
}

// MatchResult is derived from both teams' records.
type MatchResult struct {
	Score1      int     `json:"score1"`
	Score2      int     `json:"score2"`
	Outcome1    Outcome `json:"outcome1"`
	Outcome2    Outcome `json:"outcome2"`
	CleanSheet1 bool    `json:"clean_sheet1"`
	CleanSheet2 bool    `json:"clean_sheet2"`
}

func (r MatchResult) Score(s Side) int {
	if s == Team2 {
		return r.Score2
	}
	return r.Score1
}

func (r MatchResult) Outcome(s Side) Outcome {
	if s == Team2 {
		return r.Outcome2
	}
	return r.Outcome1
}

func (r MatchResult) CleanSheet(s Side) bool {
	if s == Team2 {
		return r.CleanSheet2
	}
	return r.CleanSheet1
}

// CleanSheetWin is true only for a shutout win.
func (r MatchResult) CleanSheetWin(s Side) bool {
	return r.Outcome(s) == Win && r.CleanSheet(s)
}

// Row is one ledger line: positional scalar cells, nil for absent values.
type Row []any
