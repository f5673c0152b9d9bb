package models

import (
	"fmt"
	"time"
)

// RosterPlayer is the SQL form of the roster table.
type RosterPlayer struct {
	ID       uint   `gorm:"primaryKey"`
	Player   string `gorm:"size:120;uniqueIndex;not null"`
	Position string `gorm:"size:16;not null"`
}

// RoundLineup is the SQL form of the lineup table.
type RoundLineup struct {
	ID     uint   `gorm:"primaryKey"`
	Round  int    `gorm:"index:idx_round_team;not null"`
	Team   string `gorm:"size:32;index:idx_round_team;not null"`
	Player string `gorm:"size:120;not null"`
}

// LedgerEntry is the SQL form of one ledger row. Columns follow the row order.
type LedgerEntry struct {
	ID              uint   `gorm:"primaryKey"`
	MatchDate       string `gorm:"size:10;not null"`
	League          string `gorm:"size:32;not null"`
	Round           int    `gorm:"not null"`
	MatchID         int    `gorm:"index;not null"`
	Player          string `gorm:"size:120;not null"`
	Position        string `gorm:"size:16"`
	Team            string `gorm:"size:32;not null"`
	Win             int
	Draw            int
	Loss            int
	Goals           int
	Assists         int
	CleanSheet      int
	OwnGoals        int
	YellowCards     int
	BlueCards       int
	RedCards        int
	PenaltiesMissed int
	GoalsConceded   *int
	DifficultSaves  *int
	PenaltySaves    *int
	Fouls           int
	CreatedAt       time.Time
}

// LedgerEntryFromRow decodes a 22-cell row.
func LedgerEntryFromRow(row Row) (LedgerEntry, error) {
	if len(row) != 22 {
		return LedgerEntry{}, fmt.Errorf("ledger row has %d cells, want 22", len(row))
	}
	d := rowDecoder{row: row}
	e := LedgerEntry{
		MatchDate:       d.str(0),
		League:          d.str(1),
		Round:           d.num(2),
		MatchID:         d.num(3),
		Player:          d.str(4),
		Position:        d.str(5),
		Team:            d.str(6),
		Win:             d.num(7),
		Draw:            d.num(8),
		Loss:            d.num(9),
		Goals:           d.num(10),
		Assists:         d.num(11),
		CleanSheet:      d.num(12),
		OwnGoals:        d.num(13),
		YellowCards:     d.num(14),
		BlueCards:       d.num(15),
		RedCards:        d.num(16),
		PenaltiesMissed: d.num(17),
		GoalsConceded:   d.optInt(18),
		DifficultSaves:  d.optInt(19),
		PenaltySaves:    d.optInt(20),
		Fouls:           d.num(21),
	}
	return e, d.err
}

// Row re-encodes the entry in ledger column order.
func (e LedgerEntry) Row() Row {
	return Row{
		e.MatchDate, e.League, e.Round, e.MatchID, e.Player, e.Position, e.Team,
		e.Win, e.Draw, e.Loss, e.Goals, e.Assists, e.CleanSheet, e.OwnGoals,
		e.YellowCards, e.BlueCards, e.RedCards, e.PenaltiesMissed,
		optCell(e.GoalsConceded), optCell(e.DifficultSaves), optCell(e.PenaltySaves), e.Fouls,
	}
}

func optCell(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

type rowDecoder struct {
	row Row
	err error
}

func (d *rowDecoder) fail(i int, want string) {
	if d.err == nil {
		d.err = fmt.Errorf("ledger cell %d: want %s, got %T", i+1, want, d.row[i])
	}
}

func (d *rowDecoder) str(i int) string {
	s, ok := d.row[i].(string)
	if !ok {
		d.fail(i, "string")
	}
	return s
}

func (d *rowDecoder) num(i int) int {
	n, ok := d.row[i].(int)
	if !ok {
		d.fail(i, "int")
	}
	return n
}

func (d *rowDecoder) optInt(i int) *int {
	if d.row[i] == nil {
		return nil
	}
	n := d.num(i)
	return &n
}
