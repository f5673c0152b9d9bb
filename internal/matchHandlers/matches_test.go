package matchhandlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"mr-league/internal/cache"
	"mr-league/internal/form"
	"mr-league/internal/ledger"
	"mr-league/internal/models"
	"mr-league/internal/roster"
)

type fakeTables struct {
	ids       []string
	rows      []models.Row
	failAt    int
	attempts  int
	noPlayers bool
}

func (f *fakeTables) Players(ctx context.Context) ([]models.PlayerPosition, error) {
	if f.noPlayers {
		return nil, nil
	}
	return []models.PlayerPosition{
		{Player: "Rafa", Position: "GK"},
		{Player: "Bruno", Position: "GK"},
		{Player: "Dudu", Position: "ZAG"},
		{Player: "Leo", Position: "ATA"},
		{Player: "Teco", Position: "MEI"},
	}, nil
}

func (f *fakeTables) Lineups(ctx context.Context) ([]models.LineupEntry, error) {
	return []models.LineupEntry{
		{Round: 3, Team: "AMARELO", Player: "Leo"},
		{Round: 3, Team: "PRETO", Player: "Dudu"},
		{Round: 3, Team: "PRETO", Player: "Teco"},
	}, nil
}

func (f *fakeTables) MatchIDs(ctx context.Context) ([]string, error) { return f.ids, nil }

func (f *fakeTables) AppendRow(ctx context.Context, row models.Row) error {
	f.attempts++
	if f.failAt != 0 && f.attempts == f.failAt {
		return errors.New("quota exceeded")
	}
	f.rows = append(f.rows, row)
	return nil
}

type recordingNotifier struct {
	subs []Submission
	err  error
}

func (n *recordingNotifier) NotifySubmission(ctx context.Context, sub Submission) error {
	n.subs = append(n.subs, sub)
	return n.err
}

func newTestHandler(tables *fakeTables, n Notifier) *Handler {
	h := NewHandler(
		roster.NewService(tables, cache.NewMemory(), time.Hour),
		ledger.NewService(tables),
		n,
		"LIGA",
		models.Teams{"AMARELO", "BRANCO", "VERMELHO", "PRETO"},
	)
	h.now = func() time.Time { return time.Date(2025, 6, 7, 21, 15, 0, 0, time.UTC) }
	return h
}

func shutoutRequest() FormRequest {
	return FormRequest{
		Date:        "2025-06-07",
		Round:       3,
		Team1:       "amarelo",
		Team2:       "PRETO",
		Goalkeeper1: "Rafa",
		Goalkeeper2: "Bruno",
		Stats: []StatEntry{
			{Team: 1, Slot: 1, Stat: models.StatGoals, Value: 2},
			{Team: 2, Slot: 2, Stat: models.StatOwnGoals, Value: 1},
			{Team: 2, Slot: 0, Stat: models.StatDifficultSaves, Value: 4},
		},
	}
}

func TestNewForm_Defaults(t *testing.T) {
	h := newTestHandler(&fakeTables{ids: []string{"3", "5", "abc", "2"}}, nil)

	state, idx, err := h.NewForm(context.Background(), FormRequest{})
	if err != nil {
		t.Fatalf("NewForm: %v", err)
	}
	if idx.Len() != 5 {
		t.Errorf("index players = %d", idx.Len())
	}
	m := state.Match
	if m.MatchID != 6 {
		t.Errorf("suggested match id = %d, want 6", m.MatchID)
	}
	if m.Round != 1 || m.Team1 != "AMARELO" || m.Team2 != "AMARELO" {
		t.Errorf("defaults = %+v", m)
	}
	if got := m.Date.Format("2006-01-02"); got != "2025-06-07" {
		t.Errorf("date = %s", got)
	}
}

func TestNewForm_OverrideMatchID(t *testing.T) {
	h := newTestHandler(&fakeTables{ids: []string{"9"}}, nil)
	state, _, err := h.NewForm(context.Background(), FormRequest{MatchID: 4})
	if err != nil {
		t.Fatal(err)
	}
	if state.Match.MatchID != 4 {
		t.Errorf("match id = %d, want user value 4", state.Match.MatchID)
	}
}

func TestNewForm_Errors(t *testing.T) {
	h := newTestHandler(&fakeTables{}, nil)

	tests := []struct {
		name string
		req  FormRequest
		want error
	}{
		{"bad date", FormRequest{Date: "07/06/2025"}, ErrInvalidInput},
		{"unknown team", FormRequest{Team2: "AZUL"}, ErrUnknownTeam},
		{"negative stat", FormRequest{Round: 3, Team1: "AMARELO", Stats: []StatEntry{{Team: 1, Slot: 1, Stat: models.StatFouls, Value: -2}}}, form.ErrNegative},
		{"bad team number", FormRequest{Stats: []StatEntry{{Team: 3, Slot: 0, Stat: models.StatGoals, Value: 1}}}, form.ErrSlot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := h.NewForm(context.Background(), tt.req); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewForm_ChangedSideKeepsGoalkeeperCounters(t *testing.T) {
	h := newTestHandler(&fakeTables{}, nil)
	req := FormRequest{
		Date:        "2025-06-07",
		Round:       3,
		Team1:       "AMARELO",
		Team2:       "PRETO",
		Goalkeeper1: "Rafa",
		Goalkeeper2: "Bruno",
		PrevRound:   3,
		PrevTeam1:   "PRETO",
		PrevTeam2:   "PRETO",
		Stats: []StatEntry{
			{Team: 1, Slot: 0, Stat: models.StatGoals, Value: 1},
			{Team: 1, Slot: 2, Stat: models.StatGoals, Value: 3},
			{Team: 2, Slot: 1, Stat: models.StatAssists, Value: 1},
		},
	}

	state, _, err := h.NewForm(context.Background(), req)
	if err != nil {
		t.Fatalf("NewForm: %v", err)
	}
	team1 := state.Team(models.Team1)
	if team1.Goalkeeper.Player != "Rafa" || team1.Goalkeeper.Goals != 1 || team1.Goalkeeper.Team != "AMARELO" {
		t.Errorf("team1 goalkeeper = %+v", team1.Goalkeeper)
	}
	if len(team1.Outfield) != 1 || team1.Outfield[0].Player != "Leo" || team1.Outfield[0].Goals != 0 {
		t.Errorf("team1 outfield = %+v, want a fresh AMARELO lineup", team1.Outfield)
	}
	if got := state.Team(models.Team2).Outfield[0]; got.Player != "Dudu" || got.Assists != 1 {
		t.Errorf("unchanged side lost its counters: %+v", got)
	}
	if got := h.Preview(state).String(); got != "AMARELO 1 x 0 PRETO" {
		t.Errorf("scoreboard = %q", got)
	}
}

func TestNewForm_PreviousTeamUnknown(t *testing.T) {
	h := newTestHandler(&fakeTables{}, nil)
	_, _, err := h.NewForm(context.Background(), FormRequest{PrevTeam2: "AZUL"})
	if !errors.Is(err, ErrUnknownTeam) {
		t.Errorf("err = %v, want ErrUnknownTeam", err)
	}
}

func TestNewForm_EmptyDirectoryRejected(t *testing.T) {
	tables := &fakeTables{noPlayers: true}
	h := newTestHandler(tables, nil)

	_, _, err := h.NewForm(context.Background(), FormRequest{Round: 3, Team1: "AMARELO", Team2: "PRETO"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if len(tables.rows) != 0 {
		t.Errorf("rows = %d, want none", len(tables.rows))
	}
}

func TestPreview(t *testing.T) {
	h := newTestHandler(&fakeTables{}, nil)
	state, _, err := h.NewForm(context.Background(), shutoutRequest())
	if err != nil {
		t.Fatal(err)
	}
	sb := h.Preview(state)
	if got := sb.String(); got != "AMARELO 3 x 0 PRETO" {
		t.Errorf("scoreboard = %q", got)
	}
}

func TestSubmit_WritesRowsAndNotifies(t *testing.T) {
	tables := &fakeTables{}
	n := &recordingNotifier{}
	h := newTestHandler(tables, n)

	state, _, err := h.NewForm(context.Background(), shutoutRequest())
	if err != nil {
		t.Fatal(err)
	}
	sub, err := h.Submit(context.Background(), state)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// (1 + 1) for AMARELO, (1 + 2) for PRETO
	if sub.Rows != 5 || sub.Written != 5 || len(tables.rows) != 5 {
		t.Fatalf("rows = %d written = %d stored = %d, want 5", sub.Rows, sub.Written, len(tables.rows))
	}
	if sub.ID == "" {
		t.Error("submission id missing")
	}
	if sub.Result.Score1 != 3 || sub.Result.Outcome1 != models.Win {
		t.Errorf("result = %+v", sub.Result)
	}

	for i, r := range tables.rows[:2] {
		if r[6] != "AMARELO" || r[12] != 1 {
			t.Errorf("team1 row %d = %v, want clean-sheet win", i, r)
		}
	}
	gk2 := tables.rows[2]
	if gk2[4] != "Bruno" || gk2[18] != 3 || gk2[19] != 4 {
		t.Errorf("team2 goalkeeper row = %v", gk2)
	}
	if tables.rows[3][18] != nil {
		t.Errorf("outfield goals conceded = %v, want nil", tables.rows[3][18])
	}
	if len(n.subs) != 1 || n.subs[0].ID != sub.ID {
		t.Errorf("notifications = %+v", n.subs)
	}
}

func TestSubmit_PartialFailure(t *testing.T) {
	tables := &fakeTables{failAt: 3}
	n := &recordingNotifier{}
	h := newTestHandler(tables, n)

	state, _, _ := h.NewForm(context.Background(), shutoutRequest())
	sub, err := h.Submit(context.Background(), state)
	if !errors.Is(err, ledger.ErrAppend) {
		t.Fatalf("err = %v, want ErrAppend", err)
	}
	if sub.Written != 2 || len(tables.rows) != 2 {
		t.Errorf("written = %d stored = %d, want 2", sub.Written, len(tables.rows))
	}
	if len(n.subs) != 0 {
		t.Error("failed submissions must not be announced")
	}

	// Retrying duplicates the committed prefix.
	tables.failAt = 0
	if _, err := h.Submit(context.Background(), state); err != nil {
		t.Fatal(err)
	}
	if len(tables.rows) != 7 {
		t.Errorf("stored after retry = %d, want 7", len(tables.rows))
	}
}

func TestSubmit_NotifierErrorIgnored(t *testing.T) {
	h := newTestHandler(&fakeTables{}, &recordingNotifier{err: errors.New("telegram down")})
	state, _, _ := h.NewForm(context.Background(), shutoutRequest())
	if _, err := h.Submit(context.Background(), state); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}
