package bot

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mr-league/config"
	"mr-league/internal/cache"
	"mr-league/internal/ledger"
	mtH "mr-league/internal/matchHandlers"
	"mr-league/internal/models"
	"mr-league/internal/roster"
	tmH "mr-league/internal/teamHandlers"
)

type fakeTelegram struct {
	mu   sync.Mutex
	sent map[string][]string
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"MR","username":"mr_league_bot"}}`)
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		r.ParseForm()
		f.mu.Lock()
		f.sent[r.Form.Get("chat_id")] = append(f.sent[r.Form.Get("chat_id")], r.Form.Get("text"))
		f.mu.Unlock()
		fmt.Fprintf(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":%s,"type":"private"}}}`, r.Form.Get("chat_id"))
	default:
		http.NotFound(w, r)
	}
}

type tables struct{}

func (tables) Players(ctx context.Context) ([]models.PlayerPosition, error) {
	return []models.PlayerPosition{{Player: "Leo", Position: "ATA"}}, nil
}

func (tables) Lineups(ctx context.Context) ([]models.LineupEntry, error) {
	return []models.LineupEntry{{Round: 1, Team: "PRETO", Player: "Leo"}}, nil
}

func (tables) MatchIDs(ctx context.Context) ([]string, error) { return []string{"10", "11"}, nil }

func (tables) AppendRow(ctx context.Context, row models.Row) error { return nil }

func newTestBot(t *testing.T) (*Bot, *fakeTelegram) {
	t.Helper()
	fake := &fakeTelegram{sent: make(map[string][]string)}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	api, err := tgbotapi.NewBotAPIWithClient("TOKEN", srv.URL+"/bot%s/%s", srv.Client())
	if err != nil {
		t.Fatalf("NewBotAPIWithClient: %v", err)
	}

	cfg := &config.Config{Admins: []int64{42, 43}}
	teams := models.Teams{"AMARELO", "PRETO"}
	rs := roster.NewService(tables{}, cache.NewMemory(), time.Hour)
	b := NewBotWithAPI(api, cfg)
	b.Attach(
		mtH.NewHandler(rs, ledger.NewService(tables{}), b, "LIGA", teams),
		&tmH.Handler{Roster: rs, Teams: teams},
	)
	return b, fake
}

func command(chatID int64, text string) *tgbotapi.Message {
	cmd := strings.Fields(text)[0]
	return &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: chatID},
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(cmd)},
		},
	}
}

func TestCommandReply(t *testing.T) {
	b, _ := newTestBot(t)
	ctx := context.Background()

	tests := []struct {
		chat int64
		text string
		want string
	}{
		{42, "/next_id", "Próximo ID de partida: 12"},
		{42, "/teams", "- PRETO"},
		{42, "/roster 1 preto", "- Leo (ATA)"},
		{42, "/roster um preto", "Rodada inválida"},
		{42, "/roster 1", "Uso: /roster"},
		{42, "/dance", "Comando desconhecido"},
		{7, "/next_id", "Acesso restrito"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := b.commandReply(ctx, command(tt.chat, tt.text))
			if !strings.Contains(got, tt.want) {
				t.Errorf("reply = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestNotifySubmission(t *testing.T) {
	b, fake := newTestBot(t)

	sub := mtH.Submission{
		Match: models.MatchContext{
			Date: time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC), Round: 3, MatchID: 12,
			Team1: "AMARELO", Team2: "PRETO",
		},
		Result:  models.MatchResult{Score1: 3, Score2: 0},
		Written: 5,
	}
	if err := b.NotifySubmission(context.Background(), sub); err != nil {
		t.Fatalf("NotifySubmission: %v", err)
	}

	for _, chat := range []string{"42", "43"} {
		msgs := fake.sent[chat]
		if len(msgs) != 1 {
			t.Fatalf("chat %s got %d messages", chat, len(msgs))
		}
		if !strings.Contains(msgs[0], "Partida #12") || !strings.Contains(msgs[0], "AMARELO 3 x 0 PRETO") {
			t.Errorf("message = %q", msgs[0])
		}
	}
}

func TestHandleMessage_IgnoresPlainText(t *testing.T) {
	b, fake := newTestBot(t)
	b.handleMessage(context.Background(), &tgbotapi.Message{Text: "oi", Chat: &tgbotapi.Chat{ID: 42}})
	if len(fake.sent) != 0 {
		t.Errorf("plain text should not be answered, sent %v", fake.sent)
	}
}
