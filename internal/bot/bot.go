package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"mr-league/config"
	mtH "mr-league/internal/matchHandlers"
	tmH "mr-league/internal/teamHandlers"
)

// HandlersConfig groups what the commands read from.
type HandlersConfig struct {
	MatchHandler *mtH.Handler
	TeamHandler  *tmH.Handler
}

// Bot announces submissions to the admins and answers their read-only commands.
type Bot struct {
	API      *tgbotapi.BotAPI
	Config   *config.Config
	Handlers HandlersConfig
}

// NewBot authenticates against the Telegram API.
func NewBot(cfg *config.Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TgApiToken)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return NewBotWithAPI(api, cfg), nil
}

func NewBotWithAPI(api *tgbotapi.BotAPI, cfg *config.Config) *Bot {
	return &Bot{API: api, Config: cfg}
}

// Attach wires the command handlers once the match flow exists.
func (b *Bot) Attach(matches *mtH.Handler, teams *tmH.Handler) {
	b.Handlers = HandlersConfig{MatchHandler: matches, TeamHandler: teams}
}

// Run polls for updates until ctx is done.
func (b *Bot) Run(ctx context.Context) {
	log.Info().Str("account", b.API.Self.UserName).Msg("telegram bot authorized")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.API.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.API.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				go b.handleMessage(ctx, update.Message)
			}
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		return
	}
	b.sendMessage(msg.Chat.ID, b.commandReply(ctx, msg))
}

func (b *Bot) commandReply(ctx context.Context, msg *tgbotapi.Message) string {
	if !b.Config.IsAdmin(msg.Chat.ID) {
		return "Acesso restrito aos administradores da liga."
	}

	switch msg.Command() {
	case "start", "help":
		return "Comandos:\n/teams - lista os times\n/next_id - próximo ID de partida\n/roster <rodada> <time> - escalação da rodada"
	case "teams":
		return b.Handlers.TeamHandler.ListTeams()
	case "next_id":
		return fmt.Sprintf("Próximo ID de partida: %d", b.Handlers.MatchHandler.NextMatchID(ctx))
	case "roster":
		args := strings.Fields(msg.CommandArguments())
		if len(args) != 2 {
			return "Uso: /roster <rodada> <time>"
		}
		round, err := strconv.Atoi(args[0])
		if err != nil || round < 1 {
			return "Rodada inválida. Use um número inteiro positivo."
		}
		text, err := b.Handlers.TeamHandler.RosterText(ctx, round, args[1])
		if err != nil {
			return err.Error()
		}
		return text
	default:
		return "Comando desconhecido. Use /help."
	}
}

// NotifySubmission sends the match summary to every admin chat.
func (b *Bot) NotifySubmission(ctx context.Context, sub mtH.Submission) error {
	text := FormatSubmission(sub)
	var errs []error
	for _, chatID := range b.Config.Admins {
		if _, err := b.API.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
		}
	}
	return errors.Join(errs...)
}

func FormatSubmission(sub mtH.Submission) string {
	m := sub.Match
	return fmt.Sprintf("✅ Partida #%d registrada\nRodada %d - %s\n%s %d x %d %s\n%d jogadores gravados",
		m.MatchID, m.Round, m.Date.Format("2006-01-02"),
		m.Team1, sub.Result.Score1, sub.Result.Score2, m.Team2,
		sub.Written)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.API.Send(msg); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("failed to send telegram message")
	}
}
