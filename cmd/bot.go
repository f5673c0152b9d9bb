package main

import (
	"github.com/rs/zerolog/log"

	"mr-league/config"
	"mr-league/internal/bot"
)

// startBot authorizes the admin bot. A missing token or failed auth disables it.
func startBot(cfg *config.Config) *bot.Bot {
	if cfg.TgApiToken == "" {
		log.Info().Msg("telegram token not set, bot disabled")
		return nil
	}
	b, err := bot.NewBot(cfg)
	if err != nil {
		log.Error().Err(err).Msg("telegram bot disabled")
		return nil
	}
	return b
}
