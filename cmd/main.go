package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"mr-league/config"
	wsh "mr-league/internal/WSH"
	"mr-league/internal/ledger"
	"mr-league/internal/logging"
	mtH "mr-league/internal/matchHandlers"
	"mr-league/internal/models"
	"mr-league/internal/roster"
	tmH "mr-league/internal/teamHandlers"
)

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("config init failed")
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogJSON)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("cache init failed")
	}
	defer closeCache()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.Backend).Msg("store init failed")
	}

	teams := models.Teams(cfg.Teams)
	rosters := roster.NewService(store, backend, cfg.CacheTTL)

	tgBot := startBot(cfg)
	var notifier mtH.Notifier
	if tgBot != nil {
		notifier = tgBot
	}

	matches := mtH.NewHandler(rosters, ledger.NewService(store), notifier, cfg.League, teams)
	teamHandler := &tmH.Handler{Roster: rosters, Teams: teams}

	if tgBot != nil {
		tgBot.Attach(matches, teamHandler)
		go tgBot.Run(ctx)
	}

	srv, err := wsh.NewServer(matches, teams, cfg.League)
	if err != nil {
		logger.Fatal().Err(err).Msg("template parse failed")
	}
	if err := wsh.StartWS(ctx, cfg.Addr, srv.Routes(cfg.CORSOrigins, logger)); err != nil {
		logger.Fatal().Err(err).Msg("http server stopped")
	}
	logger.Info().Msg("shutdown complete")
}
