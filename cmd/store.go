package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"mr-league/config"
	"mr-league/internal/cache"
	dbpkg "mr-league/internal/db"
	"mr-league/internal/ledger"
	"mr-league/internal/roster"
	"mr-league/internal/sheets"
)

// tableStore is what both backends offer: the roster tables and the ledger.
type tableStore interface {
	roster.Source
	ledger.Store
}

func openStore(ctx context.Context, cfg *config.Config) (tableStore, error) {
	switch cfg.Backend {
	case config.BackendSheets:
		client, err := sheets.Open(ctx, sheets.Options{
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			SpreadsheetName: cfg.Sheets.SpreadsheetName,
			PlayersSheet:    cfg.Sheets.PlayersSheet,
			LineupsSheet:    cfg.Sheets.LineupsSheet,
			LedgerSheet:     cfg.Sheets.LedgerSheet,
			MatchIDColumn:   ledger.MatchIDColumn,
		}, sheets.CredentialOptions(cfg.Sheets.CredentialsFile)...)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.BackendPostgres, config.BackendSQLite:
		DB, err := dbpkg.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return dbpkg.NewStore(DB), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// openCache returns a Redis-backed cache when redis_url is set, memory otherwise.
func openCache(ctx context.Context, cfg *config.Config) (cache.Backend, func(), error) {
	if cfg.RedisURL == "" {
		return cache.NewMemory(), func() {}, nil
	}
	client, err := cache.DialRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Msg("using redis table cache")
	return cache.NewRedis(client), func() { client.Close() }, nil
}
