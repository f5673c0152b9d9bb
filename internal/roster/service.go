package roster

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"mr-league/internal/cache"
	"mr-league/internal/models"
)

// Source reads the two roster tables.
type Source interface {
	Players(ctx context.Context) ([]models.PlayerPosition, error)
	Lineups(ctx context.Context) ([]models.LineupEntry, error)
}

// Service builds Indexes from cached table loads.
type Service struct {
	players *cache.Table[[]models.PlayerPosition]
	lineups *cache.Table[[]models.LineupEntry]
}

func NewService(src Source, backend cache.Backend, ttl time.Duration) *Service {
	return &Service{
		players: cache.NewTable[[]models.PlayerPosition](backend, "players", ttl, src.Players),
		lineups: cache.NewTable[[]models.LineupEntry](backend, "lineups", ttl, src.Lineups),
	}
}

// Index never fails: a table that cannot be loaded contributes nothing.
func (s *Service) Index(ctx context.Context) *Index {
	players, err := s.players.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("roster table unavailable")
	}
	lineups, err := s.lineups.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("lineup table unavailable")
	}
	return Build(players, lineups)
}
