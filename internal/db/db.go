package db

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"

	"mr-league/config"
	"mr-league/internal/models"
)

// InitDatabase opens the configured SQL backend and migrates the three tables.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Backend {
	case config.BackendPostgres:
		dialector = postgres.Open(cfg.PostgresDSN())
	case config.BackendSQLite:
		dialector = OpenSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("backend %q is not a SQL backend", cfg.Backend)
	}

	DB, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Backend, err)
	}
	if err := Migrate(DB); err != nil {
		return nil, err
	}
	log.Info().Str("backend", cfg.Backend).Msg("database ready")
	return DB, nil
}

// OpenSQLite uses the pure-Go modernc driver registered as "sqlite".
func OpenSQLite(path string) gorm.Dialector {
	return sqlite.New(sqlite.Config{DSN: path, DriverName: "sqlite"})
}

func Migrate(DB *gorm.DB) error {
	if err := DB.AutoMigrate(&models.RosterPlayer{}, &models.RoundLineup{}, &models.LedgerEntry{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Store serves the roster tables and the ledger from SQL.
type Store struct {
	DB *gorm.DB
}

func NewStore(DB *gorm.DB) *Store {
	return &Store{DB: DB}
}

func (s *Store) Players(ctx context.Context) ([]models.PlayerPosition, error) {
	var rows []models.RosterPlayer
	if err := s.DB.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	out := make([]models.PlayerPosition, len(rows))
	for i, r := range rows {
		out[i] = models.PlayerPosition{Player: r.Player, Position: r.Position}
	}
	return out, nil
}

func (s *Store) Lineups(ctx context.Context) ([]models.LineupEntry, error) {
	var rows []models.RoundLineup
	if err := s.DB.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load lineups: %w", err)
	}
	out := make([]models.LineupEntry, len(rows))
	for i, r := range rows {
		out[i] = models.LineupEntry{Round: r.Round, Team: r.Team, Player: r.Player}
	}
	return out, nil
}

func (s *Store) MatchIDs(ctx context.Context) ([]string, error) {
	var ids []int
	if err := s.DB.WithContext(ctx).Model(&models.LedgerEntry{}).Order("id").Pluck("match_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("load match ids: %w", err)
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.Itoa(id)
	}
	return out, nil
}

func (s *Store) AppendRow(ctx context.Context, row models.Row) error {
	entry, err := models.LedgerEntryFromRow(row)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("insert ledger row: %w", err)
	}
	return nil
}

// entries returns the ledger for one match in insertion order.
func (s *Store) entries(ctx context.Context, matchID int) ([]models.LedgerEntry, error) {
	var rows []models.LedgerEntry
	err := s.DB.WithContext(ctx).Where("match_id = ?", matchID).Order("id").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load match %d: %w", matchID, err)
	}
	return rows, nil
}
