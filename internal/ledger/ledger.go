// Package ledger writes match rows to the append-only ledger table.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"mr-league/internal/models"
)

// ErrAppend wraps any failure while writing rows.
var ErrAppend = errors.New("ledger append failed")

// Store is the ledger table.
type Store interface {
	// MatchIDs returns the raw cells of the match id column, header excluded.
	MatchIDs(ctx context.Context) ([]string, error)
	AppendRow(ctx context.Context, row models.Row) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// NextMatchID suggests max(id)+1. Non-numeric cells are skipped; read failures and an
// empty column give 1.
func (s *Service) NextMatchID(ctx context.Context) int {
	cells, err := s.store.MatchIDs(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("reading match ids failed, suggesting 1")
		return 1
	}
	return NextID(cells)
}

// NextID is the pure part of NextMatchID.
func NextID(cells []string) int {
	highest := 0
	for _, c := range cells {
		if !isDigits(c) {
			continue
		}
		n, err := strconv.Atoi(c)
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return highest + 1
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) < 0
}

// Append writes rows one at a time, in order. On failure it returns how many rows were
// already committed; those stay in the ledger.
func (s *Service) Append(ctx context.Context, rows []models.Row) (int, error) {
	for i, row := range rows {
		if err := s.store.AppendRow(ctx, row); err != nil {
			return i, fmt.Errorf("%w: row %d of %d: %w", ErrAppend, i+1, len(rows), err)
		}
	}
	return len(rows), nil
}
