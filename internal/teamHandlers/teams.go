package teamhandlers

import (
	"context"
	"fmt"
	"strings"

	"mr-league/internal/models"
	"mr-league/internal/roster"
)

type Handler struct {
	Roster *roster.Service
	Teams  models.Teams
}

// ListTeams renders the team enumeration.
func (h *Handler) ListTeams() string {
	if len(h.Teams) == 0 {
		return "Nenhum time configurado."
	}
	var b strings.Builder
	b.WriteString("Times:\n")
	for _, t := range h.Teams {
		fmt.Fprintf(&b, "- %s\n", t)
	}
	return b.String()
}

// RosterText renders the lineup of one team for one round with each player's position.
func (h *Handler) RosterText(ctx context.Context, round int, team string) (string, error) {
	name := h.Teams.Canonical(team)
	if name == "" {
		return "", fmt.Errorf("time desconhecido: %s", team)
	}

	idx := h.Roster.Index(ctx)
	players := idx.RosterFor(round, name)
	if len(players) == 0 {
		return fmt.Sprintf("Nenhum jogador escalado para %s na rodada %d.", name, round), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s - rodada %d:\n", name, round)
	for _, p := range players {
		fmt.Fprintf(&b, "- %s (%s)\n", p, idx.PositionOf(p, false))
	}
	return b.String(), nil
}
