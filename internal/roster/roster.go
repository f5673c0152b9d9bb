package roster

import (
	"strings"

	"mr-league/internal/models"
)

// MaxOutfield caps the players taken from a round lineup.
const MaxOutfield = 5

type lineupKey struct {
	round int
	team  string
}

// Index answers position and lineup lookups. It is read-only once built.
type Index struct {
	positions map[string]string
	players   []string
	lineups   map[lineupKey][]string
}

// Build derives an Index from the roster and lineup tables. Later duplicates of a player
// name overwrite the position but keep the first directory slot.
func Build(players []models.PlayerPosition, lineups []models.LineupEntry) *Index {
	idx := &Index{
		positions: make(map[string]string, len(players)),
		lineups:   make(map[lineupKey][]string),
	}
	for _, p := range players {
		name := strings.TrimSpace(p.Player)
		if name == "" {
			continue
		}
		if _, seen := idx.positions[name]; !seen {
			idx.players = append(idx.players, name)
		}
		idx.positions[name] = strings.TrimSpace(p.Position)
	}
	for _, l := range lineups {
		name := strings.TrimSpace(l.Player)
		if name == "" {
			continue
		}
		k := lineupKey{round: l.Round, team: strings.TrimSpace(l.Team)}
		idx.lineups[k] = append(idx.lineups[k], name)
	}
	return idx
}

// Empty is used when the tables cannot be read.
func Empty() *Index {
	return Build(nil, nil)
}

// PositionOf returns the directory position. Unknown players get GK in a goalkeeper
// context and N/A otherwise.
func (i *Index) PositionOf(player string, goalkeeper bool) string {
	if pos, ok := i.positions[player]; ok {
		return pos
	}
	if goalkeeper {
		return models.PositionGK
	}
	return models.PositionUnknown
}

// RosterFor returns up to MaxOutfield players nominated for round and team.
func (i *Index) RosterFor(round int, team string) []string {
	names := i.lineups[lineupKey{round: round, team: team}]
	if len(names) > MaxOutfield {
		names = names[:MaxOutfield]
	}
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Players lists the full directory in table order.
func (i *Index) Players() []string {
	out := make([]string, len(i.players))
	copy(out, i.players)
	return out
}

func (i *Index) Len() int { return len(i.players) }
