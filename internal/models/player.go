package models

// Position codes. Only GK changes behaviour; every other code is carried through as-is.
const (
	PositionGK      = "GK"
	PositionUnknown = "N/A"
)

// PlayerPosition is one line of the roster table (PLAYER, POSIÇÃO).
type PlayerPosition struct {
	Player   string `json:"player"`
	Position string `json:"position"`
}

// LineupEntry is one line of the lineup table (RODADA, TIME, JOGADOR).
type LineupEntry struct {
	Round  int    `json:"round"`
	Team   string `json:"team"`
	Player string `json:"player"`
}
