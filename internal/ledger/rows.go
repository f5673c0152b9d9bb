package ledger

import (
	"mr-league/internal/models"
)

// DefaultLeague is written in column 2 of every row.
const DefaultLeague = "LIGA"

// DateLayout formats column 1.
const DateLayout = "2006-01-02"

// Columns names the 22 ledger fields in write order.
var Columns = []string{
	"match_date",
	"league",
	"round",
	"match_id",
	"player",
	"position",
	"team",
	"win",
	"draw",
	"loss",
	"goals",
	"assists",
	"clean_sheet",
	"own_goals",
	"yellow_cards",
	"blue_cards",
	"red_cards",
	"penalties_missed",
	"goals_conceded",
	"difficult_saves",
	"penalty_saves",
	"fouls",
}

// MatchIDColumn is the 1-based ledger column holding match ids.
const MatchIDColumn = 4

// Materialize flattens a match into one row per player, team1 first. Goalkeeper-only
// cells are nil unless the player's position is GK, so every row has len(Columns) cells.
func Materialize(league string, match models.MatchContext, res models.MatchResult, team1, team2 []models.PlayerMatchRecord) []models.Row {
	if league == "" {
		league = DefaultLeague
	}
	rows := make([]models.Row, 0, len(team1)+len(team2))
	for _, side := range []models.Side{models.Team1, models.Team2} {
		records := team1
		if side == models.Team2 {
			records = team2
		}
		outcome := res.Outcome(side)
		bonus := res.CleanSheetWin(side)
		for _, p := range records {
			rows = append(rows, models.Row{
				match.Date.Format(DateLayout),
				league,
				match.Round,
				match.MatchID,
				p.Player,
				p.Position,
				p.Team,
				flag(outcome == models.Win),
				flag(outcome == models.Draw),
				flag(outcome == models.Loss),
				p.Goals,
				p.Assists,
				flag(bonus),
				p.OwnGoals,
				p.YellowCards,
				p.BlueCards,
				p.RedCards,
				p.PenaltiesMissed,
				goalkeeperCell(p, p.GoalsConceded),
				goalkeeperCell(p, p.DifficultSaves),
				goalkeeperCell(p, p.PenaltySaves),
				p.Fouls,
			})
		}
	}
	return rows
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func goalkeeperCell(p models.PlayerMatchRecord, v *int) any {
	if !p.IsGoalkeeper() || v == nil {
		return nil
	}
	return *v
}
