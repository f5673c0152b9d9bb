// Package result turns two teams' scouting records into a match result.
package result

import "mr-league/internal/models"

// Score counts own goals scored plus own goals conceded by the opponent.
func Score(own, opponent []models.PlayerMatchRecord) int {
	total := 0
	for _, p := range own {
		total += p.Goals
	}
	for _, p := range opponent {
		total += p.OwnGoals
	}
	return total
}

// Outcomes maps a scoreline to both teams' outcomes.
func Outcomes(score1, score2 int) (models.Outcome, models.Outcome) {
	switch {
	case score1 > score2:
		return models.Win, models.Loss
	case score1 < score2:
		return models.Loss, models.Win
	default:
		return models.Draw, models.Draw
	}
}

// Compute derives the full result. A team keeps a clean sheet whenever the opponent
// scored zero, whatever the outcome.
func Compute(team1, team2 []models.PlayerMatchRecord) models.MatchResult {
	s1 := Score(team1, team2)
	s2 := Score(team2, team1)
	o1, o2 := Outcomes(s1, s2)
	return models.MatchResult{
		Score1:      s1,
		Score2:      s2,
		Outcome1:    o1,
		Outcome2:    o2,
		CleanSheet1: s2 == 0,
		CleanSheet2: s1 == 0,
	}
}

// WithGoalsConceded returns copies of the records where every GK carries the opponent's
// score as goals conceded. Other records get nil.
func WithGoalsConceded(records []models.PlayerMatchRecord, opponentScore int) []models.PlayerMatchRecord {
	out := make([]models.PlayerMatchRecord, len(records))
	for i, r := range records {
		c := r.Clone()
		if c.IsGoalkeeper() {
			c.GoalsConceded = models.IntPtr(opponentScore)
		} else {
			c.GoalsConceded = nil
		}
		out[i] = c
	}
	return out
}
