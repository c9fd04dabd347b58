package engine

import "sort"

// Score is one player's standing.
type Score struct {
	ID    int
	Score int
}

// Scores returns every remaining player's score, best first. Ties keep
// ascending id order.
func (g *Game) Scores() []Score {
	scores := make([]Score, len(g.players))
	for i, p := range g.players {
		scores[i] = Score{ID: p.id, Score: p.Score()}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].ID < scores[j].ID
	})
	return scores
}

// Winners returns the ids of the players sharing the best score.
func (g *Game) Winners() []int {
	scores := g.Scores()
	var ids []int
	for _, s := range scores {
		if s.Score != scores[0].Score {
			break
		}
		ids = append(ids, s.ID)
	}
	return ids
}
