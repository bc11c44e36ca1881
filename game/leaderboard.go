package game

import (
	"sort"

	"github.com/pthm-cable/arena/components"
)

// Leaderboard ranks every living player by score, highest first, keeping at
// most size entries. The human is listed before agents so it wins ties.
func Leaderboard(human *components.Player, agents []components.Player, size int) []components.LeaderboardEntry {
	entries := make([]components.LeaderboardEntry, 0, len(agents)+1)

	if human != nil && len(human.Cells) > 0 {
		entries = append(entries, components.LeaderboardEntry{
			ID:       human.ID,
			Name:     human.Name,
			Score:    human.Score,
			IsPlayer: true,
		})
	}
	for i := range agents {
		a := &agents[i]
		if len(a.Cells) == 0 {
			continue
		}
		entries = append(entries, components.LeaderboardEntry{
			ID:    a.ID,
			Name:  a.Name,
			Score: a.Score,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if size > 0 && len(entries) > size {
		entries = entries[:size]
	}
	return entries
}

// Rank returns the human's 1-based leaderboard position, or 0 when not listed.
func Rank(board []components.LeaderboardEntry) int {
	for i, e := range board {
		if e.IsPlayer {
			return i + 1
		}
	}
	return 0
}
