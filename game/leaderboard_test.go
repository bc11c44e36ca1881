package game

import (
	"fmt"
	"testing"

	"github.com/pthm-cable/arena/components"
)

func scoredPlayer(id uint32, name string, score int, agent bool) components.Player {
	p := components.Player{ID: id, Name: name, Score: score, IsAgent: agent}
	p.Cells = []components.Cell{components.NewCell(id*100, 0, 0, float64(score), components.Color{})}
	return p
}

func TestLeaderboardOrdering(t *testing.T) {
	human := scoredPlayer(1, "Me", 50, false)
	agents := []components.Player{
		scoredPlayer(2, "A", 80, true),
		scoredPlayer(3, "B", 20, true),
		scoredPlayer(4, "C", 65, true),
	}

	board := Leaderboard(&human, agents, 10)

	want := []struct {
		name     string
		score    int
		isPlayer bool
	}{
		{"A", 80, false},
		{"C", 65, false},
		{"Me", 50, true},
		{"B", 20, false},
	}
	if len(board) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(board))
	}
	for i, w := range want {
		got := board[i]
		if got.Name != w.name || got.Score != w.score || got.IsPlayer != w.isPlayer {
			t.Errorf("entry %d: expected %+v, got %+v", i, w, got)
		}
	}
}

func TestLeaderboardSkipsDeadAndTruncates(t *testing.T) {
	human := scoredPlayer(1, "Me", 5, false)
	human.Cells = nil

	var agents []components.Player
	for i := 0; i < 12; i++ {
		agents = append(agents, scoredPlayer(uint32(i+2), fmt.Sprintf("agent%d", i), 100-i, true))
	}
	agents[0].Cells = nil

	board := Leaderboard(&human, agents, 10)

	if len(board) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(board))
	}
	for _, e := range board {
		if e.IsPlayer {
			t.Error("dead human listed")
		}
		if e.Name == "agent0" {
			t.Error("dead agent listed")
		}
	}
	if board[0].Name != "agent1" {
		t.Errorf("expected agent1 first, got %s", board[0].Name)
	}
	if Rank(board) != 0 {
		t.Errorf("expected rank 0 for unlisted human, got %d", Rank(board))
	}
}

func TestLeaderboardTiesFavourHuman(t *testing.T) {
	human := scoredPlayer(1, "Me", 30, false)
	agents := []components.Player{scoredPlayer(2, "A", 30, true)}

	board := Leaderboard(&human, agents, 10)
	if !board[0].IsPlayer {
		t.Error("expected the human ahead of an agent with the same score")
	}
}

func TestLeaderboardNilHuman(t *testing.T) {
	agents := []components.Player{scoredPlayer(2, "A", 30, true)}
	if board := Leaderboard(nil, agents, 10); len(board) != 1 {
		t.Errorf("expected 1 entry, got %d", len(board))
	}
}
