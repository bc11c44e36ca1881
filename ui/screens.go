package ui

import (
	"fmt"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxNameLength bounds the player name typed on the start screen.
const maxNameLength = 15

// StartScreen asks for a name before the first game.
type StartScreen struct {
	renderer *Renderer
	name     string
	editing  bool
}

// NewStartScreen creates a start screen with name pre-filled.
func NewStartScreen(name string) *StartScreen {
	return &StartScreen{renderer: NewRenderer(), name: name, editing: true}
}

// Name returns the trimmed name entered so far.
func (s *StartScreen) Name() string {
	return strings.TrimSpace(s.name)
}

// Draw renders the screen and returns ActionStart when the player is ready.
func (s *StartScreen) Draw(screenW, screenH int32) Action {
	r := s.renderer
	cx := screenW / 2
	cy := screenH / 2

	rl.DrawRectangle(0, 0, screenW, screenH, rl.Color{R: 0, G: 0, B: 0, A: 160})
	r.DrawTextCentered("CELL ARENA", cx, cy-140, 48, r.Theme.Title)
	r.DrawTextCentered("Eat to grow. Avoid the bigger ones.", cx, cy-84, 16, r.Theme.ValueColor)

	box := rl.Rectangle{X: float32(cx - 120), Y: float32(cy - 40), Width: 240, Height: 36}
	if gui.TextBox(box, &s.name, maxNameLength, s.editing) {
		s.editing = !s.editing
	}
	if len([]rune(s.name)) > maxNameLength {
		s.name = string([]rune(s.name)[:maxNameLength])
	}
	if s.Name() == "" {
		r.DrawTextCentered("enter a name", cx, cy-30, 14, r.Theme.Muted)
	}

	play := rl.Rectangle{X: float32(cx - 120), Y: float32(cy + 10), Width: 240, Height: 40}
	if gui.Button(play, "PLAY") || rl.IsKeyPressed(rl.KeyEnter) {
		return ActionStart
	}

	r.DrawTextCentered("Mouse: move   Space: split   W: eject   M: mute", cx, cy+80, 14, r.Theme.Muted)
	return ActionNone
}

// GameOverData is what the game-over screen shows.
type GameOverData struct {
	Score     int
	HighScore int
	NewRecord bool
}

// GameOverScreen shows the final score.
type GameOverScreen struct {
	renderer *Renderer
}

// NewGameOverScreen creates a game-over screen.
func NewGameOverScreen() *GameOverScreen {
	return &GameOverScreen{renderer: NewRenderer()}
}

// Draw renders the screen and returns ActionRestart or ActionMenu on input.
func (g *GameOverScreen) Draw(data GameOverData, screenW, screenH int32) Action {
	r := g.renderer
	cx := screenW / 2
	cy := screenH / 2

	rl.DrawRectangle(0, 0, screenW, screenH, rl.Color{R: 0, G: 0, B: 0, A: 180})
	r.DrawTextCentered("GAME OVER", cx, cy-140, 48, rl.Color{R: 248, G: 113, B: 113, A: 255})

	r.DrawTextCentered(fmt.Sprintf("%d", data.Score), cx, cy-70, 40, r.Theme.Title)
	r.DrawTextCentered("FINAL SCORE", cx, cy-26, 12, r.Theme.ValueColor)

	best := fmt.Sprintf("Best: %d", data.HighScore)
	color := r.Theme.ValueColor
	if data.NewRecord {
		best = "New high score!"
		color = r.Theme.Highlight
	}
	r.DrawTextCentered(best, cx, cy-4, 16, color)

	again := rl.Rectangle{X: float32(cx - 120), Y: float32(cy + 30), Width: 240, Height: 40}
	if gui.Button(again, "PLAY AGAIN") || rl.IsKeyPressed(rl.KeyEnter) {
		return ActionRestart
	}
	menu := rl.Rectangle{X: float32(cx - 120), Y: float32(cy + 80), Width: 240, Height: 30}
	if gui.Button(menu, "MENU") || rl.IsKeyPressed(rl.KeyBackspace) {
		return ActionMenu
	}
	return ActionNone
}
