package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/telemetry"
)

// leaderboardRows is how many leaderboard entries the HUD shows.
const leaderboardRows = 5

// HUDData holds all the data needed to render the in-game HUD.
type HUDData struct {
	Score        int
	HighScore    int
	Cells        int
	Leaderboard  []components.LeaderboardEntry
	Muted        bool
	Autopilot    bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the heads-up display while playing.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders score, leaderboard and status flags.
func (h *HUD) Draw(data HUDData) {
	h.drawScore(data)
	h.drawLeaderboard(data)

	var flags string
	if data.Autopilot {
		flags += "AUTOPILOT  "
	}
	if data.Muted {
		flags += "MUTED"
	}
	if flags != "" {
		rl.DrawText(flags, 16, 84, h.renderer.Theme.FontSize, h.renderer.Theme.Highlight)
	}
}

func (h *HUD) drawScore(data HUDData) {
	r := h.renderer
	t := r.Theme
	score := fmt.Sprintf("%d", data.Score)
	w := rl.MeasureText(score, t.ScoreFontSize)
	if w < 60 {
		w = 60
	}

	r.DrawPanel(16, 16, w+2*t.Padding+10, 58)
	rl.DrawText(score, 16+t.Padding, 22, t.ScoreFontSize, t.Title)
	rl.DrawText(fmt.Sprintf("SCORE  (%d cells)", data.Cells), 16+t.Padding, 56, 10, t.ValueColor)
}

func (h *HUD) drawLeaderboard(data HUDData) {
	r := h.renderer
	t := r.Theme
	const width int32 = 130

	rows := data.Leaderboard
	if len(rows) > leaderboardRows {
		rows = rows[:leaderboardRows]
	}
	if len(rows) == 0 {
		return
	}
	height := t.Padding + 14 + int32(len(rows))*14 + t.Padding/2
	x := data.ScreenWidth - width - 8
	y := int32(8)

	r.DrawPanel(x, y, width, height)
	rl.DrawText("TOP 5", x+8, y+6, 10, t.ValueColor)
	y += 22

	for i, e := range rows {
		color := rl.Color{R: 255, G: 255, B: 255, A: 204}
		if e.IsPlayer {
			color = t.Highlight
		}
		rl.DrawText(fmt.Sprintf("%d.", i+1), x+8, y, 11, t.Muted)
		rl.DrawText(Truncate(e.Name, 11, 70), x+24, y, 11, color)
		score := fmt.Sprintf("%d", e.Score)
		rl.DrawText(score, x+width-8-rl.MeasureText(score, 10), y+1, 10, t.ValueColor)
		y += 14
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	r := h.renderer
	w := rl.MeasureText(controls, r.Theme.FontSize)
	x := (screenWidth - w) / 2
	y := screenHeight - 40
	rect := rl.Rectangle{X: float32(x - 16), Y: float32(y - 8), Width: float32(w + 32), Height: 28}
	rl.DrawRectangleRounded(rect, 0.3, 6, r.Theme.HintBg)
	rl.DrawText(controls, x, y, r.Theme.FontSize, rl.Color{R: 255, G: 255, B: 255, A: 153})
}

// PerfPanel renders tick phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel, slowest phases first.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	x, y := p.x, p.y

	names := make([]string, 0, len(stats.PhaseAvg))
	for name := range stats.PhaseAvg {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return stats.PhaseAvg[names[i]] > stats.PhaseAvg[names[j]]
	})

	height := int32(len(names))*14 + 58
	r.DrawPanel(x, y, 240, height)
	x += r.Theme.Padding
	y += r.Theme.Padding / 2

	rl.DrawText("Tick Performance", x, y, r.Theme.HeaderFontSize, rl.White)
	y += 18
	rl.DrawText(fmt.Sprintf("avg %s  max %s  %.0f fps",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.MaxTickDuration.Round(time.Microsecond),
		stats.FPS), x, y, r.Theme.FontSize, r.Theme.Highlight)
	y += 16

	for _, name := range names {
		pct := stats.PhasePct[name]
		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, r.Theme.FontSize, color,
		)
		y += 14
	}
}
