package main

import (
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arena/audio"
	"github.com/pthm-cable/arena/config"
	"github.com/pthm-cable/arena/game"
	"github.com/pthm-cable/arena/renderer"
	"github.com/pthm-cable/arena/ui"
)

const controlsHint = "Move / Space Split / W Eject"

type graphicalOptions struct {
	seed      int64
	name      string
	mute      bool
	autopilot bool
	maxTicks  int
}

// app is the raylib front-end: it feeds input to the session, steps it at
// the fixed tick rate and draws the interpolated result.
type app struct {
	cfg     *config.Config
	session *game.Session
	logger  *slog.Logger

	world    *renderer.WorldRenderer
	sound    *audio.Player
	overlays *ui.OverlayRegistry
	hud      *ui.HUD
	perf     *ui.PerfPanel
	start    *ui.StartScreen
	gameOver *ui.GameOverScreen

	autopilot bool
	maxTicks  int

	acc        float64 // simulated milliseconds owed to the session
	ejectTimer float64 // milliseconds since the last repeated eject
	newRecord  bool
}

func runGraphical(cfg *config.Config, session *game.Session, opts graphicalOptions, logger *slog.Logger) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Cell Arena")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(rl.KeyNull)

	sound := audio.NewPlayer(cfg.Audio)
	if err := sound.Init(); err != nil {
		logger.Warn("audio unavailable", "error", err)
	}
	defer sound.Close()
	sound.SetMuted(opts.mute)

	a := &app{
		cfg:       cfg,
		session:   session,
		logger:    logger,
		world:     renderer.NewWorldRenderer(cfg, opts.seed),
		sound:     sound,
		overlays:  ui.NewOverlayRegistry(),
		hud:       ui.NewHUD(),
		perf:      ui.NewPerfPanel(16, 110),
		start:     ui.NewStartScreen(opts.name),
		gameOver:  ui.NewGameOverScreen(),
		autopilot: opts.autopilot,
		maxTicks:  opts.maxTicks,
	}
	session.OnEvents(a.onEvents)

	w := session.World()
	a.world.Sync(&w)

	for !rl.WindowShouldClose() {
		a.frame()
		if a.maxTicks > 0 && int(session.Tick()) >= a.maxTicks {
			logger.Info("max ticks reached", "tick", session.Tick())
			return
		}
	}
}

func (a *app) onEvents(ev game.Events) {
	a.sound.HandleEvents(ev)
	if ev.NewHighScore {
		a.newRecord = true
	}
	w := a.session.World()
	a.world.Effects(&w, ev)
}

func (a *app) frame() {
	dt := float64(rl.GetFrameTime()) * 1000
	a.session.Perf().RecordFrame()
	if rl.IsWindowResized() {
		a.world.Resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	}

	phase := a.session.World().Phase
	// Letters belong to the name box on the start screen.
	if phase != game.PhaseStart {
		a.overlays.HandleKeys()
		if rl.IsKeyPressed(rl.KeyM) {
			a.sound.SetMuted(!a.sound.Muted())
		}
	}

	if phase == game.PhasePlaying {
		for _, action := range a.pollInput(dt) {
			switch action {
			case ui.ActionSplit:
				a.session.Split()
			case ui.ActionEject:
				a.session.Eject()
			}
		}
	}
	a.advance(dt)

	rl.BeginDrawing()
	a.draw(float32(dt / 1000))
	rl.EndDrawing()
}

// pollInput steers toward the mouse and returns the actions pressed this
// frame. Holding W repeats the eject every audio.eject_repeat_ms.
func (a *app) pollInput(dt float64) []ui.Action {
	if !a.autopilot {
		mouse := rl.GetMousePosition()
		x, y := a.world.Camera().ScreenToWorld(mouse.X, mouse.Y)
		a.session.SetPointer(float64(x), float64(y))
	}

	var actions []ui.Action
	if rl.IsKeyPressed(rl.KeySpace) {
		actions = append(actions, ui.ActionSplit)
	}

	repeat := float64(a.cfg.Audio.EjectRepeatMs)
	switch {
	case rl.IsKeyPressed(rl.KeyW):
		actions = append(actions, ui.ActionEject)
		a.ejectTimer = 0
	case rl.IsKeyDown(rl.KeyW) && repeat > 0:
		a.ejectTimer += dt
		if a.ejectTimer >= repeat {
			actions = append(actions, ui.ActionEject)
			a.ejectTimer = math.Mod(a.ejectTimer, repeat)
		}
	}
	return actions
}

// advance runs as many fixed ticks as the elapsed frame time covers.
func (a *app) advance(dt float64) {
	if a.session.World().Phase != game.PhasePlaying {
		a.acc = 0
		return
	}

	step := a.cfg.Physics.FrameMillis
	a.acc += math.Min(dt, a.cfg.Physics.MaxDTMillis)
	for a.acc >= step {
		a.session.Update(step)
		a.acc -= step

		w := a.session.World()
		a.world.Sync(&w)
		if w.Phase != game.PhasePlaying {
			a.acc = 0
			return
		}
	}
}

func (a *app) draw(frameDt float32) {
	w := a.session.World()
	sw, sh := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())

	alpha := float32(a.acc / a.cfg.Physics.FrameMillis)
	a.world.Draw(&w, alpha, frameDt, renderer.Options{
		Grid:    a.overlays.IsEnabled(ui.OverlayGrid),
		Names:   a.overlays.IsEnabled(ui.OverlayNames),
		Targets: a.overlays.IsEnabled(ui.OverlayTargets),
	})

	switch w.Phase {
	case game.PhaseStart:
		if a.start.Draw(sw, sh) == ui.ActionStart {
			a.begin(a.session.Start(a.start.Name()))
		}

	case game.PhasePlaying:
		data := ui.HUDData{
			Score:        w.Score,
			HighScore:    w.HighScore,
			Muted:        a.sound.Muted(),
			Autopilot:    a.autopilot,
			ScreenWidth:  sw,
			ScreenHeight: sh,
		}
		if w.Player != nil {
			data.Cells = len(w.Player.Cells)
		}
		if a.overlays.IsEnabled(ui.OverlayLeaderboard) {
			data.Leaderboard = w.Leaderboard
		}
		a.hud.Draw(data)
		a.hud.DrawControls(sw, sh, controlsHint)
		if a.overlays.IsEnabled(ui.OverlayPerf) {
			a.perf.Draw(a.session.Perf().Stats())
		}

	case game.PhaseGameOver:
		action := a.gameOver.Draw(ui.GameOverData{
			Score:     w.Score,
			HighScore: w.HighScore,
			NewRecord: a.newRecord,
		}, sw, sh)
		switch action {
		case ui.ActionRestart:
			a.begin(a.session.Restart())
		case ui.ActionMenu:
			if err := a.session.Menu(); err != nil {
				a.logger.Error("failed to open menu", "error", err)
			}
			menu := a.session.World()
			a.world.Sync(&menu)
		}
	}
}

// begin resets per-game front-end state after Start or Restart.
func (a *app) begin(err error) {
	if err != nil {
		a.logger.Error("failed to start game", "error", err)
		return
	}
	a.newRecord = false
	a.acc = 0
	a.ejectTimer = 0
	w := a.session.World()
	a.world.Sync(&w)
}
