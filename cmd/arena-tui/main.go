// Package main plays the arena in a terminal.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/arena/audio"
	"github.com/pthm-cable/arena/config"
	"github.com/pthm-cable/arena/game"
	"github.com/pthm-cable/arena/store"
	"github.com/pthm-cable/arena/tui"
)

const maxNameLength = 15

type terminalGame struct {
	screen   tcell.Screen
	session  *game.Session
	renderer *tui.Renderer
	sound    *audio.Player
	name     *tui.NameBuffer
	view     tui.View

	newRecord bool
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	name := flag.String("name", "", "Player name")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	highScoreFile := flag.String("highscore-file", "", "High score file (empty = user config dir)")
	logFile := flag.String("log-file", "", "Write logs here (the terminal is busy drawing)")
	mute := flag.Bool("mute", false, "Start with sound muted")
	flag.Parse()

	if err := run(*configPath, *name, *seed, *highScoreFile, *logFile, *mute); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, name string, seed int64, highScoreFile, logFile string, mute bool) error {
	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	logger, closeLog, err := newLogger(logFile)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	session, err := game.NewSession(cfg, game.SessionOptions{
		Engine: game.Options{
			Seed:   seed,
			Store:  openStore(highScoreFile, logger),
			Logger: logger,
		},
		Name: name,
	})
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	defer session.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	sound := audio.NewPlayer(cfg.Audio)
	if err := sound.Init(); err != nil {
		// Non-fatal, the game runs without sound
		logger.Warn("audio unavailable", "error", err)
	}
	defer sound.Close()
	sound.SetMuted(mute)

	g := &terminalGame{
		screen:   screen,
		session:  session,
		renderer: tui.NewRenderer(cfg.World.Size),
		sound:    sound,
		name:     tui.NewNameBuffer(name, maxNameLength),
	}
	g.renderer.SetMuted(mute)
	session.OnEvents(g.onEvents)

	g.loop(time.Duration(cfg.Physics.FrameMillis * float64(time.Millisecond)))
	return nil
}

func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, nil)), func() { f.Close() }, nil
}

func openStore(path string, logger *slog.Logger) game.ScoreStore {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return game.NewMemoryStore(0)
		}
		path = filepath.Join(dir, "cell-arena", "highscore.yaml")
	}
	f, err := store.Open(path)
	if err != nil {
		logger.Warn("high score file unreadable, starting from 0", "path", path, "error", err)
		return game.NewMemoryStore(0)
	}
	return f
}

func (g *terminalGame) onEvents(ev game.Events) {
	g.sound.HandleEvents(ev)
	if ev.NewHighScore {
		g.newRecord = true
	}
}

func (g *terminalGame) loop(frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	g.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !g.handle(ev) {
				return
			}
		case <-ticker.C:
			g.session.Update(float64(frame) / float64(time.Millisecond))
			g.draw()
		}
	}
}

// handle applies one terminal event; it returns false to quit.
func (g *terminalGame) handle(ev tcell.Event) bool {
	w := g.session.World()
	cmd := tui.Translate(ev, w.Phase)

	switch cmd.Kind {
	case tui.CmdQuit:
		return false
	case tui.CmdResize:
		g.screen.Sync()
	case tui.CmdType:
		g.name.Type(cmd.Rune)
	case tui.CmdErase:
		g.name.Erase()
	case tui.CmdStart:
		g.begin(w.Phase)
	case tui.CmdMenu:
		if err := g.session.Menu(); err != nil {
			slog.Error("failed to open menu", "error", err)
		}
	case tui.CmdSplit:
		g.session.Split()
	case tui.CmdEject:
		g.session.Eject()
	case tui.CmdMute:
		g.sound.SetMuted(!g.sound.Muted())
		g.renderer.SetMuted(g.sound.Muted())
	case tui.CmdPointer:
		x, y := g.view.ToWorld(cmd.Col, cmd.Row)
		g.session.SetPointer(x, y)
	case tui.CmdSteer:
		// Aim well past the edge of the view so the cells keep moving.
		reach := float64(g.view.Width) * g.view.UnitsPerCol
		g.session.SetPointer(w.Camera.X+float64(cmd.DX)*reach, w.Camera.Y+float64(cmd.DY)*reach)
	}
	g.draw()
	return true
}

func (g *terminalGame) begin(phase game.Phase) {
	var err error
	if phase == game.PhaseStart {
		err = g.session.Start(g.name.String())
	} else {
		err = g.session.Restart()
	}
	if err != nil {
		slog.Error("failed to start game", "error", err)
		return
	}
	g.newRecord = false
}

func (g *terminalGame) draw() {
	w := g.session.World()
	g.view = g.renderer.Draw(g.screen, &w, g.name.String(), g.newRecord)
	g.screen.Show()
}
