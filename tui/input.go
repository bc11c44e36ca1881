package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/arena/game"
)

// CommandKind is what a terminal event asks the session to do.
type CommandKind uint8

const (
	CmdNone CommandKind = iota
	CmdQuit
	CmdStart   // Enter on the start or game-over screen
	CmdMenu    // Backspace on the game-over screen
	CmdSplit   // Space while playing
	CmdEject   // W while playing
	CmdMute    // M while playing
	CmdPointer // mouse moved; Col and Row are set
	CmdSteer   // arrow key; DX and DY are set
	CmdType    // name entry; Rune is set
	CmdErase   // Backspace on the start screen
	CmdResize
)

// Command is a translated terminal event.
type Command struct {
	Kind     CommandKind
	Col, Row int
	DX, DY   int
	Rune     rune
}

// Translate maps ev to a command for the given phase. The same key can mean
// different things per phase: W types a letter on the start screen and
// ejects mass while playing.
func Translate(ev tcell.Event, phase game.Phase) Command {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return Command{Kind: CmdResize}

	case *tcell.EventMouse:
		if phase != game.PhasePlaying {
			return Command{}
		}
		col, row := ev.Position()
		return Command{Kind: CmdPointer, Col: col, Row: row}

	case *tcell.EventKey:
		return translateKey(ev, phase)
	}
	return Command{}
}

func translateKey(ev *tcell.EventKey, phase game.Phase) Command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Command{Kind: CmdQuit}
	case tcell.KeyEnter:
		if phase != game.PhasePlaying {
			return Command{Kind: CmdStart}
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		switch phase {
		case game.PhaseStart:
			return Command{Kind: CmdErase}
		case game.PhaseGameOver:
			return Command{Kind: CmdMenu}
		}
	case tcell.KeyUp:
		return steer(phase, 0, -1)
	case tcell.KeyDown:
		return steer(phase, 0, 1)
	case tcell.KeyLeft:
		return steer(phase, -1, 0)
	case tcell.KeyRight:
		return steer(phase, 1, 0)
	case tcell.KeyRune:
		return translateRune(ev.Rune(), phase)
	}
	return Command{}
}

func steer(phase game.Phase, dx, dy int) Command {
	if phase != game.PhasePlaying {
		return Command{}
	}
	return Command{Kind: CmdSteer, DX: dx, DY: dy}
}

func translateRune(r rune, phase game.Phase) Command {
	switch phase {
	case game.PhaseStart:
		return Command{Kind: CmdType, Rune: r}
	case game.PhasePlaying:
		switch r {
		case ' ':
			return Command{Kind: CmdSplit}
		case 'w', 'W':
			return Command{Kind: CmdEject}
		case 'm', 'M':
			return Command{Kind: CmdMute}
		}
	}
	return Command{}
}

// NameBuffer collects the player name typed on the start screen.
type NameBuffer struct {
	runes []rune
	max   int
}

// NewNameBuffer creates a buffer pre-filled with name, capped at limit runes.
func NewNameBuffer(name string, limit int) *NameBuffer {
	b := &NameBuffer{max: limit}
	for _, r := range name {
		b.Type(r)
	}
	return b
}

// Type appends r unless the buffer is full or r is a control character.
func (b *NameBuffer) Type(r rune) {
	if r < ' ' || len(b.runes) >= b.max {
		return
	}
	b.runes = append(b.runes, r)
}

// Erase removes the last rune.
func (b *NameBuffer) Erase() {
	if len(b.runes) > 0 {
		b.runes = b.runes[:len(b.runes)-1]
	}
}

// String returns the buffer contents.
func (b *NameBuffer) String() string {
	return string(b.runes)
}
