package screen

import (
	"github.com/gdamore/tcell/v2"

	"pkt.systems/typewriter"
)

// Keys maps key presses to controller commands: space toggles freeze and
// resume, r restarts, q, Esc and Ctrl-C quit.
type Keys struct {
	c      *typewriter.Controller
	frozen bool
}

// NewKeys returns key bindings driving c.
func NewKeys(c *typewriter.Controller) *Keys {
	return &Keys{c: c}
}

// Handle applies a tcell event and reports whether the user asked to quit.
func (k *Keys) Handle(ev tcell.Event) (quit bool) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return k.HandleRune(key.Rune())
	}
	return false
}

// HandleRune applies a single typed character, e.g. read from a raw terminal.
func (k *Keys) HandleRune(r rune) (quit bool) {
	switch r {
	case 'q', 'Q', 0x03, 0x1b:
		return true
	case ' ', 'p':
		if k.frozen {
			k.c.Resume()
		} else {
			k.c.Freeze()
		}
		k.frozen = !k.frozen
	case 'r', 'R':
		k.frozen = false
		k.c.Start()
	}
	return false
}

// Frozen reports whether the last toggle froze playback.
func (k *Keys) Frozen() bool { return k.frozen }
