package screen

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"pkt.systems/typewriter"
)

func TestKeysDriveController(t *testing.T) {
	c := typewriter.NewController()
	var got []typewriter.Signal
	c.Subscribe(func(s typewriter.Signal) { got = append(got, s) })
	k := NewKeys(c)

	if k.Handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)) {
		t.Fatalf("space must not quit")
	}
	if !k.Frozen() {
		t.Fatalf("space should freeze")
	}
	k.HandleRune(' ')
	k.HandleRune('r')
	want := []typewriter.Signal{typewriter.SignalFreeze, typewriter.SignalResume, typewriter.SignalStart}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
}

func TestKeysQuit(t *testing.T) {
	k := NewKeys(typewriter.NewController())
	if !k.Handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatalf("escape should quit")
	}
	if !k.HandleRune('q') || !k.HandleRune(0x03) {
		t.Fatalf("q and ctrl-c should quit")
	}
	if k.Handle(tcell.NewEventResize(10, 10)) {
		t.Fatalf("resize must not quit")
	}
}
